// Package system advances the conserved variables of a compressible,
// chemically reacting fluid on an unstructured finite volume mesh. It owns
// every cell and face field buffer plus the old/delta ledgers of the
// multi-stage time integration; the equation of state, turbulence,
// combustion, radiation and flux reconstruction are collaborators.
package system

import (
	"math"

	"github.com/openfvm/reactingfv/combustion"
	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/fluxscheme"
	"github.com/openfvm/reactingfv/mesh"
	"github.com/openfvm/reactingfv/radiation"
	"github.com/openfvm/reactingfv/thermo"
	"github.com/openfvm/reactingfv/turbulence"
)

type Config struct {
	FluxScheme  string
	Gravity     field.Vec3
	InertSpecie string // required when combustion is attached

	// Radiation is attached only when a radiation configuration is present;
	// otherwise the no-op model is substituted.
	Radiation      string
	RadiationModel radiation.Config
}

// ReactingSystem is the conserved-variable update cycle. The thermodynamic,
// turbulence and combustion collaborators are long-lived shared references
// constructed by the outer assembly; the flux scheme and the radiation model
// are owned outright.
type ReactingSystem struct {
	m        *mesh.Mesh
	thermo   thermo.Model
	turb     turbulence.Model
	reaction combustion.Model
	rad      radiation.Model
	flux     fluxscheme.Scheme
	sch      StageScheme

	g          field.Vec3
	inert      string
	inertIndex int

	// conserved
	rho  *field.Scalar
	rhoU *field.Vector
	rhoE *field.Scalar

	// primitives; e and T alias the closure's fields
	u *field.Vector
	p *field.Scalar
	e *field.Scalar
	t *field.Scalar

	// face fluxes, rebuilt by Update
	phi, rhoPhi, rhoEPhi *field.FaceScalar
	rhoUPhi              *field.FaceVector

	// reporting only
	machNo *field.Scalar
	qdot   *field.Scalar

	// old/delta ledgers, cleared at the end of every outer step
	rhoOldList    []*field.Scalar
	rhoUOldList   []*field.Vector
	rhoEOldList   []*field.Scalar
	deltaRhoList  []*field.Scalar
	deltaRhoUList []*field.Vector
	deltaRhoEList []*field.Scalar
	ysOldLists    [][]*field.Scalar
	deltaRhoYs    [][]*field.Scalar
}

// New wires the system to the closure and the stage scheme, and constructs
// the two collaborators it owns outright: the flux scheme and the radiation
// model. Turbulence and combustion are attached afterwards by the outer
// assembly, bound to the field references this system owns; absent they stay
// nil and the implicit correction degrades to a no-op. The caller
// initializes the primitive state (closure fields and velocity) and then
// calls Encode.
func New(m *mesh.Mesh, th thermo.Model, sch StageScheme, cfg Config) (s *ReactingSystem) {
	th.Validate("reactingSystem", "e")
	s = &ReactingSystem{
		m:       m,
		thermo:  th,
		sch:     sch,
		g:       cfg.Gravity,
		inert:   cfg.InertSpecie,
		rho:     m.NewCellScalar("rho"),
		rhoU:    m.NewCellVector("rhoU"),
		rhoE:    m.NewCellScalar("rhoE"),
		u:       m.NewCellVector("U"),
		p:       m.NewCellScalar("p"),
		e:       th.E(),
		t:       th.T(),
		phi:     m.NewFaceScalar("phi"),
		rhoPhi:  m.NewFaceScalar("rhoPhi"),
		rhoEPhi: m.NewFaceScalar("rhoEPhi"),
		rhoUPhi: m.NewFaceVector("rhoUPhi"),
		machNo:  m.NewCellScalar("MachNo"),
		qdot:    m.NewCellScalar("Qdot"),
	}
	if cfg.FluxScheme == "" {
		cfg.FluxScheme = "hllc"
	}
	s.flux = fluxscheme.New(cfg.FluxScheme, m)
	s.rad = radiation.New(cfg.Radiation, m, s.t, cfg.RadiationModel)
	return
}

// AttachTurbulence binds the turbulence closure. Attached once by the outer
// assembly; the presence check in PostUpdate is the only branching on it.
func (s *ReactingSystem) AttachTurbulence(turb turbulence.Model) {
	s.turb = turb
}

// AttachCombustion binds the chemistry collaborator and sizes the species
// ledgers. A missing inert species name is a configuration error.
func (s *ReactingSystem) AttachCombustion(reaction combustion.Model) {
	s.reaction = reaction
	if reaction == nil {
		return
	}
	s.inertIndex = thermo.SpeciesIndex(s.thermo, s.inert)
	n := len(s.thermo.Species())
	s.ysOldLists = make([][]*field.Scalar, n)
	s.deltaRhoYs = make([][]*field.Scalar, n)
}

func (s *ReactingSystem) Mesh() *mesh.Mesh       { return s.m }
func (s *ReactingSystem) Rho() *field.Scalar     { return s.rho }
func (s *ReactingSystem) RhoU() *field.Vector    { return s.rhoU }
func (s *ReactingSystem) RhoE() *field.Scalar    { return s.rhoE }
func (s *ReactingSystem) U() *field.Vector       { return s.u }
func (s *ReactingSystem) P() *field.Scalar       { return s.p }
func (s *ReactingSystem) T() *field.Scalar       { return s.t }
func (s *ReactingSystem) E() *field.Scalar       { return s.e }
func (s *ReactingSystem) MachNo() *field.Scalar  { return s.machNo }
func (s *ReactingSystem) Qdot() *field.Scalar    { return s.qdot }
func (s *ReactingSystem) Thermo() thermo.Model   { return s.thermo }
func (s *ReactingSystem) Phi() *field.FaceScalar { return s.phi }

// SpeedOfSound is sqrt(Cp/(Cv*psi)) from the closure.
func (s *ReactingSystem) SpeedOfSound() (c *field.Scalar) {
	var (
		cp  = s.thermo.Cp()
		cv  = s.thermo.Cv()
		psi = s.thermo.Psi()
	)
	c = s.m.NewCellScalar("speedOfSound")
	for i := range c.Cells {
		c.Cells[i] = math.Sqrt(cp.Cells[i] / (cv.Cells[i] * psi.Cells[i]))
	}
	for i := range c.BFaces {
		c.BFaces[i] = math.Sqrt(cp.BFaces[i] / (cv.BFaces[i] * psi.BFaces[i]))
	}
	return
}

// Encode derives the conserved fields from the primitive state and refreshes
// the reporting Mach number.
func (s *ReactingSystem) Encode() {
	rhoTh := s.thermo.Rho()
	copy(s.rho.Cells, rhoTh.Cells)
	copy(s.rho.BFaces, rhoTh.BFaces)
	for c := range s.rho.Cells {
		s.rhoU.Cells[c] = s.u.Cells[c].Scale(s.rho.Cells[c])
		s.rhoE.Cells[c] = s.rho.Cells[c] * (s.e.Cells[c] + 0.5*s.u.Cells[c].MagSqr())
	}
	for f := range s.rho.BFaces {
		s.rhoU.BFaces[f] = s.u.BFaces[f].Scale(s.rho.BFaces[f])
		s.rhoE.BFaces[f] = s.rho.BFaces[f] * (s.e.BFaces[f] + 0.5*s.u.BFaces[f].MagSqr())
	}
	c := s.SpeedOfSound()
	for i := range s.machNo.Cells {
		s.machNo.Cells[i] = s.u.Cells[i].Mag() / c.Cells[i]
	}
	for i := range s.machNo.BFaces {
		s.machNo.BFaces[i] = s.u.BFaces[i].Mag() / c.BFaces[i]
	}
}

// Decode derives the primitive state from the conserved fields. Boundary
// conditions are expressed on primitives, so after applying them the
// conserved boundary values are resynchronized, and the boundary density is
// recomputed from the boundary pressure through the compressibility.
func (s *ReactingSystem) Decode() {
	rhoTh := s.thermo.Rho()
	copy(rhoTh.Cells, s.rho.Cells)
	copy(rhoTh.BFaces, s.rho.BFaces)

	for c := range s.u.Cells {
		s.u.Cells[c] = s.rhoU.Cells[c].Scale(1 / s.rho.Cells[c])
	}
	s.u.CorrectBoundaryConditions()
	for f := range s.rhoU.BFaces {
		s.rhoU.BFaces[f] = s.u.BFaces[f].Scale(s.rho.BFaces[f])
	}

	for c := range s.e.Cells {
		s.e.Cells[c] = s.rhoE.Cells[c]/s.rho.Cells[c] - 0.5*s.u.Cells[c].MagSqr()
	}
	s.e.CorrectBoundaryConditions()
	for f := range s.rhoE.BFaces {
		s.rhoE.BFaces[f] = s.rho.BFaces[f] * (s.e.BFaces[f] + 0.5*s.u.BFaces[f].MagSqr())
	}

	s.thermo.Correct()
	s.correctPressure()
}

// correctPressure recomputes p = rho/psi on cells, applies the pressure
// boundary conditions, and resynchronizes boundary density as psi*p.
func (s *ReactingSystem) correctPressure() {
	psi := s.thermo.Psi()
	for c := range s.p.Cells {
		s.p.Cells[c] = s.rho.Cells[c] / psi.Cells[c]
	}
	s.p.CorrectBoundaryConditions()
	for f := range s.rho.BFaces {
		s.rho.BFaces[f] = psi.BFaces[f] * s.p.BFaces[f]
	}
}

// Update recomputes the interface fluxes from the current conserved state.
func (s *ReactingSystem) Update() {
	s.Decode()
	s.flux.Update(s.rho, s.u, s.e, s.p, s.SpeedOfSound(),
		s.phi, s.rhoPhi, s.rhoUPhi, s.rhoEPhi)
}

// ClearODEFields drops the flux scheme's cache and every old/delta ledger.
// The outer driver calls this once per completed time step; stale ledgers
// would blend against history from the previous step.
func (s *ReactingSystem) ClearODEFields() {
	s.flux.Clear()
	clearList(&s.rhoOldList)
	clearList(&s.rhoUOldList)
	clearList(&s.rhoEOldList)
	clearList(&s.deltaRhoList)
	clearList(&s.deltaRhoUList)
	clearList(&s.deltaRhoEList)
	if s.reaction != nil {
		for i := range s.ysOldLists {
			clearList(&s.ysOldLists[i])
			clearList(&s.deltaRhoYs[i])
		}
	}
}
