package combustion

import (
	"math"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
	"github.com/openfvm/reactingfv/thermo"
)

// arrhenius is a single-step irreversible reaction
// fuel + s*oxidiser -> (1+s)*product with a temperature Arrhenius rate.
type arrhenius struct {
	m   *mesh.Mesh
	rho *field.Scalar
	th  thermo.Model
	cfg Config

	fuel, oxid, prod int

	rate *field.Scalar // fuel consumption rate, kg/(m3 s)
	qdot *field.Scalar
}

func newArrhenius(m *mesh.Mesh, rho *field.Scalar, th thermo.Model, cfg Config) Model {
	a := &arrhenius{
		m:    m,
		rho:  rho,
		th:   th,
		cfg:  cfg,
		fuel: thermo.SpeciesIndex(th, cfg.Fuel),
		oxid: thermo.SpeciesIndex(th, cfg.Oxidiser),
		prod: thermo.SpeciesIndex(th, cfg.Product),
		rate: m.NewCellScalar("reactionRate"),
		qdot: m.NewCellScalar("Qdot"),
	}
	return a
}

func (a *arrhenius) Correct() {
	var (
		y = a.th.Y()
		t = a.th.T()
	)
	for c := range a.rate.Cells {
		rhoYf := a.rho.Cells[c] * y[a.fuel].Cells[c]
		rhoYo := a.rho.Cells[c] * y[a.oxid].Cells[c]
		a.rate.Cells[c] = a.cfg.A * rhoYf * rhoYo * math.Exp(-a.cfg.Ta/t.Cells[c])
		a.qdot.Cells[c] = a.cfg.HeatOfReaction * a.rate.Cells[c]
	}
	a.rate.CorrectBoundaryConditions()
	a.qdot.CorrectBoundaryConditions()
}

func (a *arrhenius) Qdot() *field.Scalar { return a.qdot }

func (a *arrhenius) R(i int) (r *field.Scalar) {
	r = a.rate.Copy()
	switch i {
	case a.fuel:
		r.Scale(-1)
	case a.oxid:
		r.Scale(-a.cfg.StoichRatio)
	case a.prod:
		r.Scale(1 + a.cfg.StoichRatio)
	default:
		r.SetAll(0)
	}
	return
}
