// Package fluxscheme computes interface fluxes of mass, momentum and energy
// from the primitive state. The scheme caches its upwind interpolation
// weights between Update and Clear so scalar transport (species fractions)
// can reuse the reconstruction of the carrier flux.
package fluxscheme

import (
	"fmt"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
)

type Scheme interface {
	// Update recomputes the face fluxes from the primitive state: volumetric
	// flux phi, mass flux rhoPhi, momentum flux rhoUPhi, energy flux rhoEPhi.
	Update(rho *field.Scalar, U *field.Vector, e, p, c *field.Scalar,
		phi, rhoPhi *field.FaceScalar, rhoUPhi *field.FaceVector, rhoEPhi *field.FaceScalar)
	// Interpolate reconstructs a cell scalar on faces with the cached upwind
	// weights of the last Update.
	Interpolate(s *field.Scalar, name string) *field.FaceScalar
	// Clear drops the cached weights; called once per completed time step.
	Clear()
}

type constructor func(m *mesh.Mesh) Scheme

var schemes = map[string]constructor{
	"rusanov": newRusanov,
	"hllc":    newHLLC,
}

func New(tag string, m *mesh.Mesh) Scheme {
	ctor, ok := schemes[tag]
	if !ok {
		panic(fmt.Errorf("unknown flux scheme %s", tag))
	}
	return ctor(m)
}

// faceState is the one-sided primitive/conserved state at a face.
type faceState struct {
	rho, p, c float64
	u         field.Vec3
	un        float64 // face-normal velocity
	rhoE      float64
}

func sideState(rho, e, p, c float64, u, n field.Vec3) faceState {
	return faceState{
		rho:  rho,
		p:    p,
		c:    c,
		u:    u,
		un:   u.Dot(n),
		rhoE: rho * (e + 0.5*u.MagSqr()),
	}
}

// upwindCache holds the owner-side weight per internal face.
type upwindCache struct {
	m   *mesh.Mesh
	own []float64
}

func (uc *upwindCache) store(i int, massFlux float64) {
	if massFlux >= 0 {
		uc.own[i] = 1
	} else {
		uc.own[i] = 0
	}
}

func (uc *upwindCache) Interpolate(s *field.Scalar, name string) (f *field.FaceScalar) {
	f = field.NewFaceScalar(name, uc.m.NInternalFaces(), uc.m.NBoundaryFaces())
	for i, own := range uc.m.Owner {
		w := 0.5 // central until the first flux update caches weights
		if uc.own != nil {
			w = uc.own[i]
		}
		f.Internal[i] = w*s.Cells[own] + (1-w)*s.Cells[uc.m.Neigh[i]]
	}
	copy(f.Boundary, s.BFaces)
	return
}

func (uc *upwindCache) Clear() {
	uc.own = nil
}

func (uc *upwindCache) reset() {
	if uc.own == nil {
		uc.own = make([]float64, uc.m.NInternalFaces())
	}
}

// boundaryFluxes evaluates one-sided fluxes on every boundary face from the
// fields' boundary values. Boundary conditions are expressed on primitives,
// so the boundary flux is consistent with them by construction.
func boundaryFluxes(m *mesh.Mesh, rho *field.Scalar, U *field.Vector, e, p *field.Scalar,
	phi, rhoPhi *field.FaceScalar, rhoUPhi *field.FaceVector, rhoEPhi *field.FaceScalar) {
	for i := range m.BOwner {
		var (
			ub   = U.BFaces[i]
			un   = ub.Dot(m.BSf[i]) // volumetric flux through the face
			rhob = rho.BFaces[i]
			pb   = p.BFaces[i]
			rEb  = rhob * (e.BFaces[i] + 0.5*ub.MagSqr())
		)
		phi.Boundary[i] = un
		rhoPhi.Boundary[i] = rhob * un
		rhoUPhi.Boundary[i] = ub.Scale(rhob * un).Add(m.BSf[i].Scale(pb))
		rhoEPhi.Boundary[i] = (rEb + pb) * un
	}
}
