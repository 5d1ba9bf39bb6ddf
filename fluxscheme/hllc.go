package fluxscheme

import (
	"math"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
)

// hllc restores the contact wave the two-wave solvers smear: left and right
// states are connected through a middle wave speed SM with star states on
// either side.
type hllc struct {
	upwindCache
}

func newHLLC(m *mesh.Mesh) Scheme {
	return &hllc{upwindCache{m: m}}
}

func (h *hllc) Update(rho *field.Scalar, U *field.Vector, e, p, c *field.Scalar,
	phi, rhoPhi *field.FaceScalar, rhoUPhi *field.FaceVector, rhoEPhi *field.FaceScalar) {
	m := h.m
	h.reset()
	for i, own := range m.Owner {
		var (
			nei   = m.Neigh[i]
			magSf = m.MagSf[i]
			n     = m.Sf[i].Scale(1 / magSf)
			sL    = sideState(rho.Cells[own], e.Cells[own], p.Cells[own], c.Cells[own], U.Cells[own], n)
			sR    = sideState(rho.Cells[nei], e.Cells[nei], p.Cells[nei], c.Cells[nei], U.Cells[nei], n)
		)
		mass, mom, energy, un := hllcFlux(sL, sR, n)
		phi.Internal[i] = un * magSf
		rhoPhi.Internal[i] = mass * magSf
		rhoUPhi.Internal[i] = mom.Scale(magSf)
		rhoEPhi.Internal[i] = energy * magSf
		h.store(i, rhoPhi.Internal[i])
	}
	boundaryFluxes(m, rho, U, e, p, phi, rhoPhi, rhoUPhi, rhoEPhi)
}

// hllcFlux returns face-normal mass, momentum and energy fluxes per unit
// area plus the face-normal velocity used for the volumetric flux.
func hllcFlux(sL, sR faceState, n field.Vec3) (mass float64, mom field.Vec3, energy, un float64) {
	var (
		// Davis wave speed estimates
		sl = math.Min(sL.un-sL.c, sR.un-sR.c)
		sr = math.Max(sL.un+sL.c, sR.un+sR.c)
		sm = (sR.p - sL.p + sL.rho*sL.un*(sl-sL.un) - sR.rho*sR.un*(sr-sR.un)) /
			(sL.rho*(sl-sL.un) - sR.rho*(sr-sR.un))
	)
	flux := func(s faceState) (float64, field.Vec3, float64) {
		return s.rho * s.un,
			s.u.Scale(s.rho * s.un).Add(n.Scale(s.p)),
			(s.rhoE + s.p) * s.un
	}
	star := func(s faceState, sk float64) (float64, field.Vec3, float64) {
		f := (sk - s.un) / (sk - sm)
		rhoStar := s.rho * f
		uStar := s.u.Add(n.Scale(sm - s.un))
		rhoEStar := rhoStar * (s.rhoE/s.rho +
			(sm-s.un)*(sm+s.p/(s.rho*(sk-s.un))))
		mk, fk, ek := flux(s)
		return mk + sk*(rhoStar-s.rho),
			fk.Add(uStar.Scale(rhoStar).Sub(s.u.Scale(s.rho)).Scale(sk)),
			ek + sk*(rhoEStar-s.rhoE)
	}
	switch {
	case sl >= 0:
		mass, mom, energy = flux(sL)
		un = sL.un
	case sm >= 0:
		mass, mom, energy = star(sL, sl)
		un = sm
	case sr >= 0:
		mass, mom, energy = star(sR, sr)
		un = sm
	default:
		mass, mom, energy = flux(sR)
		un = sR.un
	}
	return
}
