package fluxscheme

import (
	"math"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
)

// rusanov is the local Lax-Friedrichs flux: centered flux plus dissipation
// scaled by the largest local wave speed.
type rusanov struct {
	upwindCache
}

func newRusanov(m *mesh.Mesh) Scheme {
	return &rusanov{upwindCache{m: m}}
}

func (r *rusanov) Update(rho *field.Scalar, U *field.Vector, e, p, c *field.Scalar,
	phi, rhoPhi *field.FaceScalar, rhoUPhi *field.FaceVector, rhoEPhi *field.FaceScalar) {
	m := r.m
	r.reset()
	for i, own := range m.Owner {
		var (
			nei   = m.Neigh[i]
			magSf = m.MagSf[i]
			n     = m.Sf[i].Scale(1 / magSf)
			sL    = sideState(rho.Cells[own], e.Cells[own], p.Cells[own], c.Cells[own], U.Cells[own], n)
			sR    = sideState(rho.Cells[nei], e.Cells[nei], p.Cells[nei], c.Cells[nei], U.Cells[nei], n)
			lam   = math.Max(math.Abs(sL.un)+sL.c, math.Abs(sR.un)+sR.c)
		)
		phi.Internal[i] = 0.5 * (sL.un + sR.un) * magSf
		rhoPhi.Internal[i] = magSf * (0.5*(sL.rho*sL.un+sR.rho*sR.un) - 0.5*lam*(sR.rho-sL.rho))
		momL := sL.u.Scale(sL.rho * sL.un).Add(n.Scale(sL.p))
		momR := sR.u.Scale(sR.rho * sR.un).Add(n.Scale(sR.p))
		diss := sR.u.Scale(sR.rho).Sub(sL.u.Scale(sL.rho)).Scale(0.5 * lam)
		rhoUPhi.Internal[i] = momL.Add(momR).Scale(0.5).Sub(diss).Scale(magSf)
		rhoEPhi.Internal[i] = magSf * (0.5*((sL.rhoE+sL.p)*sL.un+(sR.rhoE+sR.p)*sR.un) -
			0.5*lam*(sR.rhoE-sL.rhoE))
		r.store(i, rhoPhi.Internal[i])
	}
	boundaryFluxes(m, rho, U, e, p, phi, rhoPhi, rhoUPhi, rhoEPhi)
}
