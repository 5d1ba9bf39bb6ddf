package fluxscheme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
)

type fluxSet struct {
	phi, rhoPhi *field.FaceScalar
	rhoUPhi     *field.FaceVector
	rhoEPhi     *field.FaceScalar
}

func newFluxSet(m *mesh.Mesh) fluxSet {
	return fluxSet{
		phi:     m.NewFaceScalar("phi"),
		rhoPhi:  m.NewFaceScalar("rhoPhi"),
		rhoUPhi: m.NewFaceVector("rhoUPhi"),
		rhoEPhi: m.NewFaceScalar("rhoEPhi"),
	}
}

// uniformState builds rho, U, e, p, c fields that are constant everywhere.
func uniformState(m *mesh.Mesh, rhoVal, uVal, eVal, pVal, cVal float64) (
	rho *field.Scalar, u *field.Vector, e, p, c *field.Scalar) {
	rho = m.NewCellScalar("rho")
	rho.SetAll(rhoVal)
	u = m.NewCellVector("U")
	for i := range u.Cells {
		u.Cells[i] = field.Vec3{uVal, 0, 0}
	}
	u.CorrectBoundaryConditions()
	e = m.NewCellScalar("e")
	e.SetAll(eVal)
	p = m.NewCellScalar("p")
	p.SetAll(pVal)
	c = m.NewCellScalar("c")
	c.SetAll(cVal)
	return
}

// every scheme must reduce to the exact analytic flux on a uniform state
func TestUniformStateFluxConsistency(t *testing.T) {
	for _, tag := range []string{"rusanov", "hllc"} {
		t.Run(tag, func(t *testing.T) {
			var (
				m       = mesh.NewLineMesh(8, 1, 1)
				sch     = New(tag, m)
				f       = newFluxSet(m)
				rhoVal  = 1.2
				uVal    = 30.0
				eVal    = 2e5
				pVal    = 1e5
				rhoEVal = rhoVal * (eVal + 0.5*uVal*uVal)
			)
			rho, u, e, p, c := uniformState(m, rhoVal, uVal, eVal, pVal, 340)
			sch.Update(rho, u, e, p, c, f.phi, f.rhoPhi, f.rhoUPhi, f.rhoEPhi)

			for i := range m.Owner {
				magSf := m.MagSf[i]
				assert.InDelta(t, uVal*magSf, f.phi.Internal[i], 1e-9)
				assert.InDelta(t, rhoVal*uVal*magSf, f.rhoPhi.Internal[i], 1e-9)
				wantMom := rhoVal*uVal*uVal*magSf + pVal*magSf
				assert.InDelta(t, wantMom, f.rhoUPhi.Internal[i][0], 1e-6)
				assert.InDelta(t, (rhoEVal+pVal)*uVal*magSf, f.rhoEPhi.Internal[i], 1e-3)
			}
		})
	}
}

func TestAtRestOnlyPressureFlux(t *testing.T) {
	for _, tag := range []string{"rusanov", "hllc"} {
		t.Run(tag, func(t *testing.T) {
			m := mesh.NewLineMesh(6, 1, 1)
			sch := New(tag, m)
			f := newFluxSet(m)
			rho, u, e, p, c := uniformState(m, 1.2, 0, 2e5, 1e5, 340)
			sch.Update(rho, u, e, p, c, f.phi, f.rhoPhi, f.rhoUPhi, f.rhoEPhi)

			for i := range m.Owner {
				assert.InDelta(t, 0, f.rhoPhi.Internal[i], 1e-9)
				assert.InDelta(t, 0, f.rhoEPhi.Internal[i], 1e-6)
				want := m.Sf[i].Scale(1e5)
				assert.InDelta(t, want[0], f.rhoUPhi.Internal[i][0], 1e-6)
			}
			// boundaries carry the pressure term too
			for i := range m.BOwner {
				want := m.BSf[i].Scale(1e5)
				assert.InDelta(t, want[0], f.rhoUPhi.Boundary[i][0], 1e-9)
			}
		})
	}
}

func TestUpwindCacheFollowsCarrierFlux(t *testing.T) {
	m := mesh.NewLineMesh(4, 1, 1)
	sch := New("hllc", m)
	f := newFluxSet(m)
	rho, u, e, p, c := uniformState(m, 1.2, 50, 2e5, 1e5, 340)
	sch.Update(rho, u, e, p, c, f.phi, f.rhoPhi, f.rhoUPhi, f.rhoEPhi)

	s := m.NewCellScalar("Y")
	for cIdx := range s.Cells {
		s.Cells[cIdx] = float64(cIdx)
	}
	s.CorrectBoundaryConditions()

	// positive mass flux: faces take the owner (upwind) value
	faceY := sch.Interpolate(s, "Yf")
	for i, own := range m.Owner {
		assert.Equal(t, s.Cells[own], faceY.Internal[i])
	}

	// after Clear the reconstruction falls back to central weights
	sch.Clear()
	central := sch.Interpolate(s, "Yf")
	for i, own := range m.Owner {
		want := 0.5 * (s.Cells[own] + s.Cells[m.Neigh[i]])
		assert.InDelta(t, want, central.Internal[i], 1e-12)
	}
}

func TestUnknownSchemeTagPanics(t *testing.T) {
	m := mesh.NewLineMesh(2, 1, 1)
	assert.Panics(t, func() { New("ausm", m) })
}
