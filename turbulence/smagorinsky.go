package turbulence

import (
	"math"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
	"github.com/openfvm/reactingfv/thermo"
)

// smagorinsky carries a cell eddy viscosity muT = rho*(Cs*delta)^2*|S|,
// delta being the cube root of the cell volume.
type smagorinsky struct {
	m   *mesh.Mesh
	rho *field.Scalar
	u   *field.Vector
	th  thermo.Model
	cfg Config

	muT *field.Scalar
}

func newSmagorinsky(m *mesh.Mesh, rho *field.Scalar, U *field.Vector, th thermo.Model, cfg Config) Model {
	s := &smagorinsky{
		m:   m,
		rho: rho,
		u:   U,
		th:  th,
		cfg: cfg,
		muT: m.NewCellScalar("muT"),
	}
	s.Correct()
	return s
}

func (s *smagorinsky) Correct() {
	grad := s.m.GradVector(s.u)
	for c := range s.muT.Cells {
		// |S| from the symmetric velocity gradient
		var ss float64
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				sij := 0.5 * (grad[c][i][j] + grad[c][j][i])
				ss += 2 * sij * sij
			}
		}
		delta := math.Cbrt(s.m.Vol[c])
		s.muT.Cells[c] = s.rho.Cells[c] * s.cfg.Cs * s.cfg.Cs * delta * delta * math.Sqrt(ss)
	}
	s.muT.CorrectBoundaryConditions()
}

func (s *smagorinsky) EffectiveViscosity() (mu *field.Scalar) {
	mu = s.th.Mu()
	mu.Name = "muEff"
	mu.Add(s.muT)
	return
}

func (s *smagorinsky) EffectiveThermalDiffusivity() (alpha *field.Scalar) {
	alpha = s.th.Alpha()
	alpha.Name = "alphaEff"
	alphaT := s.muT.Copy()
	alphaT.Scale(1 / s.cfg.Prt)
	alpha.Add(alphaT)
	return
}

func (s *smagorinsky) MomentumStressDivergence(U *field.Vector) []field.Vec3 {
	var (
		m     = s.m
		muEff = s.EffectiveViscosity()
		grad  = m.GradVector(U)
		tau   = make([][3]field.Vec3, m.NCells)
	)
	// tau row d is the flux vector of momentum component d:
	// muEff*(grad(U)^T - (2/3)*div(U)*I)
	for c := range tau {
		divU := grad[c][0][0] + grad[c][1][1] + grad[c][2][2]
		for d := 0; d < 3; d++ {
			for k := 0; k < 3; k++ {
				tau[c][d][k] = grad[c][k][d]
			}
			tau[c][d][d] -= (2.0 / 3.0) * divU
			tau[c][d] = tau[c][d].Scale(muEff.Cells[c])
		}
	}
	out := make([]field.Vec3, m.NCells)
	for d := 0; d < 3; d++ {
		ff := m.NewFaceScalar("tauFlux")
		for i, own := range m.Owner {
			nei := m.Neigh[i]
			tf := tau[own][d].Scale(m.W[i]).Add(tau[nei][d].Scale(1 - m.W[i]))
			ff.Internal[i] = tf.Dot(m.Sf[i])
		}
		for i, own := range m.BOwner {
			ff.Boundary[i] = tau[own][d].Dot(m.BSf[i])
		}
		div := m.Div(ff)
		for c := range out {
			out[c][d] = div[c]
		}
	}
	return out
}
