package turbulence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
	"github.com/openfvm/reactingfv/thermo"
)

func newMixture(m *mesh.Mesh) thermo.Model {
	th := thermo.New("perfectGas", m, thermo.Config{
		Species: []thermo.SpeciesSpec{{Name: "N2", W: 28.01, Cp: 1040}},
		As:      1.67e-6, Ts: 170, Pr: 0.7,
	})
	th.Y()[0].SetAll(1)
	cv := th.Cv().Cells[0]
	th.E().SetAll(cv * 300)
	th.E().CorrectBoundaryConditions()
	th.Correct()
	return th
}

func TestEddyViscosityVanishesInUniformFlow(t *testing.T) {
	m := mesh.NewBoxMesh(4, 4, 1, 1, 1, 0.1)
	th := newMixture(m)
	rho := m.NewCellScalar("rho")
	rho.SetAll(1.2)
	u := m.NewCellVector("U")
	for c := range u.Cells {
		u.Cells[c] = field.Vec3{10, 5, 0}
	}
	u.CorrectBoundaryConditions()

	turb := New("smagorinsky", m, rho, u, th, Config{Cs: 0.17, Prt: 0.9})
	turb.Correct()

	// zero strain: the effective viscosity reduces to the molecular one
	muEff := turb.EffectiveViscosity()
	mu := th.Mu()
	for c := range muEff.Cells {
		assert.InDelta(t, mu.Cells[c], muEff.Cells[c], mu.Cells[c]*1e-6)
	}
}

func TestShearRaisesEffectiveViscosity(t *testing.T) {
	m := mesh.NewBoxMesh(4, 8, 1, 1, 1, 0.1)
	th := newMixture(m)
	rho := m.NewCellScalar("rho")
	rho.SetAll(1.2)
	u := m.NewCellVector("U")
	for c := range u.Cells {
		u.Cells[c] = field.Vec3{100 * m.Centres[c][1], 0, 0}
	}
	u.CorrectBoundaryConditions()

	turb := New("smagorinsky", m, rho, u, th, Config{Cs: 0.17, Prt: 0.9})
	turb.Correct()

	mu := th.Mu()
	muEff := turb.EffectiveViscosity()
	assert.Greater(t, muEff.Cells[5], mu.Cells[5])

	alphaEff := turb.EffectiveThermalDiffusivity()
	alpha := th.Alpha()
	assert.Greater(t, alphaEff.Cells[5], alpha.Cells[5])
}

func TestStressDivergenceZeroForUniformFlow(t *testing.T) {
	m := mesh.NewBoxMesh(4, 4, 1, 1, 1, 0.1)
	th := newMixture(m)
	rho := m.NewCellScalar("rho")
	rho.SetAll(1.2)
	u := m.NewCellVector("U")
	for c := range u.Cells {
		u.Cells[c] = field.Vec3{10, 0, 0}
	}
	u.CorrectBoundaryConditions()

	turb := New("smagorinsky", m, rho, u, th, Config{Cs: 0.17, Prt: 0.9})
	div := turb.MomentumStressDivergence(u)
	for _, v := range div {
		assert.InDelta(t, 0, v.Mag(), 1e-9)
	}
}

func TestAbsentTurbulenceReturnsNil(t *testing.T) {
	m := mesh.NewLineMesh(2, 1, 1)
	th := newMixture(m)
	rho := m.NewCellScalar("rho")
	u := m.NewCellVector("U")
	assert.Nil(t, New("", m, rho, u, th, Config{}))
	assert.Nil(t, New("none", m, rho, u, th, Config{}))
	assert.Panics(t, func() { New("kEpsilon", m, rho, u, th, Config{}) })
}
