package thermo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openfvm/reactingfv/mesh"
)

func newAirModel(m *mesh.Mesh) Model {
	return New("perfectGas", m, Config{
		Species: []SpeciesSpec{
			{Name: "O2", W: 32.00, Cp: 918},
			{Name: "N2", W: 28.01, Cp: 1040},
		},
		As: 1.67e-6,
		Ts: 170,
		Pr: 0.7,
	})
}

func TestPerfectGasMixtureRelations(t *testing.T) {
	m := mesh.NewLineMesh(4, 1, 1)
	th := newAirModel(m)
	th.Y()[0].SetAll(0.23)
	th.Y()[1].SetAll(0.77)

	r := 0.23*RUniversal/32.00 + 0.77*RUniversal/28.01
	cpWant := 0.23*918 + 0.77*1040
	cvWant := cpWant - r

	assert.InDelta(t, cpWant, th.Cp().Cells[0], 1e-9)
	assert.InDelta(t, cvWant, th.Cv().Cells[0], 1e-9)

	// set a temperature through e, then check T and psi
	tWant := 300.0
	th.E().SetAll(cvWant * tWant)
	th.E().CorrectBoundaryConditions()
	th.Correct()
	assert.InDelta(t, tWant, th.T().Cells[0], 1e-9)
	assert.InDelta(t, tWant, th.T().BFaces[0], 1e-9)
	assert.InDelta(t, 1/(r*tWant), th.Psi().Cells[0], 1e-12)

	// rho = psi*p closes the ideal gas law
	p := 101325.0
	rho := th.Psi().Cells[0] * p
	assert.InDelta(t, p, rho*r*tWant, 1e-6)
}

func TestSutherlandViscosity(t *testing.T) {
	m := mesh.NewLineMesh(2, 1, 1)
	th := newAirModel(m)
	th.Y()[1].SetAll(1)
	cv := th.Cv().Cells[0]
	th.E().SetAll(cv * 300)
	th.E().CorrectBoundaryConditions()
	th.Correct()

	want := 1.67e-6 * 300 * math.Sqrt(300) / (300 + 170)
	assert.InDelta(t, want, th.Mu().Cells[0], 1e-12)
	assert.InDelta(t, want/0.7, th.Alpha().Cells[0], 1e-12)
}

func TestSpeciesIndexLookup(t *testing.T) {
	m := mesh.NewLineMesh(2, 1, 1)
	th := newAirModel(m)
	assert.Equal(t, 1, SpeciesIndex(th, "N2"))
	assert.Panics(t, func() { SpeciesIndex(th, "Ar") })
}

func TestUnknownModelTagPanics(t *testing.T) {
	m := mesh.NewLineMesh(2, 1, 1)
	assert.Panics(t, func() { New("janafTables", m, Config{}) })
}

func TestValidateEnergyContract(t *testing.T) {
	m := mesh.NewLineMesh(2, 1, 1)
	th := newAirModel(m)
	assert.NotPanics(t, func() { th.Validate("solver", "e") })
	assert.Panics(t, func() { th.Validate("solver", "h") })
}
