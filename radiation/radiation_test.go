package radiation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openfvm/reactingfv/mesh"
)

func TestNoneModelContributesNothing(t *testing.T) {
	m := mesh.NewLineMesh(3, 1, 1)
	temp := m.NewCellScalar("T")
	temp.SetAll(2000)
	for _, tag := range []string{"", "none"} {
		r := New(tag, m, temp, Config{})
		r.Correct()
		for _, s := range r.Sh().Cells {
			assert.Zero(t, s)
		}
	}
}

func TestGrayLossSignFollowsAmbient(t *testing.T) {
	m := mesh.NewLineMesh(2, 1, 1)
	temp := m.NewCellScalar("T")
	cfg := Config{Absorptivity: 0.5, TAmbient: 300}
	r := New("grayLoss", m, temp, cfg)

	// hotter than ambient radiates energy away
	temp.SetAll(2000)
	r.Correct()
	assert.Negative(t, r.Sh().Cells[0])

	// colder than ambient absorbs
	temp.SetAll(100)
	r.Correct()
	assert.Positive(t, r.Sh().Cells[0])

	// equilibrium at ambient
	temp.SetAll(300)
	r.Correct()
	assert.Zero(t, r.Sh().Cells[0])
}

func TestUnknownRadiationTagPanics(t *testing.T) {
	m := mesh.NewLineMesh(2, 1, 1)
	temp := m.NewCellScalar("T")
	assert.Panics(t, func() { New("P1", m, temp, Config{}) })
}
