package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBoundedScalar() *Scalar {
	patches := []Patch{
		{Name: "left", Kind: ZeroGradient, Faces: []int{0}, Owners: []int{0}},
		{Name: "right", Kind: FixedValue, Value: 7, Faces: []int{1}, Owners: []int{2}},
	}
	return NewScalar("s", 3, 2, patches)
}

func TestCorrectBoundaryConditions(t *testing.T) {
	s := newBoundedScalar()
	s.Cells = []float64{1, 2, 3}
	s.CorrectBoundaryConditions()
	assert.Equal(t, 1.0, s.BFaces[0]) // zero gradient copies the owner
	assert.Equal(t, 7.0, s.BFaces[1]) // fixed value restores the prescription
}

func TestCopyIsIndependent(t *testing.T) {
	s := newBoundedScalar()
	s.SetAll(2)
	c := s.Copy()
	c.Cells[0] = 99
	c.BFaces[0] = 99
	assert.Equal(t, 2.0, s.Cells[0])
	assert.Equal(t, 2.0, s.BFaces[0])
}

func TestScalarArithmetic(t *testing.T) {
	s := newBoundedScalar()
	s.Cells = []float64{1, -2, 3}
	a := s.Copy()
	s.AddScaled(2, a)
	assert.Equal(t, []float64{3, -6, 9}, s.Cells)
	s.Max(0)
	assert.Equal(t, []float64{3, 0, 9}, s.Cells)
	s.Scale(1.0 / 3.0)
	assert.InDelta(t, 1, s.Cells[0], 1e-15)
}

func TestBCKindLookup(t *testing.T) {
	assert.Equal(t, ZeroGradient, NewBCKind("zeroGradient"))
	assert.Equal(t, FixedValue, NewBCKind("fixedValue"))
	assert.Panics(t, func() { NewBCKind("slip") })
}

func TestVectorComponentViews(t *testing.T) {
	patches := []VPatch{
		{Name: "left", Kind: ZeroGradient, Faces: []int{0}, Owners: []int{0}},
	}
	v := NewVector("U", 2, 1, patches)
	v.Cells[0] = Vec3{1, 2, 3}
	v.Cells[1] = Vec3{4, 5, 6}
	v.CorrectBoundaryConditions()

	uy := v.Component(1)
	assert.Equal(t, "Uy", uy.Name)
	assert.Equal(t, []float64{2, 5}, uy.Cells)
	assert.Equal(t, 2.0, uy.BFaces[0])

	uy.Cells[0] = 20
	v.SetComponent(1, uy)
	assert.Equal(t, Vec3{1, 20, 3}, v.Cells[0])
}

func TestVec3Operations(t *testing.T) {
	a := Vec3{1, 2, 2}
	b := Vec3{2, 0, -1}
	assert.Equal(t, 3.0, a.Mag())
	assert.Equal(t, 9.0, a.MagSqr())
	assert.Equal(t, 0.0, a.Dot(b))
	assert.Equal(t, Vec3{3, 2, 1}, a.Add(b))
	assert.Equal(t, Vec3{-1, 2, 3}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 4}, a.Scale(2))
	assert.Equal(t, Vec3{2, 0, -2}, a.CmptMultiply(b))
}
