package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openfvm/reactingfv/field"
)

func TestBoxMeshGeometry(t *testing.T) {
	m := NewBoxMesh(4, 3, 2, 4, 3, 2)
	assert.Equal(t, 24, m.NCells)
	for _, v := range m.Vol {
		assert.InDelta(t, 1.0, v, 1e-12)
	}
	// areas sum to zero per cell (closed cells)
	sum := make([]field.Vec3, m.NCells)
	for i, own := range m.Owner {
		sum[own] = sum[own].Add(m.Sf[i])
		sum[m.Neigh[i]] = sum[m.Neigh[i]].Sub(m.Sf[i])
	}
	for i, own := range m.BOwner {
		sum[own] = sum[own].Add(m.BSf[i])
	}
	for _, v := range sum {
		assert.InDelta(t, 0, v.Mag(), 1e-12)
	}
	assert.Equal(t, field.Vec3{1, 1, 1}, m.SolutionD())
}

func TestLineMeshSolutionDirections(t *testing.T) {
	m := NewLineMesh(8, 1, 1)
	assert.Equal(t, field.Vec3{1, -1, -1}, m.SolutionD())
	assert.Equal(t, 7, m.NInternalFaces())
}

func TestDivOfUniformFluxIsZero(t *testing.T) {
	m := NewBoxMesh(4, 4, 1, 1, 1, 0.1)
	// uniform velocity dotted with face areas
	u := field.Vec3{2, -1, 0}
	f := m.NewFaceScalar("phi")
	for i := range m.Sf {
		f.Internal[i] = u.Dot(m.Sf[i])
	}
	for i := range m.BSf {
		f.Boundary[i] = u.Dot(m.BSf[i])
	}
	for _, d := range m.Div(f) {
		assert.InDelta(t, 0, d, 1e-10)
	}
}

func TestGradOfLinearFieldIsExact(t *testing.T) {
	m := NewBoxMesh(6, 5, 1, 1, 1, 0.1)
	g := field.Vec3{3, -2, 0}
	s := m.NewCellScalar("s")
	for c := range s.Cells {
		s.Cells[c] = 1 + g.Dot(m.Centres[c])
	}
	// boundary values extrapolated exactly for the linear profile
	for i, own := range m.BOwner {
		n := m.BSf[i].Scale(1 / m.BMagSf[i])
		s.BFaces[i] = s.Cells[own] + g.Dot(n)*m.BDelta[i]
	}
	grad := m.Grad(s)
	for c := range grad {
		assert.InDelta(t, g[0], grad[c][0], 1e-9)
		assert.InDelta(t, g[1], grad[c][1], 1e-9)
	}
}

func TestFaceInterpolateMidpoint(t *testing.T) {
	m := NewLineMesh(4, 1, 1)
	s := m.NewCellScalar("s")
	for c := range s.Cells {
		s.Cells[c] = float64(c)
	}
	f := m.FaceInterpolate(s)
	for i, own := range m.Owner {
		assert.InDelta(t, 0.5*(s.Cells[own]+s.Cells[m.Neigh[i]]), f.Internal[i], 1e-12)
	}
}
