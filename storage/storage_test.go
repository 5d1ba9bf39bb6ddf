package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfvm/reactingfv/field"
	"github.com/openfvm/reactingfv/mesh"
)

func newStore(t *testing.T) *FieldStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "fields.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestScalarRoundTrip(t *testing.T) {
	var (
		s   = newStore(t)
		m   = mesh.NewLineMesh(5, 1, 1)
		rho = m.NewCellScalar("rho")
	)
	for c := range rho.Cells {
		rho.Cells[c] = 1.2 + 0.1*float64(c)
	}
	rho.CorrectBoundaryConditions()
	require.NoError(t, s.WriteScalar(3, rho))

	got := m.NewCellScalar("rho")
	require.NoError(t, s.ReadScalar(3, got))
	assert.Equal(t, rho.Cells, got.Cells)
	assert.Equal(t, rho.BFaces, got.BFaces)
}

func TestVectorRoundTrip(t *testing.T) {
	var (
		s = newStore(t)
		m = mesh.NewLineMesh(4, 1, 1)
		u = m.NewCellVector("U")
	)
	for c := range u.Cells {
		u.Cells[c] = field.Vec3{float64(c), -1, 0.5}
	}
	u.CorrectBoundaryConditions()
	require.NoError(t, s.WriteVector(0, u))

	got := m.NewCellVector("U")
	require.NoError(t, s.ReadVector(0, got))
	assert.Equal(t, u.Cells, got.Cells)
}

func TestWriteReplacesExistingSnapshot(t *testing.T) {
	var (
		s   = newStore(t)
		m   = mesh.NewLineMesh(3, 1, 1)
		phi = m.NewCellScalar("p")
	)
	phi.SetAll(1e5)
	require.NoError(t, s.WriteScalar(1, phi))
	phi.SetAll(2e5)
	require.NoError(t, s.WriteScalar(1, phi))

	got := m.NewCellScalar("p")
	require.NoError(t, s.ReadScalar(1, got))
	assert.Equal(t, 2e5, got.Cells[0])

	indices, err := s.TimeIndices("p")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, indices)
}

func TestReadMissingSnapshotFails(t *testing.T) {
	s := newStore(t)
	m := mesh.NewLineMesh(3, 1, 1)
	assert.Error(t, s.ReadScalar(7, m.NewCellScalar("T")))
}

func TestReadSizeMismatchFails(t *testing.T) {
	s := newStore(t)
	small := mesh.NewLineMesh(3, 1, 1)
	big := mesh.NewLineMesh(6, 1, 1)

	f := small.NewCellScalar("rho")
	f.SetAll(1)
	require.NoError(t, s.WriteScalar(0, f))
	assert.Error(t, s.ReadScalar(0, big.NewCellScalar("rho")))
}

func TestTimeIndicesOrdered(t *testing.T) {
	s := newStore(t)
	m := mesh.NewLineMesh(2, 1, 1)
	f := m.NewCellScalar("e")
	for _, ti := range []int{5, 1, 3} {
		require.NoError(t, s.WriteScalar(ti, f))
	}
	indices, err := s.TimeIndices("e")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, indices)
}
