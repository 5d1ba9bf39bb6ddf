package mesh

import (
	"fmt"

	"github.com/openfvm/reactingfv/field"
)

// BoundaryPatch is a contiguous run of boundary faces sharing a name.
type BoundaryPatch struct {
	Name  string
	Start int
	Len   int
}

// Mesh is an unstructured finite volume mesh in owner/neighbour form: every
// internal face connects an owner cell to a neighbour cell with the face
// area vector Sf pointing owner to neighbour. Boundary faces have an owner
// only, with Sf pointing outward.
type Mesh struct {
	NCells int

	// Internal faces
	Owner, Neigh []int
	Sf           []field.Vec3
	MagSf        []float64
	Delta        []float64 // owner to neighbour centre distance
	W            []float64 // owner weight for linear face interpolation

	// Boundary faces
	BOwner   []int
	BSf      []field.Vec3
	BMagSf   []float64
	BDelta   []float64 // owner centre to face distance
	BPatches []BoundaryPatch

	Vol []float64

	solutionD field.Vec3
	Centres   []field.Vec3
}

// SolutionD reports the solved direction mask: +1 for directions the mesh
// resolves, -1 otherwise (single-cell directions are not solved).
func (m *Mesh) SolutionD() field.Vec3 {
	return m.solutionD
}

// NewBoxMesh builds a structured box of nx*ny*nz hexahedral cells spanning
// lx*ly*lz, expressed in the owner/neighbour form above. Directions with a
// single cell are marked unsolved.
func NewBoxMesh(nx, ny, nz int, lx, ly, lz float64) (m *Mesh) {
	if nx < 1 || ny < 1 || nz < 1 {
		panic(fmt.Errorf("box mesh needs at least one cell per direction, have %d %d %d", nx, ny, nz))
	}
	var (
		dx, dy, dz = lx / float64(nx), ly / float64(ny), lz / float64(nz)
		n          = nx * ny * nz
		cellID     = func(i, j, k int) int { return i + nx*(j+ny*k) }
	)
	m = &Mesh{
		NCells: n,
		Vol:    make([]float64, n),
	}
	for d, nd := range []int{nx, ny, nz} {
		if nd > 1 {
			m.solutionD[d] = 1
		} else {
			m.solutionD[d] = -1
		}
	}
	m.Centres = make([]field.Vec3, n)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				c := cellID(i, j, k)
				m.Vol[c] = dx * dy * dz
				m.Centres[c] = field.Vec3{
					(float64(i) + 0.5) * dx,
					(float64(j) + 0.5) * dy,
					(float64(k) + 0.5) * dz,
				}
			}
		}
	}

	addInternal := func(own, nei int, sf field.Vec3, delta float64) {
		m.Owner = append(m.Owner, own)
		m.Neigh = append(m.Neigh, nei)
		m.Sf = append(m.Sf, sf)
		m.MagSf = append(m.MagSf, sf.Mag())
		m.Delta = append(m.Delta, delta)
		m.W = append(m.W, 0.5)
	}
	// x-normal internal faces, then y, then z
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx-1; i++ {
				addInternal(cellID(i, j, k), cellID(i+1, j, k), field.Vec3{dy * dz, 0, 0}, dx)
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny-1; j++ {
			for i := 0; i < nx; i++ {
				addInternal(cellID(i, j, k), cellID(i, j+1, k), field.Vec3{0, dx * dz, 0}, dy)
			}
		}
	}
	for k := 0; k < nz-1; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				addInternal(cellID(i, j, k), cellID(i, j, k+1), field.Vec3{0, 0, dx * dy}, dz)
			}
		}
	}

	addBoundary := func(own int, sf field.Vec3, delta float64) {
		m.BOwner = append(m.BOwner, own)
		m.BSf = append(m.BSf, sf)
		m.BMagSf = append(m.BMagSf, sf.Mag())
		m.BDelta = append(m.BDelta, delta)
	}
	patch := func(name string, add func()) {
		start := len(m.BOwner)
		add()
		m.BPatches = append(m.BPatches, BoundaryPatch{Name: name, Start: start, Len: len(m.BOwner) - start})
	}
	patch("xMin", func() {
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				addBoundary(cellID(0, j, k), field.Vec3{-dy * dz, 0, 0}, 0.5*dx)
			}
		}
	})
	patch("xMax", func() {
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				addBoundary(cellID(nx-1, j, k), field.Vec3{dy * dz, 0, 0}, 0.5*dx)
			}
		}
	})
	patch("yMin", func() {
		for k := 0; k < nz; k++ {
			for i := 0; i < nx; i++ {
				addBoundary(cellID(i, 0, k), field.Vec3{0, -dx * dz, 0}, 0.5*dy)
			}
		}
	})
	patch("yMax", func() {
		for k := 0; k < nz; k++ {
			for i := 0; i < nx; i++ {
				addBoundary(cellID(i, ny-1, k), field.Vec3{0, dx * dz, 0}, 0.5*dy)
			}
		}
	})
	patch("zMin", func() {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				addBoundary(cellID(i, j, 0), field.Vec3{0, 0, -dx * dy}, 0.5*dz)
			}
		}
	})
	patch("zMax", func() {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				addBoundary(cellID(i, j, nz-1), field.Vec3{0, 0, dx * dy}, 0.5*dz)
			}
		}
	})
	return
}

// NewLineMesh builds a 1-D tube of n cells along x with cross section area.
func NewLineMesh(n int, length, area float64) *Mesh {
	side := 1.0
	return NewBoxMesh(n, 1, 1, length, side, area/side)
}

func (m *Mesh) NInternalFaces() int { return len(m.Owner) }
func (m *Mesh) NBoundaryFaces() int { return len(m.BOwner) }

// NewCellScalar allocates a cell scalar sized to the mesh with zero gradient
// conditions on every patch.
func (m *Mesh) NewCellScalar(name string) *field.Scalar {
	patches := make([]field.Patch, len(m.BPatches))
	for i, bp := range m.BPatches {
		patches[i] = field.Patch{
			Name:   bp.Name,
			Kind:   field.ZeroGradient,
			Faces:  faceRange(bp),
			Owners: m.BOwner[bp.Start : bp.Start+bp.Len],
		}
	}
	return field.NewScalar(name, m.NCells, m.NBoundaryFaces(), patches)
}

func (m *Mesh) NewCellVector(name string) *field.Vector {
	patches := make([]field.VPatch, len(m.BPatches))
	for i, bp := range m.BPatches {
		patches[i] = field.VPatch{
			Name:   bp.Name,
			Kind:   field.ZeroGradient,
			Faces:  faceRange(bp),
			Owners: m.BOwner[bp.Start : bp.Start+bp.Len],
		}
	}
	return field.NewVector(name, m.NCells, m.NBoundaryFaces(), patches)
}

func (m *Mesh) NewFaceScalar(name string) *field.FaceScalar {
	return field.NewFaceScalar(name, m.NInternalFaces(), m.NBoundaryFaces())
}

func (m *Mesh) NewFaceVector(name string) *field.FaceVector {
	return field.NewFaceVector(name, m.NInternalFaces(), m.NBoundaryFaces())
}

func faceRange(bp BoundaryPatch) (r []int) {
	r = make([]int, bp.Len)
	for i := range r {
		r[i] = bp.Start + i
	}
	return
}
