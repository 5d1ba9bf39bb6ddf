package field

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

type BCKind uint8

const (
	ZeroGradient BCKind = iota
	FixedValue
)

var bcNames = map[string]BCKind{
	"zeroGradient": ZeroGradient,
	"fixedValue":   FixedValue,
}

func NewBCKind(label string) (k BCKind) {
	var ok bool
	if k, ok = bcNames[label]; !ok {
		panic(fmt.Errorf("unknown boundary condition type %s", label))
	}
	return
}

// Patch is one boundary region of a field. Faces index into the field's
// boundary storage, Owners are the adjacent cell per boundary face. The
// geometry indices are shared with every field on the same mesh.
type Patch struct {
	Name   string
	Kind   BCKind
	Value  float64
	Faces  []int
	Owners []int
}

// Scalar is a cell centered scalar field with one value per cell plus one
// value per boundary face.
type Scalar struct {
	Name    string
	Cells   []float64
	BFaces  []float64
	Patches []Patch
}

func NewScalar(name string, nCells, nBFaces int, patches []Patch) (s *Scalar) {
	s = &Scalar{
		Name:    name,
		Cells:   make([]float64, nCells),
		BFaces:  make([]float64, nBFaces),
		Patches: patches,
	}
	return
}

func (s *Scalar) Copy() (r *Scalar) {
	r = &Scalar{
		Name:    s.Name,
		Cells:   append([]float64(nil), s.Cells...),
		BFaces:  append([]float64(nil), s.BFaces...),
		Patches: s.Patches,
	}
	return
}

// SetAll assigns val to every cell and boundary face.
func (s *Scalar) SetAll(val float64) *Scalar {
	for i := range s.Cells {
		s.Cells[i] = val
	}
	for i := range s.BFaces {
		s.BFaces[i] = val
	}
	return s
}

// Max floors every cell and boundary value at lo.
func (s *Scalar) Max(lo float64) *Scalar {
	for i, v := range s.Cells {
		if v < lo {
			s.Cells[i] = lo
		}
	}
	for i, v := range s.BFaces {
		if v < lo {
			s.BFaces[i] = lo
		}
	}
	return s
}

func (s *Scalar) Scale(a float64) *Scalar {
	floats.Scale(a, s.Cells)
	floats.Scale(a, s.BFaces)
	return s
}

func (s *Scalar) Add(a *Scalar) *Scalar {
	floats.Add(s.Cells, a.Cells)
	floats.Add(s.BFaces, a.BFaces)
	return s
}

func (s *Scalar) AddScaled(w float64, a *Scalar) *Scalar {
	floats.AddScaled(s.Cells, w, a.Cells)
	floats.AddScaled(s.BFaces, w, a.BFaces)
	return s
}

// SetBlend overwrites the field with the weighted sum of entries. Used by the
// multi-stage ledgers; the weights are owned by the time integration scheme.
func (s *Scalar) SetBlend(weights []float64, entries []*Scalar) {
	if len(weights) != len(entries) {
		panic(fmt.Errorf("field %s: %d blend weights for %d stored stages",
			s.Name, len(weights), len(entries)))
	}
	for i := range s.Cells {
		s.Cells[i] = 0
	}
	for i := range s.BFaces {
		s.BFaces[i] = 0
	}
	for n, e := range entries {
		s.AddScaled(weights[n], e)
	}
}

// CorrectBoundaryConditions re-evaluates boundary values from the patch
// conditions: zero gradient copies the owner cell, fixed value restores the
// prescribed value.
func (s *Scalar) CorrectBoundaryConditions() {
	for _, p := range s.Patches {
		switch p.Kind {
		case ZeroGradient:
			for i, f := range p.Faces {
				s.BFaces[f] = s.Cells[p.Owners[i]]
			}
		case FixedValue:
			for _, f := range p.Faces {
				s.BFaces[f] = p.Value
			}
		}
	}
}
