package field

import "fmt"

// VPatch is the vector analog of Patch.
type VPatch struct {
	Name   string
	Kind   BCKind
	Value  Vec3
	Faces  []int
	Owners []int
}

// Vector is a cell centered vector field.
type Vector struct {
	Name    string
	Cells   []Vec3
	BFaces  []Vec3
	Patches []VPatch
}

func NewVector(name string, nCells, nBFaces int, patches []VPatch) (v *Vector) {
	v = &Vector{
		Name:    name,
		Cells:   make([]Vec3, nCells),
		BFaces:  make([]Vec3, nBFaces),
		Patches: patches,
	}
	return
}

func (v *Vector) Copy() (r *Vector) {
	r = &Vector{
		Name:    v.Name,
		Cells:   append([]Vec3(nil), v.Cells...),
		BFaces:  append([]Vec3(nil), v.BFaces...),
		Patches: v.Patches,
	}
	return
}

func (v *Vector) AddScaled(w float64, a *Vector) *Vector {
	for i := range v.Cells {
		v.Cells[i] = v.Cells[i].Add(a.Cells[i].Scale(w))
	}
	for i := range v.BFaces {
		v.BFaces[i] = v.BFaces[i].Add(a.BFaces[i].Scale(w))
	}
	return v
}

func (v *Vector) SetBlend(weights []float64, entries []*Vector) {
	if len(weights) != len(entries) {
		panic(fmt.Errorf("field %s: %d blend weights for %d stored stages",
			v.Name, len(weights), len(entries)))
	}
	for i := range v.Cells {
		v.Cells[i] = Vec3{}
	}
	for i := range v.BFaces {
		v.BFaces[i] = Vec3{}
	}
	for n, e := range entries {
		v.AddScaled(weights[n], e)
	}
}

// Component copies component d into a scalar field sharing no storage with
// the vector. The scalar carries equivalent patch conditions so it can be
// solved for and corrected independently.
func (v *Vector) Component(d int) (s *Scalar) {
	patches := make([]Patch, len(v.Patches))
	for i, p := range v.Patches {
		patches[i] = Patch{
			Name:   p.Name,
			Kind:   p.Kind,
			Value:  p.Value[d],
			Faces:  p.Faces,
			Owners: p.Owners,
		}
	}
	s = &Scalar{
		Name:    fmt.Sprintf("%s%c", v.Name, "xyz"[d]),
		Cells:   make([]float64, len(v.Cells)),
		BFaces:  make([]float64, len(v.BFaces)),
		Patches: patches,
	}
	for i := range v.Cells {
		s.Cells[i] = v.Cells[i][d]
	}
	for i := range v.BFaces {
		s.BFaces[i] = v.BFaces[i][d]
	}
	return
}

// SetComponent writes a solved scalar component back into the vector.
func (v *Vector) SetComponent(d int, s *Scalar) {
	for i := range v.Cells {
		v.Cells[i][d] = s.Cells[i]
	}
	for i := range v.BFaces {
		v.BFaces[i][d] = s.BFaces[i]
	}
}

func (v *Vector) CorrectBoundaryConditions() {
	for _, p := range v.Patches {
		switch p.Kind {
		case ZeroGradient:
			for i, f := range p.Faces {
				v.BFaces[f] = v.Cells[p.Owners[i]]
			}
		case FixedValue:
			for _, f := range p.Faces {
				v.BFaces[f] = p.Value
			}
		}
	}
}
