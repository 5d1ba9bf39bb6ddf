package mesh

import "github.com/openfvm/reactingfv/field"

// Div returns the divergence of a face flux, one value per cell. The flux is
// an extensive face total (already multiplied by face area), so the sum over
// a cell's faces divided by its volume is the finite volume divergence.
func (m *Mesh) Div(f *field.FaceScalar) (out []float64) {
	out = make([]float64, m.NCells)
	for i, own := range m.Owner {
		out[own] += f.Internal[i]
		out[m.Neigh[i]] -= f.Internal[i]
	}
	for i, own := range m.BOwner {
		out[own] += f.Boundary[i]
	}
	for c := range out {
		out[c] /= m.Vol[c]
	}
	return
}

// DivVector is Div for a vector-valued face flux.
func (m *Mesh) DivVector(f *field.FaceVector) (out []field.Vec3) {
	out = make([]field.Vec3, m.NCells)
	for i, own := range m.Owner {
		out[own] = out[own].Add(f.Internal[i])
		out[m.Neigh[i]] = out[m.Neigh[i]].Sub(f.Internal[i])
	}
	for i, own := range m.BOwner {
		out[own] = out[own].Add(f.Boundary[i])
	}
	for c := range out {
		out[c] = out[c].Scale(1 / m.Vol[c])
	}
	return
}

// Grad computes the Green-Gauss gradient of a cell scalar.
func (m *Mesh) Grad(s *field.Scalar) (out []field.Vec3) {
	out = make([]field.Vec3, m.NCells)
	for i, own := range m.Owner {
		nei := m.Neigh[i]
		sf := m.W[i]*s.Cells[own] + (1-m.W[i])*s.Cells[nei]
		df := m.Sf[i].Scale(sf)
		out[own] = out[own].Add(df)
		out[nei] = out[nei].Sub(df)
	}
	for i, own := range m.BOwner {
		out[own] = out[own].Add(m.BSf[i].Scale(s.BFaces[i]))
	}
	for c := range out {
		out[c] = out[c].Scale(1 / m.Vol[c])
	}
	return
}

// GradVector computes the gradient tensor of a cell vector, one row per
// component: out[c][d] is the gradient of component d.
func (m *Mesh) GradVector(v *field.Vector) (out [][3]field.Vec3) {
	out = make([][3]field.Vec3, m.NCells)
	add := func(c int, val field.Vec3, sf field.Vec3, sign float64) {
		for d := 0; d < 3; d++ {
			out[c][d] = out[c][d].Add(sf.Scale(sign * val[d]))
		}
	}
	for i, own := range m.Owner {
		nei := m.Neigh[i]
		vf := v.Cells[own].Scale(m.W[i]).Add(v.Cells[nei].Scale(1 - m.W[i]))
		add(own, vf, m.Sf[i], 1)
		add(nei, vf, m.Sf[i], -1)
	}
	for i, own := range m.BOwner {
		add(own, v.BFaces[i], m.BSf[i], 1)
	}
	for c := range out {
		for d := 0; d < 3; d++ {
			out[c][d] = out[c][d].Scale(1 / m.Vol[c])
		}
	}
	return
}

// FaceInterpolate linearly interpolates a cell scalar to faces. Boundary
// faces take the field's boundary values.
func (m *Mesh) FaceInterpolate(s *field.Scalar) (f *field.FaceScalar) {
	f = m.NewFaceScalar(s.Name + "f")
	for i, own := range m.Owner {
		f.Internal[i] = m.W[i]*s.Cells[own] + (1-m.W[i])*s.Cells[m.Neigh[i]]
	}
	copy(f.Boundary, s.BFaces)
	return
}
