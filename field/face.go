package field

// FaceScalar holds one value per internal face plus one per boundary face.
// Face fields are flux carriers: they are rebuilt every flux refresh and are
// never persisted across outer time steps.
type FaceScalar struct {
	Name     string
	Internal []float64
	Boundary []float64
}

func NewFaceScalar(name string, nInternal, nBoundary int) *FaceScalar {
	return &FaceScalar{
		Name:     name,
		Internal: make([]float64, nInternal),
		Boundary: make([]float64, nBoundary),
	}
}

// FaceVector is the vector analog of FaceScalar.
type FaceVector struct {
	Name     string
	Internal []Vec3
	Boundary []Vec3
}

func NewFaceVector(name string, nInternal, nBoundary int) *FaceVector {
	return &FaceVector{
		Name:     name,
		Internal: make([]Vec3, nInternal),
		Boundary: make([]Vec3, nBoundary),
	}
}
