package field

import "math"

// Vec3 is a cell or face centered vector value. Unsolved mesh directions
// carry zeros.
type Vec3 [3]float64

func (v Vec3) Add(a Vec3) Vec3 {
	return Vec3{v[0] + a[0], v[1] + a[1], v[2] + a[2]}
}

func (v Vec3) Sub(a Vec3) Vec3 {
	return Vec3{v[0] - a[0], v[1] - a[1], v[2] - a[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{s * v[0], s * v[1], s * v[2]}
}

func (v Vec3) Dot(a Vec3) float64 {
	return v[0]*a[0] + v[1]*a[1] + v[2]*a[2]
}

func (v Vec3) MagSqr() float64 {
	return v.Dot(v)
}

func (v Vec3) Mag() float64 {
	return math.Sqrt(v.MagSqr())
}

// CmptMultiply multiplies component-wise, used to mask unsolved directions.
func (v Vec3) CmptMultiply(a Vec3) Vec3 {
	return Vec3{v[0] * a[0], v[1] * a[1], v[2] * a[2]}
}
