package vmath

import "math"

// Frame is a collision frame: X axis along the contact normal, Y along the tangent
// Cos/Sin are computed once and shared by velocity and position transforms
type Frame struct {
	Cos, Sin float64
}

// FrameBetween builds the frame pointing from a to b
// Coincident points yield atan2(0, 0) = 0, the identity frame
func FrameBetween(a, b Vec2) Frame {
	angle := math.Atan2(b.Y-a.Y, b.X-a.X)
	return Frame{Cos: math.Cos(angle), Sin: math.Sin(angle)}
}

// ToLocal rotates a world vector into the frame: X = normal, Y = tangent
func (f Frame) ToLocal(v Vec2) Vec2 {
	return Vec2{
		X: v.X*f.Cos + v.Y*f.Sin,
		Y: v.Y*f.Cos - v.X*f.Sin,
	}
}

// ToWorld rotates a frame-local vector back to world space
func (f Frame) ToWorld(v Vec2) Vec2 {
	return Vec2{
		X: v.X*f.Cos - v.Y*f.Sin,
		Y: v.Y*f.Cos + v.X*f.Sin,
	}
}

// ElasticExchange returns post-collision 1D velocities for two bodies with masses m1, m2
// v1' = (v1(m1-m2) + 2·m2·v2) / (m1+m2), symmetric for v2'
// Caller guarantees m1+m2 > 0
func ElasticExchange(v1, v2, m1, m2 float64) (float64, float64) {
	sum := m1 + m2
	out1 := (v1*(m1-m2) + 2*m2*v2) / sum
	out2 := (v2*(m2-m1) + 2*m1*v1) / sum
	return out1, out2
}
