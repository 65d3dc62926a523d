package vmath

import "math"

// Vec2 is a float64 2D vector in plane units, +x right, +y down
type Vec2 struct {
	X, Y float64
}

// V2 builds a vector from components
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// V2MagSq returns squared magnitude without sqrt
func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

// V2Mag returns Euclidean length sqrt(x² + y²)
func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2Dist returns distance between two points
func V2Dist(a, b Vec2) float64 {
	return V2Mag(V2Sub(b, a))
}

// V2Normalize returns unit vector, zero-safe
func V2Normalize(v Vec2) Vec2 {
	mag := V2Mag(v)
	if mag == 0 {
		return Vec2{}
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// V2Dot returns a.X*b.X + a.Y*b.Y
func V2Dot(a, b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// IsFinite reports whether both components are neither NaN nor Inf
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
