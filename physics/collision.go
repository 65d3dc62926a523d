package physics

import (
	"github.com/lixenwraith/billiard/parameter"
	"github.com/lixenwraith/billiard/vmath"
)

// Overlapping reports whether two disks touch or intersect
func Overlapping(a, b *Ball) bool {
	sum := a.Radius + b.Radius
	return vmath.V2MagSq(vmath.V2Sub(b.Pos, a.Pos)) <= sum*sum
}

// ResolvePair applies an elastic collision between two touching balls, returns true if they were in contact
//
// Velocities are rotated into the frame along the line of centres, the normal
// components exchanged with radius standing in for mass, and rotated back.
// Positions are then pushed apart along the same frame to a separation of
// rA + rB + SeparationSlop, each ball moving by the other's radius share.
// Coincident centres use the identity frame and separate along +x.
func ResolvePair(a, b *Ball) bool {
	delta := vmath.V2Sub(b.Pos, a.Pos)
	sumR := a.Radius + b.Radius
	if vmath.V2MagSq(delta) > sumR*sumR {
		return false
	}

	frame := vmath.FrameBetween(a.Pos, b.Pos)

	// Velocities
	va := frame.ToLocal(a.Vel)
	vb := frame.ToLocal(b.Vel)
	va.X, vb.X = vmath.ElasticExchange(va.X, vb.X, a.Radius, b.Radius)
	a.Vel = frame.ToWorld(va)
	b.Vel = frame.ToWorld(vb)

	// Positions, same frame
	local := frame.ToLocal(delta)
	push := sumR + parameter.SeparationSlop - local.X
	if push > 0 {
		shiftA := frame.ToWorld(vmath.Vec2{X: -push * b.Radius / sumR})
		shiftB := frame.ToWorld(vmath.Vec2{X: push * a.Radius / sumR})
		a.Pos = vmath.V2Add(a.Pos, shiftA)
		b.Pos = vmath.V2Add(b.Pos, shiftB)
	}
	return true
}

// HitTest returns the id of the first ball in slice order whose disk contains p
func HitTest(p vmath.Vec2, balls []Ball) (int, bool) {
	for i := range balls {
		if balls[i].Contains(p) {
			return balls[i].ID, true
		}
	}
	return 0, false
}
