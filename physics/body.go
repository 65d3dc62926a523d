package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/billiard/vmath"
)

var (
	// ErrInvalidBall is returned for a ball with non-positive or non-finite radius
	ErrInvalidBall = errors.New("invalid ball")

	// ErrInvalidArena is returned for an arena with non-positive or non-finite bounds
	ErrInvalidArena = errors.New("invalid arena")

	// ErrUnknownBallID is returned when a request targets an id not in the simulation
	ErrUnknownBallID = errors.New("unknown ball id")
)

// Ball is a circular rigid body on the plane
// Radius doubles as the mass term in pairwise collisions
type Ball struct {
	ID     int
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Radius float64
	Color  string // Display only, no effect on physics
}

// NewBall validates and builds a ball
func NewBall(id int, pos vmath.Vec2, radius float64, color string, vel vmath.Vec2) (Ball, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Ball{}, fmt.Errorf("%w: id %d radius %v", ErrInvalidBall, id, radius)
	}
	if !pos.IsFinite() || !vel.IsFinite() {
		return Ball{}, fmt.Errorf("%w: id %d non-finite state", ErrInvalidBall, id)
	}
	return Ball{
		ID:     id,
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Color:  color,
	}, nil
}

// Speed returns velocity magnitude
func (b *Ball) Speed() float64 {
	return vmath.V2Mag(b.Vel)
}

// Contains reports whether p lies inside or on the disk
func (b *Ball) Contains(p vmath.Vec2) bool {
	return vmath.V2MagSq(vmath.V2Sub(p, b.Pos)) <= b.Radius*b.Radius
}

// Arena is the immutable simulation plane [0, Width] × [0, Height]
type Arena struct {
	Width, Height float64
}

// NewArena validates and builds an arena
func NewArena(width, height float64) (Arena, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Arena{}, fmt.Errorf("%w: %vx%v", ErrInvalidArena, width, height)
	}
	return Arena{Width: width, Height: height}, nil
}

// Center returns the arena midpoint
func (a Arena) Center() vmath.Vec2 {
	return vmath.Vec2{X: a.Width / 2, Y: a.Height / 2}
}
