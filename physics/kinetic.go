package physics

import (
	"github.com/lixenwraith/billiard/vmath"
)

// Integrate advances position by one tick of velocity (explicit Euler, dt = 1 tick)
func Integrate(b *Ball) {
	b.Pos = vmath.V2Add(b.Pos, b.Vel)
}

// reflectAxis clamps one coordinate into [r, bound-r] and reflects its velocity, returns true if reflection occurred
func reflectAxis(pos, vel *float64, radius, bound, restitution float64) bool {
	hit := false
	if *pos-radius < 0 {
		*pos = radius
		*vel = -*vel * restitution
		hit = true
	}
	if *pos+radius > bound {
		*pos = bound - radius
		*vel = -*vel * restitution
		hit = true
	}
	return hit
}

// ResolveWall keeps the ball inside the arena and reflects velocity on contact
// restitution in (0, 1]: 1 is pure reflection, below 1 loses energy per bounce
// A ball wider than the arena oscillates between clamps every tick
func ResolveWall(b *Ball, a Arena, restitution float64) bool {
	rx := reflectAxis(&b.Pos.X, &b.Vel.X, b.Radius, a.Width, restitution)
	ry := reflectAxis(&b.Pos.Y, &b.Vel.Y, b.Radius, a.Height, restitution)
	return rx || ry
}

// ImpulseFactor returns 1 - |vel| / referenceSpeed
// Goes negative once the ball is faster than referenceSpeed
func ImpulseFactor(vel vmath.Vec2, referenceSpeed float64) float64 {
	return 1 - vmath.V2Mag(vel)/referenceSpeed
}

// ApplyImpulse adds impulse scaled by the ball's impulse factor to its velocity and returns the new velocity
// The impulse vector is taken as given, scaling policy belongs to the caller
func ApplyImpulse(b *Ball, impulse vmath.Vec2, referenceSpeed float64) vmath.Vec2 {
	factor := ImpulseFactor(b.Vel, referenceSpeed)
	b.Vel = vmath.V2Add(b.Vel, vmath.V2Scale(impulse, factor))
	return b.Vel
}
