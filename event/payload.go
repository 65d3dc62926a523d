package event

import (
	"github.com/lixenwraith/billiard/vmath"
)

// Request is a queued mutation, applied strictly between ticks
type Request struct {
	Type   RequestType
	BallID int
	Point  vmath.Vec2 // Plane coordinates for RequestClick
	Vector vmath.Vec2 // Impulse for RequestImpulse
	Color  string
}

// Notice is produced while draining requests so the host can react (palette, logging)
type Notice struct {
	Type     NoticeType
	BallID   int
	Point    vmath.Vec2
	Velocity vmath.Vec2
	Color    string
	Request  Request
	Err      error
}
