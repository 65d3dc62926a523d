package event

import (
	"github.com/lixenwraith/billiard/vmath"
)

// EmitClick queues a pointer strike at plane point p
func EmitClick(q *RequestQueue, p vmath.Vec2) {
	q.Push(Request{Type: RequestClick, Point: p})
}

// EmitImpulse queues an impulse for ball id
func EmitImpulse(q *RequestQueue, id int, impulse vmath.Vec2) {
	q.Push(Request{Type: RequestImpulse, BallID: id, Vector: impulse})
}

// EmitColor queues a color change for ball id
func EmitColor(q *RequestQueue, id int, color string) {
	q.Push(Request{Type: RequestColor, BallID: id, Color: color})
}
