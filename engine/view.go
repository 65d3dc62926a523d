package engine

import (
	"github.com/lixenwraith/billiard/physics"
	"github.com/lixenwraith/billiard/vmath"
)

// BallView is the read-only per-ball data handed to renderers
type BallView struct {
	ID     int
	Pos    vmath.Vec2
	Radius float64
	Color  string
}

// Frame is everything a renderer sees for one tick
type Frame struct {
	Tick    uint64
	Arena   physics.Arena
	Balls   []BallView // Canonical order, valid until the next Render call
	Paused  bool
	Dropped uint64 // Requests lost to queue overflow

	Selected    int
	HasSelected bool
	PaletteOpen bool
	Palette     []string
}

// Renderer draws a frame; nothing it does feeds back into the simulation
type Renderer interface {
	Render(f *Frame)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(f *Frame)

func (fn RendererFunc) Render(f *Frame) { fn(f) }

// ContactListener receives the contacts of each tick, e.g. for audio feedback
type ContactListener interface {
	OnContacts(c *physics.Contacts)
}
