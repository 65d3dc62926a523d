package engine

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lixenwraith/billiard/event"
	"github.com/lixenwraith/billiard/parameter"
)

// ControlType is a host-level command that never touches physics directly
type ControlType uint8

const (
	ControlNone ControlType = iota
	ControlTogglePause
	ControlPickColor    // Index into the palette, applied to the selected ball
	ControlClosePalette // Dismiss the palette without picking
)

// Control is sent from the input goroutine to the loop
type Control struct {
	Type  ControlType
	Index int
}

// LoopConfig wires a Loop
type LoopConfig struct {
	Interval time.Duration
	Renderer Renderer
	Contacts ContactListener // Optional
	Palette  []string
}

// Loop is the host driver: one tick and one render per interval, pause, palette selection
// Run owns the Simulation for its whole lifetime
type Loop struct {
	sim      *Simulation
	interval time.Duration
	renderer Renderer
	contacts ContactListener
	palette  []string

	controls chan Control

	paused      bool
	selected    int
	hasSelected bool
	paletteOpen bool

	frame       Frame
	lastDropped uint64
}

// NewLoop builds a loop around sim; Interval defaults to parameter.TickInterval
func NewLoop(sim *Simulation, cfg LoopConfig) (*Loop, error) {
	if sim == nil {
		return nil, errors.New("loop: nil simulation")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("loop: nil renderer")
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = parameter.TickInterval
	}
	palette := cfg.Palette
	if len(palette) == 0 {
		palette = parameter.DefaultPalette
	}
	return &Loop{
		sim:      sim,
		interval: interval,
		renderer: cfg.Renderer,
		contacts: cfg.Contacts,
		palette:  palette,
		controls: make(chan Control, parameter.InputChannelSize),
	}, nil
}

// Submit queues a control without blocking; returns false if the channel is full
// Safe for concurrent use
func (l *Loop) Submit(c Control) bool {
	select {
	case l.controls <- c:
		return true
	default:
		log.Printf("loop: control channel full, dropped %d", c.Type)
		return false
	}
}

// Queue exposes the simulation request queue to input producers
func (l *Loop) Queue() *event.RequestQueue {
	return l.sim.Queue()
}

// Run ticks until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-l.controls:
			l.control(c)
		case <-ticker.C:
			l.Step()
		}
	}
}

// Step runs one frame synchronously: pending controls, requests, physics unless paused, render
func (l *Loop) Step() {
drain:
	for {
		select {
		case c := <-l.controls:
			l.control(c)
		default:
			break drain
		}
	}

	var notices []event.Notice
	if l.paused {
		notices = l.sim.Drain()
	} else {
		n, c := l.sim.Tick()
		notices = n
		if l.contacts != nil && !c.Empty() {
			l.contacts.OnContacts(c)
		}
	}
	l.handle(notices)

	if dropped := l.sim.Queue().Dropped(); dropped != l.lastDropped {
		log.Printf("loop: request queue overflow, %d requests dropped so far", dropped)
		l.lastDropped = dropped
	}

	l.render()
}

func (l *Loop) control(c Control) {
	switch c.Type {
	case ControlTogglePause:
		l.paused = !l.paused
	case ControlClosePalette:
		l.paletteOpen = false
	case ControlPickColor:
		if !l.paletteOpen || !l.hasSelected {
			return
		}
		if c.Index < 0 || c.Index >= len(l.palette) {
			log.Printf("loop: palette index %d out of range", c.Index)
			return
		}
		event.EmitColor(l.sim.Queue(), l.selected, l.palette[c.Index])
		l.paletteOpen = false
	}
}

func (l *Loop) handle(notices []event.Notice) {
	for _, n := range notices {
		switch n.Type {
		case event.NoticeSelected:
			l.selected = n.BallID
			l.hasSelected = true
			l.paletteOpen = true
		case event.NoticeRejected:
			log.Printf("loop: %s request rejected: %v", n.Request.Type, n.Err)
		}
	}
}

func (l *Loop) render() {
	f := &l.frame
	f.Tick = l.sim.TickCount()
	f.Arena = l.sim.Arena()
	f.Balls = l.sim.Snapshot(f.Balls[:0])
	f.Paused = l.paused
	f.Dropped = l.lastDropped
	f.Selected = l.selected
	f.HasSelected = l.hasSelected
	f.PaletteOpen = l.paletteOpen
	f.Palette = l.palette
	l.renderer.Render(f)
}

// Paused reports the pause state, loop goroutine only
func (l *Loop) Paused() bool {
	return l.paused
}
