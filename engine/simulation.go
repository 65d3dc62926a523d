package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lixenwraith/billiard/event"
	"github.com/lixenwraith/billiard/physics"
	"github.com/lixenwraith/billiard/vmath"
)

// ErrDuplicateBallID is returned when the initial ball list reuses an id
var ErrDuplicateBallID = errors.New("duplicate ball id")

// SimConfig is the validated input for a Simulation
type SimConfig struct {
	Arena          physics.Arena
	Balls          []physics.Ball
	Step           physics.StepParams
	ReferenceSpeed float64 // Impulse reference speed, see physics.ImpulseFactor
	Impulse        ImpulsePolicy
}

// Simulation owns the ball collection between ticks
// Thread-Safety:
//   - All methods except Queue must run on the tick driver goroutine
//   - Other goroutines submit mutations through Queue, applied by Drain/Tick
type Simulation struct {
	arena          physics.Arena
	step           physics.StepParams
	referenceSpeed float64
	impulse        ImpulsePolicy

	balls []physics.Ball // Canonical order: ascending id
	index map[int]int    // id -> slice index

	queue    *event.RequestQueue
	pending  []event.Request
	notices  []event.Notice
	contacts physics.Contacts
	tick     uint64
}

// NewSimulation validates cfg and takes a private copy of the balls, sorted by id
func NewSimulation(cfg SimConfig) (*Simulation, error) {
	if _, err := physics.NewArena(cfg.Arena.Width, cfg.Arena.Height); err != nil {
		return nil, err
	}
	if !(cfg.ReferenceSpeed > 0) {
		return nil, fmt.Errorf("impulse reference speed must be positive, got %v", cfg.ReferenceSpeed)
	}
	if !(cfg.Step.Restitution > 0) || cfg.Step.Restitution > 1 {
		return nil, fmt.Errorf("restitution must be in (0, 1], got %v", cfg.Step.Restitution)
	}

	balls := make([]physics.Ball, 0, len(cfg.Balls))
	for _, b := range cfg.Balls {
		nb, err := physics.NewBall(b.ID, b.Pos, b.Radius, b.Color, b.Vel)
		if err != nil {
			return nil, err
		}
		balls = append(balls, nb)
	}
	sort.SliceStable(balls, func(i, j int) bool { return balls[i].ID < balls[j].ID })

	index := make(map[int]int, len(balls))
	for i, b := range balls {
		if _, exists := index[b.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateBallID, b.ID)
		}
		index[b.ID] = i
	}

	return &Simulation{
		arena:          cfg.Arena,
		step:           cfg.Step,
		referenceSpeed: cfg.ReferenceSpeed,
		impulse:        cfg.Impulse,
		balls:          balls,
		index:          index,
		queue:          event.NewRequestQueue(),
	}, nil
}

// Queue returns the request queue, safe for concurrent producers
func (s *Simulation) Queue() *event.RequestQueue {
	return s.queue
}

// Arena returns the simulation bounds
func (s *Simulation) Arena() physics.Arena {
	return s.arena
}

// TickCount returns completed ticks
func (s *Simulation) TickCount() uint64 {
	return s.tick
}

// Len returns the number of balls
func (s *Simulation) Len() int {
	return len(s.balls)
}

// Drain applies all queued requests in FIFO order and returns their outcomes
// The returned slice is reused by the next Drain or Tick
func (s *Simulation) Drain() []event.Notice {
	s.notices = s.notices[:0]
	s.pending = s.queue.Consume(s.pending[:0])
	for _, req := range s.pending {
		s.notices = append(s.notices, s.apply(req))
	}
	return s.notices
}

// Tick drains pending requests, then advances physics by one step
// Returned notices and contacts are reused by the next call
func (s *Simulation) Tick() ([]event.Notice, *physics.Contacts) {
	notices := s.Drain()
	physics.Step(s.balls, s.arena, s.step, &s.contacts)
	s.tick++
	return notices, &s.contacts
}

func (s *Simulation) apply(req event.Request) event.Notice {
	switch req.Type {
	case event.RequestClick:
		id, hit, vel, err := s.Click(req.Point)
		if err != nil {
			return event.Notice{Type: event.NoticeRejected, Request: req, Err: err}
		}
		if !hit {
			return event.Notice{Type: event.NoticeMissed, Point: req.Point}
		}
		return event.Notice{Type: event.NoticeSelected, BallID: id, Point: req.Point, Velocity: vel}

	case event.RequestImpulse:
		vel, err := s.Strike(req.BallID, req.Vector)
		if err != nil {
			return event.Notice{Type: event.NoticeRejected, BallID: req.BallID, Request: req, Err: err}
		}
		return event.Notice{Type: event.NoticeStruck, BallID: req.BallID, Velocity: vel}

	case event.RequestColor:
		if err := s.SetColor(req.BallID, req.Color); err != nil {
			return event.Notice{Type: event.NoticeRejected, BallID: req.BallID, Request: req, Err: err}
		}
		return event.Notice{Type: event.NoticeRecolored, BallID: req.BallID, Color: req.Color}
	}
	return event.Notice{Type: event.NoticeRejected, Request: req, Err: fmt.Errorf("unsupported request %s", req.Type)}
}

func (s *Simulation) lookup(id int) (*physics.Ball, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", physics.ErrUnknownBallID, id)
	}
	return &s.balls[i], nil
}

// Strike applies an impulse to ball id and returns its new velocity
func (s *Simulation) Strike(id int, impulse vmath.Vec2) (vmath.Vec2, error) {
	b, err := s.lookup(id)
	if err != nil {
		return vmath.Vec2{}, err
	}
	if !impulse.IsFinite() {
		return vmath.Vec2{}, fmt.Errorf("impulse for ball %d is not finite: %v", id, impulse)
	}
	return physics.ApplyImpulse(b, impulse, s.referenceSpeed), nil
}

// Click hit-tests p and strikes the ball under it with the scaled centre-to-point vector
func (s *Simulation) Click(p vmath.Vec2) (id int, hit bool, vel vmath.Vec2, err error) {
	if !p.IsFinite() {
		return 0, false, vmath.Vec2{}, fmt.Errorf("click point is not finite: %v", p)
	}
	id, hit = physics.HitTest(p, s.balls)
	if !hit {
		return 0, false, vmath.Vec2{}, nil
	}
	b, _ := s.lookup(id)
	impulse := s.impulse.Scale(vmath.V2Sub(p, b.Pos))
	return id, true, physics.ApplyImpulse(b, impulse, s.referenceSpeed), nil
}

// HitTest returns the first ball in canonical order containing p
func (s *Simulation) HitTest(p vmath.Vec2) (int, bool) {
	return physics.HitTest(p, s.balls)
}

// SetColor changes the display color of ball id
func (s *Simulation) SetColor(id int, color string) error {
	b, err := s.lookup(id)
	if err != nil {
		return err
	}
	b.Color = color
	return nil
}

// Ball returns a copy of ball id
func (s *Simulation) Ball(id int) (physics.Ball, bool) {
	b, err := s.lookup(id)
	if err != nil {
		return physics.Ball{}, false
	}
	return *b, true
}

// Snapshot appends a read-only view of every ball in canonical order to dst
func (s *Simulation) Snapshot(dst []BallView) []BallView {
	for _, b := range s.balls {
		dst = append(dst, BallView{ID: b.ID, Pos: b.Pos, Radius: b.Radius, Color: b.Color})
	}
	return dst
}
