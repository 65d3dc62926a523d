package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/billiard/event"
	"github.com/lixenwraith/billiard/parameter"
	"github.com/lixenwraith/billiard/physics"
	"github.com/lixenwraith/billiard/vmath"
)

func testConfig(balls ...physics.Ball) SimConfig {
	return SimConfig{
		Arena:          physics.Arena{Width: 800, Height: 600},
		Balls:          balls,
		Step:           physics.StepParams{Restitution: parameter.DefaultRestitution},
		ReferenceSpeed: parameter.ImpulseReferenceSpeed,
	}
}

func mustSim(t *testing.T, cfg SimConfig) *Simulation {
	t.Helper()
	sim, err := NewSimulation(cfg)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	return sim
}

func TestNewSimulation_Validation(t *testing.T) {
	good := physics.Ball{ID: 0, Pos: vmath.V2(100, 100), Radius: 10, Color: "SkyBlue"}

	tests := []struct {
		name    string
		mutate  func(*SimConfig)
		wantErr error
	}{
		{"zero radius", func(c *SimConfig) { c.Balls = []physics.Ball{{ID: 1, Radius: 0}} }, physics.ErrInvalidBall},
		{"bad arena", func(c *SimConfig) { c.Arena.Height = -1 }, physics.ErrInvalidArena},
		{"duplicate id", func(c *SimConfig) { c.Balls = []physics.Ball{good, good} }, ErrDuplicateBallID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(good)
			tt.mutate(&cfg)
			_, err := NewSimulation(cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	cfg := testConfig(good)
	cfg.ReferenceSpeed = 0
	if _, err := NewSimulation(cfg); err == nil {
		t.Error("Expected error for zero reference speed")
	}

	cfg = testConfig(good)
	cfg.Step.Restitution = 1.5
	if _, err := NewSimulation(cfg); err == nil {
		t.Error("Expected error for restitution above 1")
	}
}

func TestNewSimulation_CanonicalOrder(t *testing.T) {
	sim := mustSim(t, testConfig(
		physics.Ball{ID: 7, Pos: vmath.V2(700, 100), Radius: 10},
		physics.Ball{ID: 2, Pos: vmath.V2(200, 100), Radius: 10},
		physics.Ball{ID: 5, Pos: vmath.V2(500, 100), Radius: 10},
	))

	views := sim.Snapshot(nil)
	want := []int{2, 5, 7}
	for i, id := range want {
		if views[i].ID != id {
			t.Errorf("Snapshot[%d].ID = %d, want %d", i, views[i].ID, id)
		}
	}
}

func TestSimulation_SnapshotIsCopy(t *testing.T) {
	sim := mustSim(t, testConfig(physics.Ball{ID: 0, Pos: vmath.V2(100, 100), Radius: 10, Color: "SkyBlue"}))

	views := sim.Snapshot(nil)
	views[0].Color = "Tampered"
	views[0].Pos = vmath.V2(0, 0)

	b, _ := sim.Ball(0)
	if b.Color != "SkyBlue" || b.Pos != vmath.V2(100, 100) {
		t.Errorf("Snapshot mutation leaked into simulation: %+v", b)
	}
}

func TestSimulation_UnknownIDLeavesStateUntouched(t *testing.T) {
	sim := mustSim(t, testConfig(physics.Ball{ID: 0, Pos: vmath.V2(100, 100), Radius: 10, Color: "SkyBlue", Vel: vmath.V2(1, 1)}))
	before := sim.Snapshot(nil)

	if _, err := sim.Strike(42, vmath.V2(5, 5)); !errors.Is(err, physics.ErrUnknownBallID) {
		t.Errorf("Strike: expected ErrUnknownBallID, got %v", err)
	}
	if err := sim.SetColor(-1, "Red"); !errors.Is(err, physics.ErrUnknownBallID) {
		t.Errorf("SetColor: expected ErrUnknownBallID, got %v", err)
	}

	after := sim.Snapshot(nil)
	if before[0] != after[0] {
		t.Errorf("State changed: before %+v after %+v", before[0], after[0])
	}
	b, _ := sim.Ball(0)
	if b.Vel != vmath.V2(1, 1) {
		t.Errorf("Velocity changed: %+v", b.Vel)
	}
}

func TestSimulation_ClickStrikesWithCentreToPointVector(t *testing.T) {
	sim := mustSim(t, testConfig(physics.Ball{ID: 3, Pos: vmath.V2(100, 100), Radius: 20}))

	id, hit, vel, err := sim.Click(vmath.V2(110, 95))
	if err != nil || !hit || id != 3 {
		t.Fatalf("Click = (%d, %v, %v), want hit on 3", id, hit, err)
	}
	// At rest: factor 1, impulse = (10, -5)
	if vel != vmath.V2(10, -5) {
		t.Errorf("Velocity after click: got %+v, want (10,-5)", vel)
	}

	if _, hit, _, _ := sim.Click(vmath.V2(500, 500)); hit {
		t.Error("Click outside every ball reported a hit")
	}
}

func TestSimulation_ClickUnitScaling(t *testing.T) {
	cfg := testConfig(physics.Ball{ID: 0, Pos: vmath.V2(100, 100), Radius: 20})
	cfg.Impulse = ImpulsePolicy{Scaling: ScaleUnit, UnitSpeed: 4}
	sim := mustSim(t, cfg)

	_, _, vel, _ := sim.Click(vmath.V2(103, 104))
	// Unit vector (0.6, 0.8) * 4
	if math.Abs(vel.X-2.4) > 1e-12 || math.Abs(vel.Y-3.2) > 1e-12 {
		t.Errorf("Unit scaled velocity: got %+v, want (2.4,3.2)", vel)
	}
}

func TestSimulation_QueuedRequestsAppliedBeforeStep(t *testing.T) {
	sim := mustSim(t, testConfig(
		physics.Ball{ID: 0, Pos: vmath.V2(100, 100), Radius: 20, Color: "SkyBlue"},
		physics.Ball{ID: 1, Pos: vmath.V2(400, 300), Radius: 20, Color: "SkyBlue"},
	))

	event.EmitImpulse(sim.Queue(), 0, vmath.V2(3, 0))
	event.EmitColor(sim.Queue(), 1, "Turquoise")
	event.EmitColor(sim.Queue(), 9, "Red")
	event.EmitClick(sim.Queue(), vmath.V2(405, 300))

	notices, _ := sim.Tick()
	if len(notices) != 4 {
		t.Fatalf("Expected 4 notices, got %d", len(notices))
	}

	wantTypes := []event.NoticeType{event.NoticeStruck, event.NoticeRecolored, event.NoticeRejected, event.NoticeSelected}
	for i, want := range wantTypes {
		if notices[i].Type != want {
			t.Errorf("Notice %d: got type %d, want %d", i, notices[i].Type, want)
		}
	}
	if !errors.Is(notices[2].Err, physics.ErrUnknownBallID) {
		t.Errorf("Rejected notice error: %v", notices[2].Err)
	}

	// Impulse applied before integration: moved by 3 in the same tick
	b0, _ := sim.Ball(0)
	if b0.Pos != vmath.V2(103, 100) {
		t.Errorf("Ball 0 position: got %+v, want (103,100)", b0.Pos)
	}
	b1, _ := sim.Ball(1)
	if b1.Color != "Turquoise" {
		t.Errorf("Ball 1 color: got %q", b1.Color)
	}
	if b1.Pos != vmath.V2(405, 300) {
		t.Errorf("Ball 1 position after click impulse: got %+v, want (405,300)", b1.Pos)
	}
	if sim.TickCount() != 1 {
		t.Errorf("TickCount = %d, want 1", sim.TickCount())
	}
}

func TestSimulation_DrainWithoutStep(t *testing.T) {
	sim := mustSim(t, testConfig(physics.Ball{ID: 0, Pos: vmath.V2(100, 100), Radius: 20}))
	event.EmitImpulse(sim.Queue(), 0, vmath.V2(2, 2))

	notices := sim.Drain()
	if len(notices) != 1 || notices[0].Type != event.NoticeStruck {
		t.Fatalf("Unexpected notices: %+v", notices)
	}
	b, _ := sim.Ball(0)
	if b.Pos != vmath.V2(100, 100) || b.Vel != vmath.V2(2, 2) {
		t.Errorf("Drain must not integrate: %+v", b)
	}
	if sim.TickCount() != 0 {
		t.Errorf("TickCount = %d, want 0", sim.TickCount())
	}
}

func TestSimulation_TickReportsContacts(t *testing.T) {
	sim := mustSim(t, testConfig(
		physics.Ball{ID: 0, Pos: vmath.V2(95, 100), Radius: 20, Vel: vmath.V2(5, 0)},
		physics.Ball{ID: 1, Pos: vmath.V2(145, 100), Radius: 20, Vel: vmath.V2(-5, 0)},
	))

	_, contacts := sim.Tick()
	if len(contacts.Pairs) != 1 {
		t.Fatalf("Expected one pair contact, got %v", contacts.Pairs)
	}

	b0, _ := sim.Ball(0)
	b1, _ := sim.Ball(1)
	if math.Abs(b0.Vel.X+5) > 1e-9 || math.Abs(b1.Vel.X-5) > 1e-9 {
		t.Errorf("Velocities not exchanged: %+v %+v", b0.Vel, b1.Vel)
	}
}

func TestImpulsePolicy(t *testing.T) {
	raw := ImpulsePolicy{Scaling: ScaleRaw}
	if got := raw.Scale(vmath.V2(30, -40)); got != vmath.V2(30, -40) {
		t.Errorf("Raw scaling changed vector: %+v", got)
	}

	unit := ImpulsePolicy{Scaling: ScaleUnit, UnitSpeed: 10}
	if got := unit.Scale(vmath.V2(30, -40)); math.Abs(got.X-6) > 1e-12 || math.Abs(got.Y+8) > 1e-12 {
		t.Errorf("Unit scaling: got %+v, want (6,-8)", got)
	}
	if got := unit.Scale(vmath.Vec2{}); got != (vmath.Vec2{}) {
		t.Errorf("Zero vector should stay zero: %+v", got)
	}

	if s, err := ParseImpulseScaling("UNIT"); err != nil || s != ScaleUnit {
		t.Errorf("ParseImpulseScaling(UNIT) = %v, %v", s, err)
	}
	if _, err := ParseImpulseScaling("cubic"); err == nil {
		t.Error("Expected error for unknown scaling")
	}
}
