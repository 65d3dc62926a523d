package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/billiard/vmath"
)

func TestStep_IntegratesThenReflects(t *testing.T) {
	arena := Arena{Width: 100, Height: 100}
	balls := []Ball{
		{ID: 0, Pos: vmath.V2(50, 50), Radius: 5, Vel: vmath.V2(2, -3)},
		{ID: 1, Pos: vmath.V2(93, 20), Radius: 5, Vel: vmath.V2(4, 0)},
	}
	var contacts Contacts

	Step(balls, arena, StepParams{Restitution: 1}, &contacts)

	if balls[0].Pos != vmath.V2(52, 47) {
		t.Errorf("ball 0 position: got %v, want (52,47)", balls[0].Pos)
	}
	// 93+4 = 97 > 95, clamped and reflected
	if balls[1].Pos.X != 95 || balls[1].Vel.X != -4 {
		t.Errorf("ball 1: got pos %v vel %v", balls[1].Pos, balls[1].Vel)
	}
	if len(contacts.Walls) != 1 || contacts.Walls[0] != 1 {
		t.Errorf("wall contacts: got %v, want [1]", contacts.Walls)
	}
	if len(contacts.Pairs) != 0 {
		t.Errorf("unexpected pair contacts: %v", contacts.Pairs)
	}
}

func TestStep_NilContacts(t *testing.T) {
	arena := Arena{Width: 100, Height: 100}
	balls := []Ball{
		{ID: 0, Pos: vmath.V2(10, 50), Radius: 10, Vel: vmath.V2(-5, 0)},
		{ID: 1, Pos: vmath.V2(25, 50), Radius: 10},
	}
	Step(balls, arena, StepParams{Restitution: 1}, nil)

	// Wall reflection first, then the pair pass hands the rebound to ball 1
	if !approx(balls[0].Vel.X, 0) || !approx(balls[1].Vel.X, 5) {
		t.Errorf("got vx0=%v vx1=%v, want 0 and 5", balls[0].Vel.X, balls[1].Vel.X)
	}
}

func TestStep_ContainmentOverManyTicks(t *testing.T) {
	arena := Arena{Width: 800, Height: 600}
	balls := []Ball{
		{ID: 0, Pos: vmath.V2(100, 100), Radius: 20, Vel: vmath.V2(7, 3)},
		{ID: 1, Pos: vmath.V2(200, 200), Radius: 30, Vel: vmath.V2(-4, 6)},
		{ID: 2, Pos: vmath.V2(300, 300), Radius: 40, Vel: vmath.V2(9, -9)},
		{ID: 3, Pos: vmath.V2(400, 150), Radius: 50, Vel: vmath.V2(-8, -2)},
	}
	var contacts Contacts

	for tick := 0; tick < 2000; tick++ {
		Step(balls, arena, StepParams{Restitution: 1}, &contacts)
		for _, b := range balls {
			if !b.Pos.IsFinite() || !b.Vel.IsFinite() {
				t.Fatalf("tick %d: ball %d non-finite %+v", tick, b.ID, b)
			}
		}
	}

	// Pair correction runs after walls and may nudge a ball outward; one more wall pass must restore it
	for i := range balls {
		ResolveWall(&balls[i], arena, 1)
		b := balls[i]
		if b.Pos.X < b.Radius || b.Pos.X > arena.Width-b.Radius || b.Pos.Y < b.Radius || b.Pos.Y > arena.Height-b.Radius {
			t.Errorf("ball %d outside arena: %v", b.ID, b.Pos)
		}
	}
}

func TestStep_TwoBallScenario(t *testing.T) {
	arena := Arena{Width: 800, Height: 600}
	// Integration brings them into contact before the pair pass
	balls := []Ball{
		{ID: 0, Pos: vmath.V2(95, 100), Radius: 20, Vel: vmath.V2(5, 0)},
		{ID: 1, Pos: vmath.V2(145, 100), Radius: 20, Vel: vmath.V2(-5, 0)},
	}
	var contacts Contacts

	Step(balls, arena, StepParams{Restitution: 1}, &contacts)

	if !approx(balls[0].Vel.X, -5) || !approx(balls[1].Vel.X, 5) {
		t.Errorf("velocities not swapped: %+v %+v", balls[0].Vel, balls[1].Vel)
	}
	if d := vmath.V2Dist(balls[0].Pos, balls[1].Pos); d < 40-eps {
		t.Errorf("pair still overlapping after tick: %v", d)
	}
	if len(contacts.Pairs) != 1 || contacts.Pairs[0] != (PairHit{A: 0, B: 1}) {
		t.Errorf("pair contacts: got %v", contacts.Pairs)
	}
}

// threeBallChain builds a row where the middle ball has the lowest id:
// id 1 at the left moving right, id 0 in the middle, id 2 on the right, all touching after integration
func threeBallChain() []Ball {
	return []Ball{
		{ID: 0, Pos: vmath.V2(138, 300), Radius: 20},
		{ID: 1, Pos: vmath.V2(96, 300), Radius: 20, Vel: vmath.V2(4, 0)},
		{ID: 2, Pos: vmath.V2(176, 300), Radius: 20},
	}
}

func TestStep_ThreeBallChain_VisitOnce(t *testing.T) {
	arena := Arena{Width: 800, Height: 600}
	balls := threeBallChain()
	var contacts Contacts

	Step(balls, arena, StepParams{Restitution: 1, PairVisit: PairVisitOnce}, &contacts)

	want := []PairHit{{A: 0, B: 1}, {A: 0, B: 2}}
	if len(contacts.Pairs) != len(want) {
		t.Fatalf("pair contacts: got %v, want %v", contacts.Pairs, want)
	}
	for i := range want {
		if contacts.Pairs[i] != want[i] {
			t.Errorf("pair %d: got %v, want %v", i, contacts.Pairs[i], want[i])
		}
	}

	// Momentum travels through the middle ball to the far end
	if !approx(balls[2].Vel.X, 4) {
		t.Errorf("far ball vx: got %v, want 4", balls[2].Vel.X)
	}
	if !approx(balls[0].Vel.X, 0) || !approx(balls[1].Vel.X, 0) {
		t.Errorf("near balls should be at rest: %+v %+v", balls[0].Vel, balls[1].Vel)
	}

	// The (0,2) correction pushed ball 0 back into ball 1; left unresolved until the next tick
	d := vmath.V2Dist(balls[1].Pos, balls[0].Pos)
	if math.Abs(d-38.5) > 1e-6 {
		t.Errorf("residual 1-0 distance: got %v, want 38.5", d)
	}
	if d2 := vmath.V2Dist(balls[0].Pos, balls[2].Pos); d2 < 40-eps {
		t.Errorf("last resolved pair overlapping: %v", d2)
	}
}

func TestStep_ThreeBallChain_VisitTwice(t *testing.T) {
	arena := Arena{Width: 800, Height: 600}
	balls := threeBallChain()
	var contacts Contacts

	Step(balls, arena, StepParams{Restitution: 1, PairVisit: PairVisitTwice}, &contacts)

	want := []PairHit{{A: 0, B: 1}, {A: 0, B: 2}, {A: 1, B: 0}, {A: 2, B: 0}}
	if len(contacts.Pairs) != len(want) {
		t.Fatalf("pair contacts: got %v, want %v", contacts.Pairs, want)
	}
	for i := range want {
		if contacts.Pairs[i] != want[i] {
			t.Errorf("pair %d: got %v, want %v", i, contacts.Pairs[i], want[i])
		}
	}

	// Second visit of (2,0) exchanges again: the middle ball ends up carrying the velocity
	if !approx(balls[0].Vel.X, 4) {
		t.Errorf("middle ball vx: got %v, want 4", balls[0].Vel.X)
	}
	if !approx(balls[2].Vel.X, 0) || !approx(balls[1].Vel.X, 0) {
		t.Errorf("outer balls should be at rest: %+v %+v", balls[1].Vel, balls[2].Vel)
	}

	// Residual overlap shrinks compared to a single visit
	d := vmath.V2Dist(balls[1].Pos, balls[0].Pos)
	if math.Abs(d-39.625) > 1e-6 {
		t.Errorf("residual 1-0 distance: got %v, want 39.625", d)
	}
}

func TestParsePairVisit(t *testing.T) {
	for in, want := range map[string]PairVisit{"": PairVisitOnce, "once": PairVisitOnce, "TWICE": PairVisitTwice, " twice ": PairVisitTwice} {
		got, err := ParsePairVisit(in)
		if err != nil || got != want {
			t.Errorf("ParsePairVisit(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePairVisit("thrice"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
