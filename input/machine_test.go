package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/billiard/engine"
	"github.com/lixenwraith/billiard/event"
	"github.com/lixenwraith/billiard/vmath"
)

// gridMapper maps every cell inside a 10x10 block to (x*10, y*10)
type gridMapper struct{}

func (gridMapper) CellToArena(x, y int) (vmath.Vec2, bool) {
	if x < 0 || y < 0 || x >= 10 || y >= 10 {
		return vmath.Vec2{}, false
	}
	return vmath.V2(float64(x*10), float64(y*10)), true
}

func TestMachine_Keys(t *testing.T) {
	m := NewMachine(nil, gridMapper{})

	tests := []struct {
		name  string
		ev    tcell.Event
		want  IntentType
		index int
	}{
		{"space pauses", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), IntentTogglePause, 0},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), IntentQuit, 0},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), IntentQuit, 0},
		{"esc closes", tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), IntentClosePalette, 0},
		{"digit 1 picks first", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModNone), IntentPickColor, 0},
		{"digit 4 picks fourth", tcell.NewEventKey(tcell.KeyRune, '4', tcell.ModNone), IntentPickColor, 3},
		{"resize", tcell.NewEventResize(100, 40), IntentResize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := m.Process(tt.ev)
			if in == nil {
				t.Fatalf("Expected %s, got nil", tt.want)
			}
			if in.Type != tt.want || in.Index != tt.index {
				t.Errorf("Got %s index %d, want %s index %d", in.Type, in.Index, tt.want, tt.index)
			}
		})
	}

	if in := m.Process(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)); in != nil {
		t.Errorf("Unbound key produced %+v", in)
	}
	if in := m.Process(tcell.NewEventKey(tcell.KeyRune, '0', tcell.ModNone)); in != nil {
		t.Errorf("Digit 0 produced %+v", in)
	}
}

func TestMachine_MouseEdge(t *testing.T) {
	m := NewMachine(nil, gridMapper{})

	in := m.Process(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone))
	if in == nil || in.Type != IntentClick || in.Point != vmath.V2(30, 40) {
		t.Fatalf("Press: got %+v", in)
	}

	// Held button while dragging does not strike again
	if in := m.Process(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone)); in != nil {
		t.Errorf("Drag produced %+v", in)
	}

	if in := m.Process(tcell.NewEventMouse(5, 5, tcell.ButtonNone, tcell.ModNone)); in != nil {
		t.Errorf("Release produced %+v", in)
	}

	if in := m.Process(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone)); in == nil || in.Point != vmath.V2(50, 50) {
		t.Errorf("Second press: got %+v", in)
	}
}

func TestMachine_MouseOutsideAndOtherButtons(t *testing.T) {
	m := NewMachine(nil, gridMapper{})

	if in := m.Process(tcell.NewEventMouse(50, 50, tcell.Button1, tcell.ModNone)); in != nil {
		t.Errorf("Click outside the table produced %+v", in)
	}
	m.Process(tcell.NewEventMouse(50, 50, tcell.ButtonNone, tcell.ModNone))

	if in := m.Process(tcell.NewEventMouse(1, 1, tcell.Button2, tcell.ModNone)); in != nil {
		t.Errorf("Right button produced %+v", in)
	}

	noMapper := NewMachine(nil, nil)
	if in := noMapper.Process(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)); in != nil {
		t.Errorf("Click without a mapper produced %+v", in)
	}
}

func TestKeyTable_Apply(t *testing.T) {
	kt := DefaultKeyTable()
	err := kt.Apply(map[string]string{
		"x":      "quit",
		"q":      "none",
		"enter":  "pause",
		"ESC":    "none",
		"ctrl-p": "close_palette",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	m := NewMachine(kt, nil)
	if in := m.Process(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); in == nil || in.Type != IntentQuit {
		t.Errorf("x: got %+v", in)
	}
	if in := m.Process(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)); in != nil {
		t.Errorf("q should be unbound, got %+v", in)
	}
	if in := m.Process(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); in == nil || in.Type != IntentTogglePause {
		t.Errorf("enter: got %+v", in)
	}
	if in := m.Process(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)); in != nil {
		t.Errorf("esc should be unbound, got %+v", in)
	}
}

func TestKeyTable_ApplyErrors(t *testing.T) {
	tests := []map[string]string{
		{"x": "explode"},
		{"ab": "quit"},
		{"3": "pause"},
	}
	for _, b := range tests {
		if err := DefaultKeyTable().Apply(b); err == nil {
			t.Errorf("Expected error for %v", b)
		}
	}
}

type recordingSink struct {
	queue    *event.RequestQueue
	controls []engine.Control
}

func (s *recordingSink) Queue() *event.RequestQueue { return s.queue }

func (s *recordingSink) Submit(c engine.Control) bool {
	s.controls = append(s.controls, c)
	return true
}

func TestDispatch(t *testing.T) {
	sink := &recordingSink{queue: event.NewRequestQueue()}

	intents := []*Intent{
		nil,
		{Type: IntentClick, Point: vmath.V2(12, 34)},
		{Type: IntentTogglePause},
		{Type: IntentPickColor, Index: 2},
		{Type: IntentClosePalette},
		{Type: IntentResize},
	}
	for _, in := range intents {
		if !Dispatch(in, sink) {
			t.Errorf("Dispatch(%+v) asked to quit", in)
		}
	}
	if Dispatch(&Intent{Type: IntentQuit}, sink) {
		t.Error("Quit should return false")
	}

	reqs := sink.queue.Consume(nil)
	if len(reqs) != 1 || reqs[0].Type != event.RequestClick || reqs[0].Point != vmath.V2(12, 34) {
		t.Errorf("Queued requests: %+v", reqs)
	}

	want := []engine.Control{
		{Type: engine.ControlTogglePause},
		{Type: engine.ControlPickColor, Index: 2},
		{Type: engine.ControlClosePalette},
	}
	if len(sink.controls) != len(want) {
		t.Fatalf("Controls: got %+v", sink.controls)
	}
	for i := range want {
		if sink.controls[i] != want[i] {
			t.Errorf("Control %d: got %+v, want %+v", i, sink.controls[i], want[i])
		}
	}
}

func TestIntentType_String(t *testing.T) {
	if IntentClick.String() != "click" || IntentType(200).String() != "unknown" {
		t.Error("IntentType names mismatch")
	}
}
