package input

import "github.com/lixenwraith/billiard/vmath"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit         // q, Ctrl+C
	IntentResize       // Terminal resize event
	IntentTogglePause  // Space
	IntentClosePalette // Esc
	IntentPickColor    // 1..9, Index is zero-based
	IntentClick        // Left button press inside the table, Point in arena units
)

var intentNames = [...]string{
	IntentNone:         "none",
	IntentQuit:         "quit",
	IntentResize:       "resize",
	IntentTogglePause:  "pause",
	IntentClosePalette: "close_palette",
	IntentPickColor:    "pick_color",
	IntentClick:        "click",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is one translated input event
type Intent struct {
	Type  IntentType
	Point vmath.Vec2
	Index int
}
