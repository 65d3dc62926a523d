package input

import (
	"github.com/lixenwraith/billiard/engine"
	"github.com/lixenwraith/billiard/event"
)

// Sink receives dispatched intents, implemented by engine.Loop
type Sink interface {
	Queue() *event.RequestQueue
	Submit(c engine.Control) bool
}

// Dispatch routes an intent: clicks become simulation requests, the rest loop controls
// Returns false for IntentQuit; resize is left to the caller
func Dispatch(in *Intent, sink Sink) bool {
	if in == nil {
		return true
	}
	switch in.Type {
	case IntentQuit:
		return false
	case IntentClick:
		event.EmitClick(sink.Queue(), in.Point)
	case IntentTogglePause:
		sink.Submit(engine.Control{Type: engine.ControlTogglePause})
	case IntentClosePalette:
		sink.Submit(engine.Control{Type: engine.ControlClosePalette})
	case IntentPickColor:
		sink.Submit(engine.Control{Type: engine.ControlPickColor, Index: in.Index})
	}
	return true
}
