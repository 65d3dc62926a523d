package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/billiard/vmath"
)

// CellMapper converts a screen cell into arena coordinates
// render.TerminalRenderer implements it with the last drawn viewport
type CellMapper interface {
	CellToArena(x, y int) (vmath.Vec2, bool)
}

// Machine translates tcell events into intents
// Mouse presses are edge-triggered so a held or dragged button strikes once
type Machine struct {
	keys    *KeyTable
	mapper  CellMapper
	buttons tcell.ButtonMask
}

// NewMachine creates a machine; a nil table uses DefaultKeyTable
func NewMachine(keys *KeyTable, mapper CellMapper) *Machine {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Machine{keys: keys, mapper: mapper}
}

// Process parses a tcell event and returns an Intent
// Returns nil if the event means nothing
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= '1' && r <= '9' {
			return &Intent{Type: IntentPickColor, Index: int(r - '1')}
		}
		if t, ok := m.keys.Runes[r]; ok {
			return &Intent{Type: t}
		}
		return nil
	}
	if t, ok := m.keys.Keys[ev.Key()]; ok {
		return &Intent{Type: t}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && m.buttons&tcell.Button1 == 0
	m.buttons = buttons
	if !pressed || m.mapper == nil {
		return nil
	}

	x, y := ev.Position()
	p, ok := m.mapper.CellToArena(x, y)
	if !ok {
		return nil
	}
	return &Intent{Type: IntentClick, Point: p}
}
