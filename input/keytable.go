package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to intents, digits are reserved for the palette
type KeyTable struct {
	Runes map[rune]IntentType
	Keys  map[tcell.Key]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]IntentType{
			' ': IntentTogglePause,
			'p': IntentTogglePause,
			'q': IntentQuit,
		},
		Keys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC: IntentQuit,
			tcell.KeyCtrlQ: IntentQuit,
			tcell.KeyEsc:   IntentClosePalette,
		},
	}
}

// bindable actions by config name, "none" unbinds
var actionRegistry = map[string]IntentType{
	"none":          IntentNone,
	"quit":          IntentQuit,
	"pause":         IntentTogglePause,
	"close_palette": IntentClosePalette,
}

// named keys accepted in config; anything else must be a single rune
var keyNames = map[string]tcell.Key{
	"esc":       tcell.KeyEsc,
	"escape":    tcell.KeyEsc,
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace,
	"ctrl-c":    tcell.KeyCtrlC,
	"ctrl-q":    tcell.KeyCtrlQ,
	"ctrl-p":    tcell.KeyCtrlP,
}

var runeAliases = map[string]rune{
	"space": ' ',
}

// Apply overlays key → action bindings onto the table
// Returns error on unknown action names, invalid key names or digit keys
func (kt *KeyTable) Apply(bindings map[string]string) error {
	for keyStr, action := range bindings {
		intent, ok := actionRegistry[strings.ToLower(action)]
		if !ok {
			return fmt.Errorf("key %q: unknown action %q", keyStr, action)
		}

		name := strings.ToLower(keyStr)
		if k, ok := keyNames[name]; ok {
			if intent == IntentNone {
				delete(kt.Keys, k)
			} else {
				kt.Keys[k] = intent
			}
			continue
		}

		r, err := resolveRune(keyStr)
		if err != nil {
			return fmt.Errorf("key %q: %w", keyStr, err)
		}
		if intent == IntentNone {
			delete(kt.Runes, r)
		} else {
			kt.Runes[r] = intent
		}
	}
	return nil
}

// resolveRune converts a config key string to a rune
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("not a single character or known key name")
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r >= '1' && r <= '9' {
		return 0, fmt.Errorf("digits are reserved for the palette")
	}
	return r, nil
}
