package platform

import (
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/keymacro/internal/model"
)

// HookOptions selects which device categories a hook covers.
type HookOptions struct {
	Keys  bool
	Mouse bool
}

// Any reports whether at least one category is selected.
func (o HookOptions) Any() bool { return o.Keys || o.Mouse }

// RawKind is the kind of a raw hook event.
type RawKind int

const (
	RawKeyDown RawKind = iota
	RawKeyUp
	RawMouseDown
	RawMouseUp
	RawMouseDouble
	RawMouseMove
	RawMouseWheel
)

func (k RawKind) String() string {
	switch k {
	case RawKeyDown:
		return "key-down"
	case RawKeyUp:
		return "key-up"
	case RawMouseDown:
		return "mouse-down"
	case RawMouseUp:
		return "mouse-up"
	case RawMouseDouble:
		return "mouse-double"
	case RawMouseMove:
		return "mouse-move"
	case RawMouseWheel:
		return "mouse-wheel"
	default:
		return fmt.Sprintf("raw(%d)", int(k))
	}
}

// IsKey reports whether k is a keyboard event kind.
func (k RawKind) IsKey() bool { return k == RawKeyDown || k == RawKeyUp }

// RawEvent is one event as reported by the OS hook, before it is turned into
// a model.Event.
type RawEvent struct {
	Kind   RawKind
	Key    string       // key name, for key kinds
	Button model.Button // for mouse button kinds
	X, Y   float64      // absolute pointer position, for moves
	Delta  float64      // wheel notches, positive is up
	Time   time.Time
}

// Seconds converts t into the float seconds used for event timestamps.
func Seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// keyAliases maps alternate spellings to the canonical key names used in
// event logs and understood by the native injector.
var keyAliases = map[string]string{
	"return":  "enter",
	"escape":  "esc",
	"command": "cmd",
	"control": "ctrl",
	"option":  "alt",
	"opt":     "alt",
	"del":     "delete",
	"pgup":    "pageup",
	"pgdn":    "pagedown",
}

// NormalizeKey lower-cases a key name and resolves common aliases.
// A lone space is "space".
func NormalizeKey(name string) string {
	if name == " " {
		return "space"
	}
	k := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := keyAliases[k]; ok {
		return alias
	}
	return k
}
