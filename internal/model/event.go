package model

import (
	"fmt"
	"strings"
)

// Category identifies which variant of Event is active.
type Category uint8

const (
	CategoryKey Category = iota
	CategoryMouseButton
	CategoryMouseMove
	CategoryMouseWheel
)

// String returns the persisted envelope name: "key" for keyboard events,
// "mouse" for every mouse variant.
func (c Category) String() string {
	if c == CategoryKey {
		return "key"
	}
	return "mouse"
}

// Action is what happened to a key or button, or the kind of pointer motion.
type Action uint8

const (
	ActionDown Action = iota
	ActionUp
	ActionDouble
	ActionMove
	ActionWheel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionDouble:
		return "double"
	case ActionMove:
		return "move"
	case ActionWheel:
		return "wheel"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ParseAction converts "down", "up", "double", "move" or "wheel" to an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down":
		return ActionDown, nil
	case "up":
		return ActionUp, nil
	case "double":
		return ActionDouble, nil
	case "move":
		return ActionMove, nil
	case "wheel":
		return ActionWheel, nil
	default:
		return ActionDown, fmt.Errorf("unknown action: %q (expected down, up, double, move, or wheel)", s)
	}
}

// Button is a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return fmt.Sprintf("button(%d)", uint8(b))
	}
}

// ParseButton converts a button name to Button.
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return ButtonLeft, nil
	case "right":
		return ButtonRight, nil
	case "middle":
		return ButtonMiddle, nil
	default:
		return ButtonLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// IsButtonName reports whether s names a mouse button.
func IsButtonName(s string) bool {
	_, err := ParseButton(s)
	return err == nil
}

// Event is one captured or authored input action. Exactly one of Key,
// MouseButton, MouseMove and MouseWheel implements it; values are never
// modified once stored in an EventLog.
type Event interface {
	Category() Category
	// Time is the absolute timestamp in seconds.
	Time() float64

	withTime(t float64) Event
}

// Key is a keyboard press or release.
type Key struct {
	Name      string
	Action    Action // ActionDown or ActionUp
	Timestamp float64
}

func (Key) Category() Category { return CategoryKey }
func (e Key) Time() float64 { return e.Timestamp }
func (e Key) withTime(t float64) Event { e.Timestamp = t; return e }
func (e Key) String() string { return fmt.Sprintf("%s: %s", e.Name, e.Action) }

// MouseButton is a press, release or double-click of a mouse button.
type MouseButton struct {
	Button    Button
	Action    Action // ActionDown, ActionUp or ActionDouble
	Timestamp float64
}

func (MouseButton) Category() Category { return CategoryMouseButton }
func (e MouseButton) Time() float64 { return e.Timestamp }
func (e MouseButton) withTime(t float64) Event { e.Timestamp = t; return e }
func (e MouseButton) String() string { return fmt.Sprintf("mouse %s: %s", e.Button, e.Action) }

// MouseMove moves the pointer by a relative offset.
type MouseMove struct {
	DX, DY    float64
	Timestamp float64
}

func (MouseMove) Category() Category { return CategoryMouseMove }
func (e MouseMove) Time() float64 { return e.Timestamp }
func (e MouseMove) withTime(t float64) Event { e.Timestamp = t; return e }
func (e MouseMove) String() string { return fmt.Sprintf("move: [%g,%g]", e.DX, e.DY) }

// MouseWheel scrolls by Delta notches; positive scrolls up.
type MouseWheel struct {
	Delta     float64
	Timestamp float64
}

func (MouseWheel) Category() Category { return CategoryMouseWheel }
func (e MouseWheel) Time() float64 { return e.Timestamp }
func (e MouseWheel) withTime(t float64) Event { e.Timestamp = t; return e }
func (e MouseWheel) String() string { return fmt.Sprintf("wheel: %g", e.Delta) }

// ActionOf returns the action carried by e. Moves and wheel events report
// ActionMove and ActionWheel.
func ActionOf(e Event) Action {
	switch ev := e.(type) {
	case Key:
		return ev.Action
	case MouseButton:
		return ev.Action
	case MouseMove:
		return ActionMove
	case MouseWheel:
		return ActionWheel
	default:
		return ActionDown
	}
}

// Validate checks that the action is legal for the variant.
func Validate(e Event) error {
	switch ev := e.(type) {
	case Key:
		if ev.Name == "" {
			return fmt.Errorf("key event has no key name")
		}
		if ev.Action != ActionDown && ev.Action != ActionUp {
			return fmt.Errorf("key %q: action %s not allowed (expected down or up)", ev.Name, ev.Action)
		}
	case MouseButton:
		if ev.Button > ButtonMiddle {
			return fmt.Errorf("unknown mouse button %s", ev.Button)
		}
		if ev.Action != ActionDown && ev.Action != ActionUp && ev.Action != ActionDouble {
			return fmt.Errorf("mouse %s: action %s not allowed (expected down, up, or double)", ev.Button, ev.Action)
		}
	case MouseMove, MouseWheel:
	case nil:
		return fmt.Errorf("nil event")
	default:
		return fmt.Errorf("unsupported event type %T", e)
	}
	return nil
}
