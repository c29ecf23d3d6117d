package engine

import (
	"fmt"

	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/platform"
)

// Dispatcher turns one event into synthetic OS input.
type Dispatcher interface {
	Dispatch(e model.Event) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(e model.Event) error

func (f DispatcherFunc) Dispatch(e model.Event) error { return f(e) }

// InputDispatcher maps events onto platform.Inputter primitives.
// A double-click is injected as a single press, like a recorded press.
type InputDispatcher struct {
	Inputter platform.Inputter
}

// NewInputDispatcher returns a dispatcher that injects through in.
func NewInputDispatcher(in platform.Inputter) *InputDispatcher {
	return &InputDispatcher{Inputter: in}
}

func (d *InputDispatcher) Dispatch(e model.Event) error {
	switch ev := e.(type) {
	case model.Key:
		switch ev.Action {
		case model.ActionDown:
			return d.Inputter.KeyDown(ev.Name)
		case model.ActionUp:
			return d.Inputter.KeyUp(ev.Name)
		}
		return fmt.Errorf("key %q: cannot dispatch action %s", ev.Name, ev.Action)
	case model.MouseButton:
		switch ev.Action {
		case model.ActionDown, model.ActionDouble:
			return d.Inputter.MouseDown(ev.Button)
		case model.ActionUp:
			return d.Inputter.MouseUp(ev.Button)
		}
		return fmt.Errorf("mouse %s: cannot dispatch action %s", ev.Button, ev.Action)
	case model.MouseMove:
		return d.Inputter.MoveMouse(ev.DX, ev.DY)
	case model.MouseWheel:
		return d.Inputter.Scroll(ev.Delta)
	default:
		return fmt.Errorf("cannot dispatch event of type %T", e)
	}
}
