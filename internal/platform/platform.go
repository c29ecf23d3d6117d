package platform

import (
	"context"

	"github.com/mj1618/keymacro/internal/model"
)

// Inputter injects synthetic keyboard and mouse input.
type Inputter interface {
	KeyDown(key string) error
	KeyUp(key string) error
	MouseDown(button model.Button) error
	MouseUp(button model.Button) error

	// MoveMouse moves the pointer by a relative offset.
	MoveMouse(dx, dy float64) error

	// Scroll scrolls vertically; positive deltas scroll up.
	Scroll(delta float64) error
}

// Hooker installs global input hooks and reports raw OS events.
type Hooker interface {
	// Hook starts delivering the requested device categories to sink.
	// sink may be called from an OS-owned thread.
	Hook(opts HookOptions, sink func(RawEvent)) error

	// Unhook stops delivering the given categories. Categories that are not
	// hooked are ignored.
	Unhook(opts HookOptions) error

	// WaitKey blocks until key is pressed or ctx is done.
	WaitKey(ctx context.Context, key string) error

	// CursorPosition returns the current pointer position in screen units.
	CursorPosition() (x, y float64)
}
