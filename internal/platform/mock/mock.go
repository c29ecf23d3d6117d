// Package mock provides in-memory platform backends for tests.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/platform"
)

// Call is one primitive invocation recorded by Inputter.
type Call struct {
	Op   string // key-down, key-up, mouse-down, mouse-up, move, scroll
	Key  string
	Btn  model.Button
	DX   float64
	DY   float64
	At   time.Time
	Args string
}

func (c Call) String() string { return c.Op + " " + c.Args }

// Inputter records every injected primitive.
type Inputter struct {
	mu    sync.Mutex
	calls []Call

	// Fail, when set, is consulted before each call; a non-nil result is
	// returned instead of recording the call.
	Fail func(c Call) error
	// OnCall runs after a call is recorded, outside the lock.
	OnCall func(c Call)
}

// NewInputter returns an empty recording Inputter.
func NewInputter() *Inputter { return &Inputter{} }

func (m *Inputter) record(c Call) error {
	c.At = time.Now()
	if m.Fail != nil {
		if err := m.Fail(c); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
	if m.OnCall != nil {
		m.OnCall(c)
	}
	return nil
}

func (m *Inputter) KeyDown(key string) error {
	return m.record(Call{Op: "key-down", Key: key, Args: key})
}

func (m *Inputter) KeyUp(key string) error {
	return m.record(Call{Op: "key-up", Key: key, Args: key})
}

func (m *Inputter) MouseDown(b model.Button) error {
	return m.record(Call{Op: "mouse-down", Btn: b, Args: b.String()})
}

func (m *Inputter) MouseUp(b model.Button) error {
	return m.record(Call{Op: "mouse-up", Btn: b, Args: b.String()})
}

func (m *Inputter) MoveMouse(dx, dy float64) error {
	return m.record(Call{Op: "move", DX: dx, DY: dy, Args: fmt.Sprintf("%g,%g", dx, dy)})
}

func (m *Inputter) Scroll(delta float64) error {
	return m.record(Call{Op: "scroll", DY: delta, Args: fmt.Sprintf("%g", delta)})
}

// Calls returns a copy of the recorded calls.
func (m *Inputter) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Ops returns "op args" strings for each recorded call.
func (m *Inputter) Ops() []string {
	calls := m.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Len returns the number of recorded calls.
func (m *Inputter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Hooker is a scriptable hook backend. Tests feed events with Emit and key
// presses with Press.
type Hooker struct {
	mu      sync.Mutex
	opts    platform.HookOptions
	sink    func(platform.RawEvent)
	waiters map[string][]chan struct{}
	x, y    float64

	// HookErr, when set, is returned by Hook.
	HookErr error
}

// NewHooker returns a Hooker with the cursor at (x, y).
func NewHooker(x, y float64) *Hooker {
	return &Hooker{x: x, y: y, waiters: map[string][]chan struct{}{}}
}

func (h *Hooker) Hook(opts platform.HookOptions, sink func(platform.RawEvent)) error {
	if h.HookErr != nil {
		return h.HookErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opts.Keys = h.opts.Keys || opts.Keys
	h.opts.Mouse = h.opts.Mouse || opts.Mouse
	h.sink = sink
	return nil
}

func (h *Hooker) Unhook(opts platform.HookOptions) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if opts.Keys {
		h.opts.Keys = false
	}
	if opts.Mouse {
		h.opts.Mouse = false
	}
	if !h.opts.Any() {
		h.sink = nil
	}
	return nil
}

// Hooked returns the categories currently hooked.
func (h *Hooker) Hooked() platform.HookOptions {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.opts
}

// Sink returns the currently installed sink, or nil.
func (h *Hooker) Sink() func(platform.RawEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sink
}

// Emit delivers ev to the installed sink when its category is hooked, and
// reports whether it was delivered. Move events also update the cursor.
func (h *Hooker) Emit(ev platform.RawEvent) bool {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	h.mu.Lock()
	if ev.Kind == platform.RawMouseMove {
		h.x, h.y = ev.X, ev.Y
	}
	sink := h.sink
	hooked := h.opts.Keys
	if !ev.Kind.IsKey() {
		hooked = h.opts.Mouse
	}
	h.mu.Unlock()
	if sink == nil || !hooked {
		return false
	}
	sink(ev)
	return true
}

// Press emits a key-down event to the sink, then wakes every WaitKey call
// blocked on key.
func (h *Hooker) Press(key string) {
	h.Emit(platform.RawEvent{Kind: platform.RawKeyDown, Key: key})
	h.mu.Lock()
	waiters := h.waiters[key]
	delete(h.waiters, key)
	h.mu.Unlock()
	for _, ch := range waiters {
		close(ch)
	}
}

// Waiting returns the number of WaitKey calls blocked on key.
func (h *Hooker) Waiting(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.waiters[key])
}

func (h *Hooker) WaitKey(ctx context.Context, key string) error {
	ch := make(chan struct{})
	h.mu.Lock()
	h.waiters[key] = append(h.waiters[key], ch)
	h.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		h.mu.Lock()
		list := h.waiters[key]
		for i, c := range list {
			if c == ch {
				h.waiters[key] = append(list[:i], list[i+1:]...)
				break
			}
		}
		h.mu.Unlock()
		return ctx.Err()
	}
}

func (h *Hooker) CursorPosition() (float64, float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.x, h.y
}

// Provider returns a platform.Provider backed by the given mocks.
func Provider(in *Inputter, hk *Hooker) *platform.Provider {
	return &platform.Provider{Inputter: in, Hooker: hk}
}
