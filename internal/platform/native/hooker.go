//go:build cgo

package native

import (
	"context"
	"sync"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"

	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/platform"
)

// Hooker implements platform.Hooker over the single process-wide gohook
// event stream. The stream runs while any category is hooked or any
// WaitKey call is pending, and is fanned out to the sink and the waiters.
type Hooker struct {
	mu      sync.Mutex
	opts    platform.HookOptions
	sink    func(platform.RawEvent)
	waiters map[string][]chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

// NewHooker creates a gohook-backed hooker.
func NewHooker() *Hooker {
	return &Hooker{waiters: map[string][]chan struct{}{}}
}

func (h *Hooker) Hook(opts platform.HookOptions, sink func(platform.RawEvent)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opts.Keys = h.opts.Keys || opts.Keys
	h.opts.Mouse = h.opts.Mouse || opts.Mouse
	h.sink = sink
	h.ensureRunningLocked()
	return nil
}

func (h *Hooker) Unhook(opts platform.HookOptions) error {
	h.mu.Lock()
	if opts.Keys {
		h.opts.Keys = false
	}
	if opts.Mouse {
		h.opts.Mouse = false
	}
	if !h.opts.Any() {
		h.sink = nil
	}
	done := h.stopIfIdleLocked()
	h.mu.Unlock()
	if done != nil {
		<-done
	}
	return nil
}

func (h *Hooker) WaitKey(ctx context.Context, key string) error {
	key = platform.NormalizeKey(key)
	ch := make(chan struct{})
	h.mu.Lock()
	h.waiters[key] = append(h.waiters[key], ch)
	h.ensureRunningLocked()
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
		if len(h.waiters[key]) == 0 {
			delete(h.waiters, key)
		}
		done := h.stopIfIdleLocked()
		h.mu.Unlock()
		if done != nil {
			<-done
		}
		return ctx.Err()
	}
}

func (h *Hooker) CursorPosition() (float64, float64) {
	x, y := robotgo.Location()
	return float64(x), float64(y)
}

func (h *Hooker) ensureRunningLocked() {
	if h.stop != nil {
		return
	}
	h.stop = make(chan struct{})
	h.done = make(chan struct{})
	go h.run(hook.Start(), h.stop, h.done)
}

// stopIfIdleLocked signals the stream to end when nothing consumes it and
// returns the channel that closes once it has.
func (h *Hooker) stopIfIdleLocked() chan struct{} {
	if h.stop == nil || h.opts.Any() || len(h.waiters) > 0 {
		return nil
	}
	close(h.stop)
	done := h.done
	h.stop, h.done = nil, nil
	return done
}

func (h *Hooker) run(events chan hook.Event, stop, done chan struct{}) {
	defer close(done)
	defer hook.End()
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			raw, ok := translate(ev)
			if !ok {
				continue
			}
			h.deliver(raw)
		}
	}
}

func (h *Hooker) deliver(raw platform.RawEvent) {
	h.mu.Lock()
	sink := h.sink
	hooked := h.opts.Mouse
	if raw.Kind.IsKey() {
		hooked = h.opts.Keys
	}
	var woken []chan struct{}
	if raw.Kind == platform.RawKeyDown {
		woken = h.waiters[raw.Key]
		delete(h.waiters, raw.Key)
	}
	h.mu.Unlock()

	if sink != nil && hooked {
		sink(raw)
	}
	for _, ch := range woken {
		close(ch)
	}
}

// translate maps a libuiohook event to a RawEvent. libuiohook reports
// presses as "hold" and releases as "down" for mouse buttons.
func translate(ev hook.Event) (platform.RawEvent, bool) {
	raw := platform.RawEvent{Time: ev.When}
	switch ev.Kind {
	case hook.KeyHold:
		raw.Kind = platform.RawKeyDown
		raw.Key = platform.NormalizeKey(hook.RawcodetoKeychar(ev.Rawcode))
	case hook.KeyUp:
		raw.Kind = platform.RawKeyUp
		raw.Key = platform.NormalizeKey(hook.RawcodetoKeychar(ev.Rawcode))
	case hook.MouseHold:
		raw.Kind = platform.RawMouseDown
		if ev.Clicks >= 2 {
			raw.Kind = platform.RawMouseDouble
		}
	case hook.MouseDown:
		raw.Kind = platform.RawMouseUp
	case hook.MouseMove, hook.MouseDrag:
		raw.Kind = platform.RawMouseMove
		raw.X, raw.Y = float64(ev.X), float64(ev.Y)
	case hook.MouseWheel:
		raw.Kind = platform.RawMouseWheel
		raw.Delta = -float64(ev.Rotation)
	default:
		return raw, false
	}
	if raw.Kind.IsKey() && raw.Key == "" {
		return raw, false
	}
	switch raw.Kind {
	case platform.RawMouseDown, platform.RawMouseUp, platform.RawMouseDouble:
		b, ok := buttonFromHook(ev.Button)
		if !ok {
			return raw, false
		}
		raw.Button = b
	}
	return raw, true
}

// libuiohook button numbers: 1 left, 2 right, 3 middle.
func buttonFromHook(code uint16) (model.Button, bool) {
	switch code {
	case 1:
		return model.ButtonLeft, true
	case 2:
		return model.ButtonRight, true
	case 3:
		return model.ButtonMiddle, true
	default:
		return model.ButtonLeft, false
	}
}
