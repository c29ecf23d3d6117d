package engine

import (
	"log/slog"
	"sync"

	"github.com/mj1618/keymacro/internal/metrics"
	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/platform"
)

// Capture turns raw hook events into model events and appends them to a
// log. Its Handle method is installed as the hook sink and may be called
// from OS threads.
type Capture struct {
	log     *model.EventLog
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	active bool
	x, y   float64 // last pointer position
	count  int
}

// NewCapture returns an inactive capture that appends to log.
func NewCapture(log *model.EventLog, logger *slog.Logger, m *metrics.Metrics) *Capture {
	if logger == nil {
		logger = slog.Default()
	}
	return &Capture{log: log, logger: logger, metrics: m}
}

// Start activates the capture with the pointer at (x, y). Moves are
// recorded relative to this position.
func (c *Capture) Start(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
	c.x, c.y = x, y
	c.count = 0
}

// Stop deactivates the capture and returns the number of events it
// appended. Events handled after Stop returns are dropped.
func (c *Capture) Stop() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	return c.count
}

// Active reports whether the capture is accepting events.
func (c *Capture) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Handle records ev.
func (c *Capture) Handle(ev platform.RawEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	e, ok := c.convert(ev)
	if !ok {
		return
	}
	stored := c.log.Append(e)
	c.count++
	c.metrics.EventCaptured(stored.Category().String())
}

func (c *Capture) convert(ev platform.RawEvent) (model.Event, bool) {
	t := platform.Seconds(ev.Time)
	switch ev.Kind {
	case platform.RawKeyDown:
		return model.Key{Name: ev.Key, Action: model.ActionDown, Timestamp: t}, ev.Key != ""
	case platform.RawKeyUp:
		return model.Key{Name: ev.Key, Action: model.ActionUp, Timestamp: t}, ev.Key != ""
	case platform.RawMouseDown:
		return model.MouseButton{Button: ev.Button, Action: model.ActionDown, Timestamp: t}, true
	case platform.RawMouseUp:
		return model.MouseButton{Button: ev.Button, Action: model.ActionUp, Timestamp: t}, true
	case platform.RawMouseDouble:
		return model.MouseButton{Button: ev.Button, Action: model.ActionDouble, Timestamp: t}, true
	case platform.RawMouseMove:
		dx, dy := ev.X-c.x, ev.Y-c.y
		c.x, c.y = ev.X, ev.Y
		if dx == 0 && dy == 0 {
			return nil, false
		}
		return model.MouseMove{DX: dx, DY: dy, Timestamp: t}, true
	case platform.RawMouseWheel:
		return model.MouseWheel{Delta: ev.Delta, Timestamp: t}, true
	default:
		c.logger.Debug("ignoring raw event", "kind", ev.Kind)
		return nil, false
	}
}
