package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/mj1618/keymacro/internal/metrics"
	"github.com/mj1618/keymacro/internal/model"
)

// PlaybackConfig controls one playback run.
type PlaybackConfig struct {
	// PreserveTiming sleeps between events for the recorded gaps. When
	// false events are injected back to back.
	PreserveTiming bool

	// Loop repeats the log until the run is cancelled.
	Loop bool

	// InterIterationDelay is slept between passes when looping.
	InterIterationDelay time.Duration

	// OnComplete runs on the playback goroutine after the macro has
	// returned to Idle, unless the run was terminated with the callback
	// suppressed.
	OnComplete func(Result)
}

// Result summarizes a finished playback run.
type Result struct {
	Passes     int  // passes that ran to the end
	Dispatched int  // events injected across all passes
	Cancelled  bool // stopped by Terminate
	Err        error
}

// Outcome names the way the run ended: completed, cancelled or failed.
func (r Result) Outcome() string {
	switch {
	case r.Err != nil:
		return "failed"
	case r.Cancelled:
		return "cancelled"
	default:
		return "completed"
	}
}

// Player replays event sequences through a Dispatcher.
type Player struct {
	dispatcher Dispatcher
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewPlayer creates a player. logger and m may be nil.
func NewPlayer(d Dispatcher, logger *slog.Logger, m *metrics.Metrics) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{dispatcher: d, logger: logger, metrics: m}
}

// Run plays events synchronously until every pass is done, ctx is
// cancelled, or a dispatch fails. A failed dispatch ends the whole run.
func (p *Player) Run(ctx context.Context, events []model.Event, cfg PlaybackConfig) Result {
	var res Result
	if len(events) == 0 {
		return res
	}
	for {
		n, ok, err := p.pass(ctx, events, cfg.PreserveTiming)
		res.Dispatched += n
		if err != nil {
			res.Err = err
			p.metrics.DispatchFailed()
			p.logger.Error("playback aborted", "err", err, "pass", res.Passes+1, "dispatched", res.Dispatched)
			return res
		}
		if !ok {
			res.Cancelled = true
			return res
		}
		res.Passes++
		p.metrics.PassCompleted()
		p.logger.Debug("playback pass complete", "pass", res.Passes, "events", n)

		if !cfg.Loop {
			return res
		}
		if !sleep(ctx, cfg.InterIterationDelay) {
			res.Cancelled = true
			return res
		}
	}
}

// pass replays events once. ok is false when ctx was cancelled before the
// last event was injected.
func (p *Player) pass(ctx context.Context, events []model.Event, timed bool) (n int, ok bool, err error) {
	ref := events[0].Time()
	for _, e := range events {
		if ctx.Err() != nil {
			return n, false, nil
		}
		if timed {
			gap := time.Duration((e.Time() - ref) * float64(time.Second))
			if !sleep(ctx, gap) {
				return n, false, nil
			}
		}
		ref = e.Time()
		if err := p.dispatcher.Dispatch(e); err != nil {
			return n, false, err
		}
		n++
		p.metrics.EventDispatched(e.Category().String())
	}
	return n, true, nil
}

// sleep waits for d or until ctx is done, and reports whether the full
// duration elapsed with ctx still live.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return ctx.Err() == nil
	}
}
