package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/mj1618/keymacro/internal/metrics"
	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/platform"
	"github.com/mj1618/keymacro/internal/script"
)

var (
	// ErrBusy is returned when an operation conflicts with the current
	// recording or playback.
	ErrBusy = errors.New("macro is busy")

	// ErrEmptyLog is returned by Play when there is nothing to replay.
	ErrEmptyLog = errors.New("macro has no events")

	// ErrMouseRecord is returned by AddMouseRecord for values that are
	// neither a button, an offset nor a wheel delta.
	ErrMouseRecord = errors.New("error mouse record")
)

// State is the lifecycle state of a Macro.
type State int

const (
	Idle State = iota
	Recording
	Playing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// RecordOptions selects what a recording session captures.
type RecordOptions struct {
	Keys  bool
	Mouse bool

	// UntilKey, when set, ends the session when this key is pressed.
	// The press itself is recorded if keys are captured.
	UntilKey string
}

// Option configures a Macro.
type Option func(*Macro)

// WithLog makes the macro record into and play from log.
func WithLog(log *model.EventLog) Option {
	return func(m *Macro) { m.log = log }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Macro) { m.logger = l }
}

// WithMetrics reports capture and playback counters to mt.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Macro) { m.metrics = mt }
}

// WithOnRecorded registers the recording-finished signal. fn receives the
// number of events in the log and runs on the goroutine that stopped the
// session.
func WithOnRecorded(fn func(n int)) Option {
	return func(m *Macro) { m.onRecorded = fn }
}

// WithDispatcher replaces the provider's injector for playback.
func WithDispatcher(d Dispatcher) Option {
	return func(m *Macro) { m.dispatcher = d }
}

// Macro is one recordable, replayable input macro.
type Macro struct {
	provider   *platform.Provider
	log        *model.EventLog
	logger     *slog.Logger
	metrics    *metrics.Metrics
	onRecorded func(int)
	dispatcher Dispatcher

	mu        sync.Mutex
	state     State
	capture   *Capture
	hooked    platform.HookOptions
	stopWatch context.CancelFunc
	watchDone chan struct{}
	cancel    context.CancelFunc
	suppress  bool
	playDone  chan struct{}
}

// New creates an idle macro. p may be nil, in which case recording and
// playback return platform.ErrUnsupported but editing still works.
func New(p *platform.Provider, opts ...Option) *Macro {
	m := &Macro{provider: p}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = model.NewEventLog()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.dispatcher == nil && p != nil && p.Inputter != nil {
		m.dispatcher = NewInputDispatcher(p.Inputter)
	}
	return m
}

// State returns the current state.
func (m *Macro) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Log returns the macro's event log.
func (m *Macro) Log() *model.EventLog { return m.log }

// Events returns a snapshot of the event log.
func (m *Macro) Events() []model.Event { return m.log.Snapshot() }

func (m *Macro) setStateLocked(s State) {
	if m.state == s {
		return
	}
	if m.state != Idle {
		m.metrics.StateLeft(m.state.String())
	}
	if s != Idle {
		m.metrics.StateEntered(s.String())
	}
	m.state = s
}

// StartRecording clears the log and begins capturing. It is a no-op while
// already recording and returns ErrBusy while playing.
func (m *Macro) StartRecording(opts RecordOptions) error {
	if !opts.Keys && !opts.Mouse {
		return fmt.Errorf("nothing to record: enable keys, mouse, or both")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Recording:
		return nil
	case Playing:
		return fmt.Errorf("start recording: %w", ErrBusy)
	}
	if m.provider == nil || m.provider.Hooker == nil {
		return platform.ErrUnsupported
	}
	hooker := m.provider.Hooker

	c := NewCapture(m.log, m.logger, m.metrics)
	hookOpts := platform.HookOptions{Keys: opts.Keys, Mouse: opts.Mouse}
	if err := hooker.Hook(hookOpts, c.Handle); err != nil {
		return fmt.Errorf("install hooks: %w", err)
	}
	m.log.Clear()
	c.Start(hooker.CursorPosition())

	m.capture = c
	m.hooked = hookOpts
	m.setStateLocked(Recording)

	if opts.UntilKey != "" {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		m.stopWatch = cancel
		m.watchDone = done
		go m.watchUntil(ctx, hooker, opts.UntilKey, c, done)
	}

	m.logger.Info("recording started", "keys", opts.Keys, "mouse", opts.Mouse, "until", opts.UntilKey)
	return nil
}

func (m *Macro) watchUntil(ctx context.Context, hooker platform.Hooker, key string, c *Capture, done chan struct{}) {
	defer close(done)
	if err := hooker.WaitKey(ctx, key); err != nil {
		if !errors.Is(err, context.Canceled) {
			m.logger.Warn("stop key watcher failed", "key", key, "err", err)
		}
		return
	}
	m.logger.Debug("stop key pressed", "key", key)
	if err := m.stopRecording(c); err != nil {
		m.logger.Error("stop recording", "err", err)
	}
}

// StopRecording removes the installed hooks, returns to Idle and fires the
// recording-finished signal. It is a no-op when not recording.
func (m *Macro) StopRecording() error {
	return m.stopRecording(nil)
}

// stopRecording ends the session; when only is set it ends it only if
// only is still the active capture.
func (m *Macro) stopRecording(only *Capture) error {
	m.mu.Lock()
	if m.state != Recording || (only != nil && m.capture != only) {
		m.mu.Unlock()
		return nil
	}
	m.capture.Stop()
	var err error
	if uerr := m.provider.Hooker.Unhook(m.hooked); uerr != nil {
		err = fmt.Errorf("remove hooks: %w", uerr)
	}
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
	m.capture = nil
	m.hooked = platform.HookOptions{}
	m.setStateLocked(Idle)
	onRecorded := m.onRecorded
	m.mu.Unlock()

	n := m.log.Len()
	m.metrics.RecordingFinished()
	m.logger.Info("recording stopped", "events", n)
	if onRecorded != nil {
		onRecorded(n)
	}
	return err
}

// Play starts replaying a snapshot of the log on a new goroutine and
// returns immediately. It returns ErrBusy while recording or playing and
// ErrEmptyLog when the log is empty.
func (m *Macro) Play(cfg PlaybackConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Idle {
		return fmt.Errorf("play: %w", ErrBusy)
	}
	events := m.log.Snapshot()
	if len(events) == 0 {
		return ErrEmptyLog
	}
	if m.dispatcher == nil {
		return platform.ErrUnsupported
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.cancel = cancel
	m.suppress = false
	m.playDone = done
	m.setStateLocked(Playing)

	player := NewPlayer(m.dispatcher, m.logger, m.metrics)
	go m.runPlayback(ctx, cancel, player, events, cfg, done)

	m.logger.Info("playback started", "events", len(events), "timed", cfg.PreserveTiming, "loop", cfg.Loop)
	return nil
}

func (m *Macro) runPlayback(ctx context.Context, cancel context.CancelFunc, p *Player, events []model.Event, cfg PlaybackConfig, done chan struct{}) {
	defer close(done)
	defer cancel()

	res := p.Run(ctx, events, cfg)

	m.mu.Lock()
	suppress := m.suppress
	m.cancel = nil
	m.setStateLocked(Idle)
	m.mu.Unlock()

	m.metrics.PlaybackFinished(res.Outcome())
	m.logger.Info("playback finished", "outcome", res.Outcome(), "passes", res.Passes, "dispatched", res.Dispatched)

	if cfg.OnComplete != nil && !suppress {
		cfg.OnComplete(res)
	}
}

// Terminate cancels a running playback. The macro returns to Idle once the
// playback goroutine exits; use Wait to block until then. With
// suppressCallback the run's OnComplete is not called. Safe when idle.
func (m *Macro) Terminate(suppressCallback bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Playing || m.cancel == nil {
		return
	}
	if suppressCallback {
		m.suppress = true
	}
	m.cancel()
	m.logger.Debug("playback terminated", "suppress_callback", suppressCallback)
}

// Wait blocks until the current playback goroutine and stop-key watcher, if
// any, have exited.
func (m *Macro) Wait() {
	m.mu.Lock()
	playDone, watchDone := m.playDone, m.watchDone
	m.mu.Unlock()
	if playDone != nil {
		<-playDone
	}
	if watchDone != nil {
		<-watchDone
	}
}

// Close stops any recording or playback, removes all hooks and waits for
// background goroutines.
func (m *Macro) Close() error {
	m.Terminate(true)
	err := m.StopRecording()
	if m.provider != nil && m.provider.Hooker != nil {
		if uerr := m.provider.Hooker.Unhook(platform.HookOptions{Keys: true, Mouse: true}); uerr != nil && err == nil {
			err = fmt.Errorf("remove hooks: %w", uerr)
		}
	}
	m.Wait()
	return err
}

func (m *Macro) checkEditableLocked() error {
	if m.state == Recording {
		return fmt.Errorf("edit while recording: %w", ErrBusy)
	}
	return nil
}

func nextTime(log *model.EventLog, delayMs int) (float64, error) {
	if delayMs < 0 {
		return 0, fmt.Errorf("delay must be >= 0, got %d", delayMs)
	}
	return log.LastTime() + float64(delayMs)/1000, nil
}

// AddKeyRecord appends a key event delayMs after the last event.
func (m *Macro) AddKeyRecord(key, action string, delayMs int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkEditableLocked(); err != nil {
		return err
	}
	act, err := model.ParseAction(action)
	if err != nil {
		return err
	}
	t, err := nextTime(m.log, delayMs)
	if err != nil {
		return err
	}
	e := model.Key{Name: strings.TrimSpace(key), Action: act, Timestamp: t}
	if err := model.Validate(e); err != nil {
		return err
	}
	m.log.Append(e)
	return nil
}

// AddMouseRecord appends a mouse event delayMs after the last event. value
// is a button name (with down, up or double), an offset "[x,y]" (with move)
// or a wheel delta (with wheel).
func (m *Macro) AddMouseRecord(value, action string, delayMs int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkEditableLocked(); err != nil {
		return err
	}
	t, err := nextTime(m.log, delayMs)
	if err != nil {
		return err
	}
	e, err := mouseRecord(value, action, t)
	if err != nil {
		return err
	}
	m.log.Append(e)
	return nil
}

func mouseRecord(value, action string, t float64) (model.Event, error) {
	value = strings.TrimSpace(value)
	action = strings.ToLower(strings.TrimSpace(action))
	switch {
	case model.IsButtonName(value):
		b, _ := model.ParseButton(value)
		act, err := model.ParseAction(action)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMouseRecord, err)
		}
		e := model.MouseButton{Button: b, Action: act, Timestamp: t}
		if err := model.Validate(e); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMouseRecord, err)
		}
		return e, nil
	case action == model.ActionMove.String():
		dx, dy, err := script.ParseOffset(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMouseRecord, err)
		}
		return model.MouseMove{DX: dx, DY: dy, Timestamp: t}, nil
	case action == model.ActionWheel.String():
		delta, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid wheel delta %q", ErrMouseRecord, value)
		}
		return model.MouseWheel{Delta: delta, Timestamp: t}, nil
	default:
		return nil, fmt.Errorf("%w: value %q with action %q", ErrMouseRecord, value, action)
	}
}

// Script renders the log as script text.
func (m *Macro) Script() string {
	return script.Encode(m.log.Snapshot())
}

// SetScript parses text and replaces the log with the result. The log is
// left untouched when text does not parse.
func (m *Macro) SetScript(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkEditableLocked(); err != nil {
		return err
	}
	events, err := script.Decode(text)
	if err != nil {
		return err
	}
	m.log.Replace(events)
	return nil
}
