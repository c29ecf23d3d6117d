// Package library manages the collection of saved macros and the engine
// instance behind each one.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mj1618/keymacro/internal/engine"
	"github.com/mj1618/keymacro/internal/metrics"
	"github.com/mj1618/keymacro/internal/model"
	"github.com/mj1618/keymacro/internal/platform"
	"github.com/mj1618/keymacro/internal/store"
)

// ErrUnknownMacro is returned for IDs that are not in the library.
var ErrUnknownMacro = errors.New("unknown macro")

// Options configures a Library.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// OnRecorded runs after a macro's recording session ends, once its
	// title has been updated.
	OnRecorded func(id string, events int)
}

type entry struct {
	record model.MacroRecord
	macro  *engine.Macro
}

// Library holds every macro record of a store.
type Library struct {
	store    *store.Store
	provider *platform.Provider
	opts     Options
	logger   *slog.Logger

	mu      sync.RWMutex
	entries map[string]*entry
}

// Open loads the records in st. A store without a macro file yields an
// empty library. provider may be nil for editing-only use.
func Open(ctx context.Context, st *store.Store, provider *platform.Provider, opts Options) (*Library, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	l := &Library{
		store:    st,
		provider: provider,
		opts:     opts,
		logger:   logger,
		entries:  map[string]*entry{},
	}
	records, err := st.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		logger.Debug("no macro file yet", "location", st.Location())
	case err != nil:
		return nil, err
	}
	for id, rec := range records {
		l.add(id, rec)
	}
	return l, nil
}

func (l *Library) add(id string, rec model.MacroRecord) *entry {
	rec.ID = id
	e := &entry{record: rec}
	e.macro = engine.New(l.provider,
		engine.WithLog(e.record.Events()),
		engine.WithLogger(l.logger.With("macro", id)),
		engine.WithMetrics(l.opts.Metrics),
		engine.WithOnRecorded(func(n int) { l.recorded(id, n) }),
	)
	l.entries[id] = e
	return e
}

func (l *Library) recorded(id string, n int) {
	l.mu.Lock()
	e, ok := l.entries[id]
	if ok && n > 0 {
		e.record.Title = model.TitleScript
	}
	l.mu.Unlock()
	if ok && l.opts.OnRecorded != nil {
		l.opts.OnRecorded(id, n)
	}
}

func (l *Library) get(id string) (*entry, error) {
	e, ok := l.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMacro, id)
	}
	return e, nil
}

func summarize(e *entry) model.MacroSummary {
	s := e.record.Summary()
	s.State = e.macro.State().String()
	return s
}

// List returns a summary of every macro ordered by ID, which is creation
// order for generated IDs.
func (l *Library) List() []model.MacroSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.MacroSummary, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, summarize(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of macros.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Macro returns the engine instance for id.
func (l *Library) Macro(id string) (*engine.Macro, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, err := l.get(id)
	if err != nil {
		return nil, err
	}
	return e.macro, nil
}

// Record returns a copy of the record for id. The event log is shared.
func (l *Library) Record(id string) (model.MacroRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, err := l.get(id)
	if err != nil {
		return model.MacroRecord{}, err
	}
	return e.record, nil
}

// Summary returns the listing view of id.
func (l *Library) Summary(id string) (model.MacroSummary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, err := l.get(id)
	if err != nil {
		return model.MacroSummary{}, err
	}
	return summarize(e), nil
}

// Create adds an empty macro. An empty name uses model.DefaultName.
func (l *Library) Create(name string) (model.MacroRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.MacroRecord{}, fmt.Errorf("generate id: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = model.DefaultName
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.add(id.String(), model.MacroRecord{Title: model.TitleNew, Name: name})
	l.logger.Info("macro created", "id", e.record.ID, "name", name)
	return e.record, nil
}

// Delete stops and removes a macro.
func (l *Library) Delete(id string) error {
	l.mu.Lock()
	e, err := l.get(id)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	delete(l.entries, id)
	l.mu.Unlock()

	if err := e.macro.Close(); err != nil {
		l.logger.Warn("close deleted macro", "id", id, "err", err)
	}
	l.logger.Info("macro deleted", "id", id)
	return nil
}

// Update applies fn to the record for id and returns the result. The ID
// and event log cannot be changed through fn.
func (l *Library) Update(id string, fn func(r *model.MacroRecord)) (model.MacroRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, err := l.get(id)
	if err != nil {
		return model.MacroRecord{}, err
	}
	rec := e.record
	fn(&rec)
	if rec.Delay < 0 {
		return model.MacroRecord{}, fmt.Errorf("delay must be >= 0, got %d", rec.Delay)
	}
	rec.ID = e.record.ID
	rec.Record = e.record.Record
	e.record = rec
	return rec, nil
}

// Save writes every record to the store.
func (l *Library) Save(ctx context.Context) error {
	l.mu.RLock()
	records := make(map[string]model.MacroRecord, len(l.entries))
	for id, e := range l.entries {
		records[id] = e.record
	}
	l.mu.RUnlock()
	if err := l.store.Save(ctx, records); err != nil {
		return err
	}
	l.logger.Debug("library saved", "macros", len(records))
	return nil
}

// Close stops every macro.
func (l *Library) Close() error {
	l.mu.RLock()
	macros := make([]*engine.Macro, 0, len(l.entries))
	for _, e := range l.entries {
		macros = append(macros, e.macro)
	}
	l.mu.RUnlock()
	var errs []error
	for _, m := range macros {
		if err := m.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
