package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/keymacro/internal/engine"
	"github.com/mj1618/keymacro/internal/library"
	"github.com/mj1618/keymacro/internal/platform"
	"github.com/mj1618/keymacro/internal/store"
)

// session is an open library together with the store backing it.
type session struct {
	lib   *library.Library
	store *store.Store
}

func (s *session) save(ctx context.Context) error {
	if err := s.lib.Save(ctx); err != nil {
		return fmt.Errorf("save macros to %s: %w", s.store.Location(), err)
	}
	return nil
}

func (s *session) close() {
	if err := s.lib.Close(); err != nil {
		logger.Warn("close library", "err", err)
	}
	if err := s.store.Close(); err != nil {
		logger.Warn("close store", "err", err)
	}
}

// openSession opens the configured store. When withInput is set the
// platform provider is created too; commands that only edit records skip
// it so they work without a native backend.
func openSession(ctx context.Context, withInput bool, opts library.Options) (*session, error) {
	var provider *platform.Provider
	if withInput {
		p, err := newProvider()
		if err != nil {
			return nil, err
		}
		provider = p
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}
	lib, err := library.Open(ctx, st, provider, opts)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return &session{lib: lib, store: st}, nil
}

// macro looks up id, wrapping the error with the store location.
func (s *session) macro(id string) (*engine.Macro, error) {
	m, err := s.lib.Macro(id)
	if errors.Is(err, library.ErrUnknownMacro) {
		return nil, fmt.Errorf("%w (store: %s)", err, s.store.Location())
	}
	return m, err
}

// interruptContext is cancelled on SIGINT or SIGTERM.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
