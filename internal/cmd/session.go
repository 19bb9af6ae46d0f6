package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/nhle/stepwise/internal/ai"
	"github.com/nhle/stepwise/internal/app"
	"github.com/nhle/stepwise/internal/credential"
	"github.com/nhle/stepwise/internal/store"
)

const lockRetryInterval = 100 * time.Millisecond

// session is an open database held under the process lock.
type session struct {
	store   *store.SQLiteStore
	service *app.Service
	live    bool
}

// withSession locks and opens the database, runs fn and releases both.
func (o *options) withSession(ctx context.Context, fn func(*session) error) error {
	lockCtx, cancel := context.WithTimeout(ctx, o.lockWait)
	defer cancel()

	lock, err := store.AcquireLock(lockCtx, o.cfg.Database.Path, lockRetryInterval)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			o.logger.WithError(err).Warn("releasing database lock")
		}
	}()

	s, err := store.NewSQLiteStore(o.cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	dec := o.decomposer()

	return fn(&session{
		store:   s,
		service: app.New(s, dec, o.logger),
		live:    dec.Live(),
	})
}

// decomposer builds the plan generator. It needs no database, so callers may
// decompose before taking the lock.
func (o *options) decomposer() *ai.Decomposer {
	newCompleter := o.newCompleter
	if newCompleter == nil {
		newCompleter = o.configuredCompleter
	}
	return ai.NewDecomposer(newCompleter(), o.logger)
}

// configuredCompleter returns the OpenAI client, or nil for placeholder mode.
func (o *options) configuredCompleter() ai.Completer {
	if o.cfg.AI.Mock {
		o.logger.Debug("mock mode, language model disabled")
		return nil
	}

	key := credential.LookupAPIKey(o.cfg.AI.APIKey, o.cfg.AI.UseKeyring)
	if key == "" {
		o.logger.Debug("no API key found, language model disabled")
		return nil
	}

	return ai.NewOpenAIClient(ai.OpenAIConfig{
		APIKey:  key,
		Model:   o.cfg.AI.Model,
		BaseURL: o.cfg.AI.BaseURL,
		Timeout: time.Duration(o.cfg.AI.TimeoutSec) * time.Second,
	})
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// friendly rewrites lookup errors into messages for the terminal.
func friendly(kind, ref string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("no %s matches %q", kind, ref)
	case errors.Is(err, store.ErrAmbiguousID):
		return fmt.Errorf("%q matches more than one %s, use more characters", ref, kind)
	default:
		return err
	}
}
