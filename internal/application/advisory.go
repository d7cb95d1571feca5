package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// TokenAdvisoryMessage is shown once when polling finds no GitHub token.
const TokenAdvisoryMessage = "PR Celebration needs a GitHub token to monitor notifications. " +
	"Set PRCELEBRATION_GITHUB_TOKEN or PUT it to /api/v1/credentials."

const tokenAdvisoryFlag = "token_advisory_shown"

// TokenAdvisory tracks whether the missing-token advisory was already shown.
// The flag is persisted through the FlagStore when one is given, and cached
// in memory so a failing store still yields at most one advisory per process.
type TokenAdvisory struct {
	mu     sync.Mutex
	store  driven.FlagStore
	loaded bool
	shown  bool
}

// NewTokenAdvisory creates a TokenAdvisory. store may be nil for an
// in-memory only flag.
func NewTokenAdvisory(store driven.FlagStore) *TokenAdvisory {
	return &TokenAdvisory{store: store}
}

// Raise marks the advisory as shown and reports whether the caller should
// surface it, i.e. whether this is the first time.
func (a *TokenAdvisory) Raise(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.loaded && a.store != nil {
		shown, err := a.store.GetFlag(ctx, tokenAdvisoryFlag)
		if err != nil {
			slog.Warn("reading token advisory flag failed", "error", err)
		}
		a.shown = shown
	}
	a.loaded = true

	if a.shown {
		return false
	}
	a.shown = true

	if a.store != nil {
		if err := a.store.SetFlag(ctx, tokenAdvisoryFlag, true); err != nil {
			slog.Warn("persisting token advisory flag failed", "error", err)
		}
	}

	return true
}

// Reset clears the flag so the next missing-token check advises again.
func (a *TokenAdvisory) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.shown = false
	a.loaded = true

	if a.store == nil {
		return nil
	}
	return a.store.SetFlag(ctx, tokenAdvisoryFlag, false)
}
