// Package daily shows the cached recipe of the day and refreshes it when it is due.
package daily

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lepinkainen/recipe-forge/internal/recipe"
	"github.com/lepinkainen/recipe-forge/pkg/api"
)

// Fetcher retrieves the recipe of the day. *api.Client satisfies it.
type Fetcher interface {
	FetchDaily(ctx context.Context) api.Result
}

// Cache persists the last successful reply. *dailycache.Store satisfies it.
type Cache interface {
	Load() (string, bool, error)
	Save(text string) error
	ShouldRefetch() (bool, error)
}

// Options tweak the refresh policy
type Options struct {
	// Force fetches even when the cached entry is still fresh
	Force bool
}

// Refresher holds the currently displayed daily recipe
type Refresher struct {
	fetcher Fetcher
	cache   Cache
	opts    Options

	mu        sync.Mutex
	hasCached bool
	current   recipe.Display
}

// NewRefresher creates a refresher
func NewRefresher(fetcher Fetcher, cache Cache, opts Options) *Refresher {
	return &Refresher{
		fetcher: fetcher,
		cache:   cache,
		opts:    opts,
		current: recipe.NoData(),
	}
}

// Open reads the cached reply for immediate display. A cache read failure is
// treated as an empty cache.
func (r *Refresher) Open() recipe.Display {
	r.mu.Lock()
	defer r.mu.Unlock()

	text, ok, err := r.cache.Load()
	if err != nil {
		slog.Warn("Failed to read daily cache", "error", err)
	}
	if err != nil || !ok {
		r.hasCached = false
		r.current = recipe.NoData()
		return r.current
	}

	r.hasCached = true
	r.current = recipe.ParseEnvelope(text)
	return r.current
}

// Current returns what is displayed now
func (r *Refresher) Current() recipe.Display {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// SetForce changes whether the next Refresh ignores the refetch interval
func (r *Refresher) SetForce(force bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.Force = force
}

// Refresh fetches a new reply when one is due. A failed fetch replaces the
// display only when nothing was cached; otherwise the cached recipe stays.
// The bool reports whether the display changed.
func (r *Refresher) Refresh(ctx context.Context) (recipe.Display, bool) {
	r.mu.Lock()
	force := r.opts.Force
	r.mu.Unlock()

	if !force {
		due, err := r.cache.ShouldRefetch()
		if err != nil {
			slog.Warn("Failed to check daily cache age", "error", err)
			due = true
		}
		if !due {
			slog.Debug("Daily recipe is fresh, skipping fetch")
			return r.Current(), false
		}
	}

	result := r.fetcher.FetchDaily(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !result.OK() {
		slog.Error("Daily recipe fetch failed", "error", result.Err, "cached", r.hasCached)
		if r.hasCached {
			return r.current, false
		}
		r.current = recipe.Failed(result.Message())
		return r.current, true
	}

	if err := r.cache.Save(result.Body); err != nil {
		slog.Warn("Failed to save daily recipe", "error", err)
	} else {
		r.hasCached = true
	}

	r.current = recipe.ParseEnvelope(result.Body)
	return r.current, true
}
