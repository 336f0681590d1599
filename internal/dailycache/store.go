// Package dailycache persists the single cached "recipe of the day" entry.
package dailycache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/recipe-forge/pkg/database"
)

const (
	// Namespace is the table holding the cached entry
	Namespace = "recipe_cache"
	// KeyDailyRecipe is the row key of the cached daily recipe
	KeyDailyRecipe = "daily_recipe"
	// DefaultRefetchInterval is the minimum age before the daily recipe is fetched again
	DefaultRefetchInterval = 2 * time.Hour
)

// Entry is the cached text and the time it was fetched
type Entry struct {
	Text      string
	FetchedAt time.Time
}

// Status describes the cached entry for reporting
type Status struct {
	Present   bool
	Entry     Entry
	NextDueAt time.Time
	Due       bool
}

// Store holds at most one entry. Safe for concurrent use; each write is atomic.
type Store struct {
	cache    *database.Cache
	interval time.Duration
	now      func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithInterval overrides the refetch interval
func WithInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.interval = d
		}
	}
}

// New creates the store on top of db, creating its table when missing
func New(db *database.Database, opts ...Option) (*Store, error) {
	s := &Store{
		cache:    database.NewCache(db, Namespace),
		interval: DefaultRefetchInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.cache.InitializeCache(); err != nil {
		return nil, fmt.Errorf("failed to initialize daily cache: %w", err)
	}

	return s, nil
}

// Interval returns the configured refetch interval
func (s *Store) Interval() time.Duration {
	return s.interval
}

// Save overwrites the cached text and stamps it with the current time
func (s *Store) Save(text string) error {
	now := s.now()
	if err := s.cache.Set(KeyDailyRecipe, text, now); err != nil {
		return err
	}
	slog.Debug("Saved daily recipe", "bytes", len(text), "fetched_at", now)
	return nil
}

// Load returns the cached text, if any
func (s *Store) Load() (string, bool, error) {
	entry, ok, err := s.cache.Get(KeyDailyRecipe)
	if err != nil || !ok {
		return "", false, err
	}
	return entry.Value, true, nil
}

// ShouldRefetch reports whether nothing was fetched yet or the interval has elapsed
func (s *Store) ShouldRefetch() (bool, error) {
	entry, ok, err := s.cache.Get(KeyDailyRecipe)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return s.now().Sub(entry.FetchedAt) >= s.interval, nil
}

// Status reports the cached entry and when it is due for a refetch
func (s *Store) Status() (Status, error) {
	entry, ok, err := s.cache.Get(KeyDailyRecipe)
	if err != nil {
		return Status{}, err
	}
	if !ok {
		return Status{Due: true}, nil
	}

	next := entry.FetchedAt.Add(s.interval)
	return Status{
		Present:   true,
		Entry:     Entry{Text: entry.Value, FetchedAt: entry.FetchedAt},
		NextDueAt: next,
		Due:       !s.now().Before(next),
	}, nil
}

// GetStats implements dbinterfaces.StatsProvider
func (s *Store) GetStats() (map[string]any, error) {
	return s.cache.GetStats()
}
