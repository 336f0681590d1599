package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CacheEntry is one stored value together with the time it was written
type CacheEntry struct {
	Key       string
	Value     string
	FetchedAt time.Time
}

// Cache is a key/value table where every write records its fetch time.
// Entries never expire on their own; freshness is decided by the caller.
type Cache struct {
	db        *Database
	tableName string
}

// NewCache creates a new cache instance
func NewCache(db *Database, tableName string) *Cache {
	return &Cache{
		db:        db,
		tableName: tableName,
	}
}

// InitializeCache creates the cache table if it doesn't exist
func (c *Cache) InitializeCache() error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`, c.tableName)

	if err := c.db.ExecuteSchema(schema); err != nil {
		return fmt.Errorf("failed to create cache table %s: %w", c.tableName, err)
	}
	return nil
}

// Get retrieves an entry. The boolean is false when the key was never written.
func (c *Cache) Get(key string) (CacheEntry, bool, error) {
	query := fmt.Sprintf(`SELECT value, fetched_at FROM %s WHERE key = ?`, c.tableName)

	var (
		value     string
		fetchedMS int64
	)
	err := c.db.DB().QueryRow(query, key).Scan(&value, &fetchedMS)
	if errors.Is(err, sql.ErrNoRows) {
		return CacheEntry{}, false, nil
	}
	if err != nil {
		return CacheEntry{}, false, fmt.Errorf("failed to get cache value: %w", err)
	}

	return CacheEntry{
		Key:       key,
		Value:     value,
		FetchedAt: time.UnixMilli(fetchedMS),
	}, true, nil
}

// Set stores value under key, overwriting any previous value and fetch time
func (c *Cache) Set(key, value string, fetchedAt time.Time) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, fetched_at = excluded.fetched_at
	`, c.tableName)

	if _, err := c.db.DB().Exec(query, key, value, fetchedAt.UnixMilli()); err != nil {
		return fmt.Errorf("failed to set cache value: %w", err)
	}

	return nil
}

// GetStats returns cache statistics
func (c *Cache) GetStats() (map[string]any, error) {
	stats := make(map[string]any)

	var total int64
	if err := c.db.DB().QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, c.tableName)).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to get total entries: %w", err)
	}
	stats["total_entries"] = total

	var newest sql.NullInt64
	if err := c.db.DB().QueryRow(fmt.Sprintf(`SELECT MAX(fetched_at) FROM %s`, c.tableName)).Scan(&newest); err != nil {
		return nil, fmt.Errorf("failed to get newest entry: %w", err)
	}
	if newest.Valid {
		stats["last_fetched"] = time.UnixMilli(newest.Int64)
	}

	return stats, nil
}
