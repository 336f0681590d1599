// Package database wraps the SQLite connection used for local client state.
package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lepinkainen/recipe-forge/pkg/dbinterfaces"
	"github.com/lepinkainen/recipe-forge/pkg/filesystem"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Database represents a thread-safe database connection.
// Each call to NewDatabase opens its own connection; callers own its lifetime.
type Database struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Ensure Database implements dbinterfaces.Database
var _ dbinterfaces.Database = (*Database)(nil)

// Config holds database configuration
type Config struct {
	Path    string
	Driver  string
	Timeout time.Duration
}

// DefaultConfig returns the default database configuration
func DefaultConfig() Config {
	return Config{
		Driver:  "sqlite",
		Timeout: 5 * time.Second,
	}
}

// NewDatabase opens a database connection and applies the SQLite pragmas
func NewDatabase(config Config) (*Database, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if config.Driver == "" {
		config.Driver = "sqlite"
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}

	if err := filesystem.EnsureDirectoryExists(config.Path); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if config.Driver == "sqlite" {
		if err := applyPragmas(db, config.Timeout); err != nil {
			closeQuietly(db)
			return nil, err
		}
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Debug("Database opened", "path", config.Path)
	return &Database{
		db:     db,
		dbPath: config.Path,
	}, nil
}

func applyPragmas(db *sql.DB, timeout time.Duration) error {
	busy := fmt.Sprintf("PRAGMA busy_timeout=%d", timeout.Milliseconds())
	if _, err := db.Exec(busy); err != nil {
		return fmt.Errorf("failed to set pragma %q: %w", busy, err)
	}

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to read journal mode: %w", err)
	}

	if !strings.EqualFold(journalMode, "wal") {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return fmt.Errorf("failed to enable WAL: %w", err)
		}
	}

	pragmas := []string{
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=memory",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}
	return nil
}

func closeQuietly(db *sql.DB) {
	if closeErr := db.Close(); closeErr != nil {
		slog.Error("Failed to close database", "error", closeErr)
	}
}

// Close closes the database connection
func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.db != nil {
		err := db.db.Close()
		db.db = nil
		return err
	}
	return nil
}

// DB returns the underlying sql.DB instance (thread-safe)
func (db *Database) DB() *sql.DB {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.db
}

// Path returns the database file path
func (db *Database) Path() string {
	return db.dbPath
}

// ExecuteSchema executes a schema statement
func (db *Database) ExecuteSchema(schema string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.db.Exec(schema)
	return err
}
