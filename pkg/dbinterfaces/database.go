// Package dbinterfaces provides shared database interface definitions.
package dbinterfaces

import "io"

// Database defines the common interface for database operations
type Database interface {
	io.Closer // Close() error
}

// StatsProvider is implemented by stores that can report their contents
type StatsProvider interface {
	GetStats() (map[string]any, error)
}
