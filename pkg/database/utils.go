package database

import (
	"fmt"
	"os"
)

// GetDatabaseSize returns the size of the database file in bytes
func GetDatabaseSize(dbPath string) (int64, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to get database file info: %w", err)
	}

	return info.Size(), nil
}

// GetDatabaseInfo returns information about the database
func GetDatabaseInfo(db *Database) (map[string]any, error) {
	info := make(map[string]any)

	var version string
	if err := db.DB().QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		return nil, fmt.Errorf("failed to get SQLite version: %w", err)
	}
	info["sqlite_version"] = version

	if size, err := GetDatabaseSize(db.Path()); err == nil {
		info["file_size_bytes"] = size
	}

	var tableCount int
	if err := db.DB().QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&tableCount); err != nil {
		return nil, fmt.Errorf("failed to get table count: %w", err)
	}
	info["table_count"] = tableCount

	return info, nil
}
