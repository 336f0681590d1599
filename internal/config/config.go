// Package config loads the client configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/recipe-forge/pkg/api"
	"github.com/lepinkainen/recipe-forge/pkg/filesystem"
)

// EnvPrefix namespaces environment overrides, e.g. RECIPE_FORGE_BACKEND_BASE_URL
const EnvPrefix = "RECIPE_FORGE"

// DefaultCacheFile is the cache database file name inside the user data directory
const DefaultCacheFile = "cache.db"

// Config holds the central application configuration
type Config struct {
	Backend struct {
		BaseURL   string        `mapstructure:"base_url"`   // Recipe backend root URL
		Timeout   time.Duration `mapstructure:"timeout"`    // Connect, read and write timeout each
		UserAgent string        `mapstructure:"user_agent"` // User-Agent header value
	} `mapstructure:"backend"`

	Cache struct {
		Path            string        `mapstructure:"path"`             // SQLite file; empty means the user data dir
		RefetchInterval time.Duration `mapstructure:"refetch_interval"` // Minimum age before the daily recipe is fetched again
	} `mapstructure:"cache"`
}

// setDefaults registers the compile-time defaults
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", api.DefaultBaseURL)
	v.SetDefault("backend.timeout", 30*time.Second)
	v.SetDefault("backend.user_agent", "recipe-forge/1.0")

	v.SetDefault("cache.path", "")
	v.SetDefault("cache.refetch_interval", 2*time.Hour)
}

// LoadConfig loads the configuration from a file. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.yaml"
	}

	// If path is relative, try current directory first, then executable directory
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			if execPath, err := filesystem.GetDefaultPath(path); err == nil {
				if _, err := os.Stat(execPath); err == nil {
					path = execPath
				}
			}
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// SetConfigFile reports a missing file as a plain os error
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values that would make every request fail
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url must not be empty")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %s", c.Backend.Timeout)
	}
	if c.Cache.RefetchInterval <= 0 {
		return fmt.Errorf("cache.refetch_interval must be positive, got %s", c.Cache.RefetchInterval)
	}
	return nil
}

// CachePath returns the configured cache database path with "~" expanded,
// or the default file in the user data directory.
func (c *Config) CachePath() (string, error) {
	if c.Cache.Path == "" {
		return filesystem.GetDataPath(DefaultCacheFile)
	}
	return filesystem.ExpandHome(c.Cache.Path)
}
