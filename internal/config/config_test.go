package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lepinkainen/recipe-forge/pkg/api"
	"github.com/lepinkainen/recipe-forge/pkg/filesystem"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Backend.BaseURL != api.DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Backend.Timeout)
	}
	if cfg.Cache.RefetchInterval != 2*time.Hour {
		t.Errorf("RefetchInterval = %v", cfg.Cache.RefetchInterval)
	}
	if cfg.Cache.Path != "" {
		t.Errorf("Cache.Path = %q, want empty", cfg.Cache.Path)
	}
}

func TestLoadConfigRelativeMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Backend.BaseURL != api.DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.Backend.BaseURL)
	}
}

func TestLoadConfigExecutableDir(t *testing.T) {
	t.Chdir(t.TempDir())

	name := "recipe-forge-exedir-test.yaml"
	exePath, err := filesystem.GetDefaultPath(name)
	if err != nil {
		t.Skipf("no executable path: %v", err)
	}
	if err := os.WriteFile(exePath, []byte("backend:\n  base_url: http://exedir.example\n"), 0o644); err != nil {
		t.Skipf("executable dir not writable: %v", err)
	}
	t.Cleanup(func() { os.Remove(exePath) })

	cfg, err := LoadConfig(name)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Backend.BaseURL != "http://exedir.example" {
		t.Errorf("BaseURL = %q, want value from executable dir", cfg.Backend.BaseURL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: http://localhost:8080
  timeout: 5s
cache:
  path: /tmp/recipes.db
  refetch_interval: 12h
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Backend.Timeout)
	}
	if cfg.Backend.UserAgent != "recipe-forge/1.0" {
		t.Errorf("UserAgent default lost: %q", cfg.Backend.UserAgent)
	}
	if cfg.Cache.RefetchInterval != 12*time.Hour {
		t.Errorf("RefetchInterval = %v", cfg.Cache.RefetchInterval)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("RECIPE_FORGE_BACKEND_BASE_URL", "http://env.example")
	t.Setenv("RECIPE_FORGE_CACHE_REFETCH_INTERVAL", "30m")

	cfg, err := LoadConfig(writeConfig(t, "backend:\n  base_url: http://file.example\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Backend.BaseURL != "http://env.example" {
		t.Errorf("BaseURL = %q, want env override", cfg.Backend.BaseURL)
	}
	if cfg.Cache.RefetchInterval != 30*time.Minute {
		t.Errorf("RefetchInterval = %v", cfg.Cache.RefetchInterval)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "broken yaml", content: "backend: [", wantErr: "error reading config file"},
		{name: "zero timeout", content: "backend:\n  timeout: 0s\n", wantErr: "backend.timeout"},
		{name: "negative interval", content: "cache:\n  refetch_interval: -1h\n", wantErr: "cache.refetch_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestCachePath(t *testing.T) {
	var cfg Config
	cfg.Cache.Path = "/var/lib/recipes.db"
	if got, _ := cfg.CachePath(); got != "/var/lib/recipes.db" {
		t.Errorf("CachePath() = %q", got)
	}

	cfg.Cache.Path = ""
	got, err := cfg.CachePath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if filepath.Base(got) != DefaultCacheFile || filepath.Base(filepath.Dir(got)) != "recipe-forge" {
		t.Errorf("CachePath() = %q", got)
	}
}
