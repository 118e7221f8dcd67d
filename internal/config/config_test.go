package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/arrange"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "redis"

[storage.redis]
addr = "cache.internal:6379"
ttl = "24h"

[editor]
autosave_debounce = "250ms"

[arrange]
layout = "staggered"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Backend != BackendRedis {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, BackendRedis)
	}
	if cfg.Storage.Redis.Addr != "cache.internal:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Storage.Redis.Addr)
	}
	if cfg.Storage.Redis.TTL.Std() != 24*time.Hour {
		t.Errorf("Redis.TTL = %v, want 24h", cfg.Storage.Redis.TTL.Std())
	}
	if cfg.Editor.AutosaveDebounce.Std() != 250*time.Millisecond {
		t.Errorf("AutosaveDebounce = %v, want 250ms", cfg.Editor.AutosaveDebounce.Std())
	}
	if cfg.Arrange.Layout != string(arrange.LayoutStaggered) {
		t.Errorf("Layout = %q, want staggered", cfg.Arrange.Layout)
	}

	// Untouched sections keep their defaults.
	if cfg.Storage.Mongo.Database != "seating" {
		t.Errorf("Mongo.Database = %q, want seating", cfg.Storage.Mongo.Database)
	}
	if cfg.Arrange.Spacing != arrange.DefaultSpacing {
		t.Errorf("Spacing = %v, want %v", cfg.Arrange.Spacing, arrange.DefaultSpacing)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("Load() = nil error, want error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, `[storage`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() = nil error, want parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantCode apperrors.Code
	}{
		{
			name:     "unknown backend",
			mutate:   func(c *Config) { c.Storage.Backend = "cassandra" },
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown layout",
			mutate:   func(c *Config) { c.Arrange.Layout = "spiral" },
			wantCode: apperrors.ErrCodeInvalidLayout,
		},
		{
			name:     "negative spacing",
			mutate:   func(c *Config) { c.Arrange.Spacing = -1 },
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "negative debounce",
			mutate:   func(c *Config) { c.Editor.AutosaveDebounce = Duration(-time.Second) },
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "zero history capacity",
			mutate:   func(c *Config) { c.Editor.HistoryCapacity = 0 },
			wantCode: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "zero default seats",
			mutate:   func(c *Config) { c.Editor.DefaultSeats = 0 },
			wantCode: apperrors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if got := apperrors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v", got, tt.wantCode)
			}
		})
	}
}

func TestArrangeOptions(t *testing.T) {
	cfg := Default()
	cfg.Arrange.Layout = string(arrange.LayoutStaggered)
	cfg.Arrange.Spacing = 180
	cfg.Arrange.MaxColumns = 5

	opts := cfg.ArrangeOptions()
	if opts.Layout != arrange.LayoutStaggered {
		t.Errorf("Layout = %v", opts.Layout)
	}
	if opts.Spacing != 180 {
		t.Errorf("Spacing = %v", opts.Spacing)
	}
	if opts.MaxColumns != 5 {
		t.Errorf("MaxColumns = %v", opts.MaxColumns)
	}
}
