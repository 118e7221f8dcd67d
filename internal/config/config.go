// Package config loads the application's TOML configuration.
//
// Configuration lives at ~/.config/seating/config.toml by default and
// covers the storage backend, editor behavior, arrangement defaults,
// and the HTTP server. Every field has a sensible default, so a missing
// config file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/arrange"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/history"
)

// Storage backend names accepted in [storage].backend.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

// Duration wraps time.Duration so TOML values can be written as "1s",
// "500ms", and so on.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the full application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Editor  EditorConfig  `toml:"editor"`
	Arrange ArrangeConfig `toml:"arrange"`
	Server  ServerConfig  `toml:"server"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"` // file backend; empty means the default location
	Mongo   MongoConfig `toml:"mongo"`
	Redis   RedisConfig `toml:"redis"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string   `toml:"addr"`
	Password string   `toml:"password"`
	DB       int      `toml:"db"`
	TTL      Duration `toml:"ttl"` // zero means documents never expire
}

// EditorConfig tunes the editing session.
type EditorConfig struct {
	AutosaveDebounce Duration `toml:"autosave_debounce"`
	HistoryCapacity  int      `toml:"history_capacity"`
	DefaultSeats     int      `toml:"default_seats"`
}

// ArrangeConfig sets table arrangement defaults.
type ArrangeConfig struct {
	Layout          string  `toml:"layout"`
	Spacing         float64 `toml:"spacing"`
	ObjectClearance float64 `toml:"object_clearance"`
	MaxColumns      int     `toml:"max_columns"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "seating",
				Collection: "events",
			},
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Editor: EditorConfig{
			AutosaveDebounce: Duration(time.Second),
			HistoryCapacity:  history.DefaultCapacity,
			DefaultSeats:     8,
		},
		Arrange: ArrangeConfig{
			Layout:          string(arrange.LayoutGrid),
			Spacing:         arrange.DefaultSpacing,
			ObjectClearance: arrange.DefaultObjectClearance,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.config/seating/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "seating", "config.toml"), nil
}

// Load reads the config file at path, layered over the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDefault reads the config file from the default location. A missing
// file yields the default configuration.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the configuration for values no component accepts.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendMongo, BackendRedis:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"unknown storage backend %q", c.Storage.Backend)
	}

	switch arrange.Layout(c.Arrange.Layout) {
	case arrange.LayoutGrid, arrange.LayoutStaggered:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidLayout,
			"unknown arrangement layout %q", c.Arrange.Layout)
	}

	if c.Arrange.Spacing < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "arrange spacing cannot be negative")
	}
	if c.Arrange.ObjectClearance < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "object clearance cannot be negative")
	}
	if c.Editor.AutosaveDebounce < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "autosave debounce cannot be negative")
	}
	if c.Editor.HistoryCapacity < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "history capacity must be at least 1")
	}
	if err := apperrors.ValidateSeatCount(c.Editor.DefaultSeats); err != nil {
		return err
	}

	return nil
}

// ArrangeOptions converts the arrangement section to engine options.
func (c Config) ArrangeOptions() arrange.Options {
	return arrange.Options{
		Layout:          arrange.Layout(c.Arrange.Layout),
		Spacing:         c.Arrange.Spacing,
		ObjectClearance: c.Arrange.ObjectClearance,
		MaxColumns:      c.Arrange.MaxColumns,
	}
}
