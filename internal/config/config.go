// Package config loads polymesh settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is read from the working directory when no path is given
const DefaultFile = "polymesh.toml"

// Config holds the settings shared by every command
type Config struct {
	// Database is the SQLite file holding the Polyhedron, Vertex and Polygon tables
	Database string `toml:"database"`

	// Collection receives imported objects
	Collection string `toml:"collection"`

	Render RenderConfig `toml:"render"`
	Watch  WatchConfig  `toml:"watch"`
}

// RenderConfig controls snapshots written by the render command
type RenderConfig struct {
	Size        int     `toml:"size"`
	Supersample int     `toml:"supersample"`
	Yaw         float64 `toml:"yaw"`   // degrees
	Pitch       float64 `toml:"pitch"` // degrees
}

// WatchConfig controls the database watcher
type WatchConfig struct {
	DebounceMillis int `toml:"debounce_ms"`
}

// Debounce returns the watcher debounce as a duration
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMillis) * time.Millisecond
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Database:   "polyhedra.db",
		Collection: "Collection",
		Render: RenderConfig{
			Size:        512,
			Supersample: 2,
			Yaw:         30,
			Pitch:       22.5,
		},
		Watch: WatchConfig{
			DebounceMillis: 250,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads path over the defaults and fails if it does not exist
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, errors.New(strict.String())
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch {
	case c.Database == "":
		return errors.New("database must not be empty")
	case c.Render.Size <= 0:
		return fmt.Errorf("render.size must be positive, got %d", c.Render.Size)
	case c.Render.Supersample < 1 || c.Render.Supersample > 8:
		return fmt.Errorf("render.supersample must be between 1 and 8, got %d", c.Render.Supersample)
	case c.Watch.DebounceMillis < 0:
		return fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMillis)
	}
	return nil
}

// Write encodes c as TOML
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
