// Package config handles pathtool configuration loading and management.
package config

import (
	"errors"

	"go.uber.org/multierr"
)

// Config holds all pathtool settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh" toml:"mesh"`
	Camera  CameraConfig  `yaml:"camera" toml:"camera"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// MeshConfig holds mesh generation settings.
type MeshConfig struct {
	TileWidth   float32 `yaml:"tile_width" toml:"tile_width"`     // World units per texture repeat
	DefaultStep int     `yaml:"default_step" toml:"default_step"` // Step given to segments created by edits
}

// CameraConfig describes the top-down view used to turn screen clicks into
// ground points.
type CameraConfig struct {
	CenterX        float32 `yaml:"center_x" toml:"center_x"`
	CenterZ        float32 `yaml:"center_z" toml:"center_z"`
	Size           float32 `yaml:"size" toml:"size"` // Half the visible height in world units
	GroundY        float32 `yaml:"ground_y" toml:"ground_y"`
	ViewportWidth  int     `yaml:"viewport_width" toml:"viewport_width"`
	ViewportHeight int     `yaml:"viewport_height" toml:"viewport_height"`
}

// WatchConfig holds settings for rebuilding on file changes.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" toml:"debounce_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			TileWidth:   1,
			DefaultStep: 1,
		},
		Camera: CameraConfig{
			Size:           10,
			ViewportWidth:  1280,
			ViewportHeight: 720,
		},
		Watch: WatchConfig{
			DebounceMS: 100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Mesh.TileWidth <= 0 {
		err = multierr.Append(err, errors.New("mesh.tile_width must be positive"))
	}
	if c.Mesh.DefaultStep < 1 {
		err = multierr.Append(err, errors.New("mesh.default_step must be at least 1"))
	}
	if c.Camera.Size <= 0 {
		err = multierr.Append(err, errors.New("camera.size must be positive"))
	}
	if c.Camera.ViewportWidth <= 0 || c.Camera.ViewportHeight <= 0 {
		err = multierr.Append(err, errors.New("camera viewport must be positive"))
	}
	if c.Watch.DebounceMS < 0 {
		err = multierr.Append(err, errors.New("watch.debounce_ms must not be negative"))
	}
	return err
}
