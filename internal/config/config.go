// Package config loads gizmoview settings from an optional YAML file,
// GIZMOVIEW_ environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"toolsframework/internal/interactive"

	"github.com/spf13/viper"
)

const EnvPrefix = "GIZMOVIEW"

type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
	MaxSizeMB   int    `mapstructure:"max_size_mb"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAgeDays  int    `mapstructure:"max_age_days"`
}

type Tools struct {
	ChangeTracking            string `mapstructure:"change_tracking"`
	ClearSelectionStoreOnExit bool   `mapstructure:"clear_selection_store_on_exit"`
}

type Snapping struct {
	PositionEnabled bool    `mapstructure:"position_enabled"`
	PositionGrid    float32 `mapstructure:"position_grid"`
	RotationEnabled bool    `mapstructure:"rotation_enabled"`
	RotationDegrees float32 `mapstructure:"rotation_degrees"`
	ScaleEnabled    bool    `mapstructure:"scale_enabled"`
	ScaleStep       float32 `mapstructure:"scale_step"`
}

type Gizmo struct {
	CoordinateSystem string `mapstructure:"coordinate_system"`
	ViewScaled       bool   `mapstructure:"view_scaled"`
}

type Window struct {
	Width  int32 `mapstructure:"width"`
	Height int32 `mapstructure:"height"`
	FPS    int32 `mapstructure:"fps"`
}

type Undo struct {
	MaxDepth int `mapstructure:"max_depth"`
}

type Metrics struct {
	Addr string `mapstructure:"addr"`
}

type Config struct {
	Log      Log      `mapstructure:"log"`
	Tools    Tools    `mapstructure:"tools"`
	Snapping Snapping `mapstructure:"snapping"`
	Gizmo    Gizmo    `mapstructure:"gizmo"`
	Window   Window   `mapstructure:"window"`
	Undo     Undo     `mapstructure:"undo"`
	Metrics  Metrics  `mapstructure:"metrics"`
}

// SetDefaults installs every key's default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", true)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)

	v.SetDefault("tools.change_tracking", interactive.UndoToExit.String())
	v.SetDefault("tools.clear_selection_store_on_exit", true)

	v.SetDefault("snapping.position_enabled", false)
	v.SetDefault("snapping.position_grid", 0.5)
	v.SetDefault("snapping.rotation_enabled", false)
	v.SetDefault("snapping.rotation_degrees", 15)
	v.SetDefault("snapping.scale_enabled", false)
	v.SetDefault("snapping.scale_step", 0.1)

	v.SetDefault("gizmo.coordinate_system", interactive.CoordinateSystemWorld.String())
	v.SetDefault("gizmo.view_scaled", true)

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.fps", 120)

	v.SetDefault("undo.max_depth", 50)
	v.SetDefault("metrics.addr", "")
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path into v when path is non-empty and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var ErrInvalid = errors.New("invalid config")

func (c *Config) Validate() error {
	if _, err := interactive.ParseChangeTrackingMode(c.Tools.ChangeTracking); err != nil {
		return fmt.Errorf("%w: tools.change_tracking: %v", ErrInvalid, err)
	}
	if _, err := interactive.ParseCoordinateSystem(c.Gizmo.CoordinateSystem); err != nil {
		return fmt.Errorf("%w: gizmo.coordinate_system: %v", ErrInvalid, err)
	}
	if c.Snapping.PositionGrid < 0 || c.Snapping.RotationDegrees < 0 || c.Snapping.ScaleStep < 0 {
		return fmt.Errorf("%w: snapping steps must not be negative", ErrInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

func (c *Config) ChangeTrackingMode() interactive.ChangeTrackingMode {
	m, _ := interactive.ParseChangeTrackingMode(c.Tools.ChangeTracking)
	return m
}

func (c *Config) CoordinateSystem() interactive.CoordinateSystem {
	cs, _ := interactive.ParseCoordinateSystem(c.Gizmo.CoordinateSystem)
	return cs
}

func (c *Config) SnappingSettings() interactive.SnappingSettings {
	return interactive.SnappingSettings{
		PositionEnabled: c.Snapping.PositionEnabled,
		PositionGrid:    c.Snapping.PositionGrid,
		RotationEnabled: c.Snapping.RotationEnabled,
		RotationDegrees: c.Snapping.RotationDegrees,
		ScaleEnabled:    c.Snapping.ScaleEnabled,
		ScaleStep:       c.Snapping.ScaleStep,
	}
}

// SelectionStorePolicy returns the tool manager policy for the stored
// selection. With clearing disabled the store is never cleared on exit.
func (c *Config) SelectionStorePolicy() interactive.SelectionStorePolicy {
	if c.Tools.ClearSelectionStoreOnExit {
		return interactive.DefaultSelectionStorePolicy
	}
	return func(interactive.ToolShutdownType, bool) bool { return false }
}
