// Package config resolves vencoord settings from defaults, a TOML file and
// the environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vencoord/grid"
	"github.com/lixenwraith/vencoord/toml"
)

// Output units
const (
	UnitsCells  = "cells"
	UnitsPixels = "pixels"
)

// MaxGap is the widest accepted grid gap, keeping scaled points in uint32
const MaxGap = math.MaxUint16

// Environment variables, applied after the config file
const (
	EnvGapX       = "VENCOORD_GAP_X"
	EnvGapY       = "VENCOORD_GAP_Y"
	EnvUnits      = "VENCOORD_UNITS"
	EnvLabelColor = "VENCOORD_LABEL_COLOR"
	EnvDotColor   = "VENCOORD_DOT_COLOR"
	EnvSound      = "VENCOORD_SOUND"
	EnvVolume     = "VENCOORD_VOLUME"
)

var (
	// ErrInvalidGap indicates a grid gap below one cell
	ErrInvalidGap = grid.ErrInvalidGap
	// ErrInvalidUnits indicates an output unit other than cells or pixels
	ErrInvalidUnits = errors.New("config: units must be \"cells\" or \"pixels\"")
	// ErrInvalidColor indicates a color tcell cannot resolve
	ErrInvalidColor = errors.New("config: unknown color")
	// ErrInvalidVolume indicates a volume outside [0, 1]
	ErrInvalidVolume = errors.New("config: volume must be between 0 and 1")
)

type GridConfig struct {
	GapX int `toml:"gap_x"`
	GapY int `toml:"gap_y"`
}

type OutputConfig struct {
	Units string `toml:"units"`
}

type StyleConfig struct {
	Label string `toml:"label"`
	Dot   string `toml:"dot"`
}

type SoundConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Config is the full set of user settings
type Config struct {
	Grid   GridConfig   `toml:"grid"`
	Output OutputConfig `toml:"output"`
	Style  StyleConfig  `toml:"style"`
	Sound  SoundConfig  `toml:"sound"`
	Debug  bool         `toml:"debug"`
}

// Default returns the built-in settings.
// Terminal cells are roughly twice as tall as wide, so rows use half the column gap.
func Default() *Config {
	return &Config{
		Grid:   GridConfig{GapX: 4, GapY: 2},
		Output: OutputConfig{Units: UnitsCells},
		Style:  StyleConfig{Label: "red", Dot: "darkred"},
		Sound:  SoundConfig{Enabled: false, Volume: 0.3},
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vencoord", "config.toml"), nil
}

// Load builds a config from defaults, the file at path and the process environment.
// An empty path means DefaultPath, which may be absent; an explicit path must exist.
// Returns the file actually read, or "" when none was.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	var source string
	if path != "" {
		err := cfg.LoadFile(path)
		switch {
		case err == nil:
			source = path
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return nil, "", err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, "", err
	}
	return cfg, source, nil
}

// LoadFile merges the TOML file at path over c
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c from environment variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, v := range []struct {
		name string
		dst  *int
	}{
		{EnvGapX, &c.Grid.GapX},
		{EnvGapY, &c.Grid.GapY},
	} {
		if s, ok := lookup(v.name); ok {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("config: %s=%q: %w", v.name, s, ErrInvalidGap)
			}
			*v.dst = n
		}
	}

	if s, ok := lookup(EnvUnits); ok {
		c.Output.Units = s
	}
	if s, ok := lookup(EnvLabelColor); ok {
		c.Style.Label = s
	}
	if s, ok := lookup(EnvDotColor); ok {
		c.Style.Dot = s
	}

	if s, ok := lookup(EnvSound); ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvSound, s, err)
		}
		c.Sound.Enabled = b
	}
	if s, ok := lookup(EnvVolume); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", EnvVolume, s, ErrInvalidVolume)
		}
		c.Sound.Volume = f
	}
	return nil
}

// Validate checks every field; the first problem found is returned
func (c *Config) Validate() error {
	if err := c.Geometry(0, 0).Validate(); err != nil {
		return fmt.Errorf("%w (gap_x=%d, gap_y=%d)", err, c.Grid.GapX, c.Grid.GapY)
	}
	if c.Grid.GapX > MaxGap || c.Grid.GapY > MaxGap {
		return fmt.Errorf("%w: at most %d (gap_x=%d, gap_y=%d)", ErrInvalidGap, MaxGap, c.Grid.GapX, c.Grid.GapY)
	}

	switch c.Output.Units {
	case UnitsCells, UnitsPixels:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidUnits, c.Output.Units)
	}

	if _, _, err := c.Colors(); err != nil {
		return err
	}

	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidVolume, c.Sound.Volume)
	}
	return nil
}

// Geometry returns the grid layout for a screen of the given size
func (c *Config) Geometry(width, height int) grid.Geometry {
	return grid.Geometry{
		Width:  width,
		Height: height,
		GapX:   c.Grid.GapX,
		GapY:   c.Grid.GapY,
	}
}

// Colors returns the resolved label and marker colors
func (c *Config) Colors() (label, dot tcell.Color, err error) {
	if label, err = ParseColor(c.Style.Label); err != nil {
		return tcell.ColorDefault, tcell.ColorDefault, err
	}
	if dot, err = ParseColor(c.Style.Dot); err != nil {
		return tcell.ColorDefault, tcell.ColorDefault, err
	}
	return label, dot, nil
}

// ParseColor resolves a W3C color name or #rrggbb value
func ParseColor(name string) (tcell.Color, error) {
	color := tcell.GetColor(name)
	if color == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("%w: %q", ErrInvalidColor, name)
	}
	return color, nil
}
