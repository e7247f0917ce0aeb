// Package config handles meshtool configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"

	"github.com/Faultbox/tinymesh/pkg/heightfield"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all meshtool settings.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Generation GenerationConfig `yaml:"generation"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Colorize   ColorizeConfig   `yaml:"colorize"`
	Export     ExportConfig     `yaml:"export"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// GenerationConfig holds primitive tessellation settings.
type GenerationConfig struct {
	Div       int  `yaml:"div"`         // Divisions for disks, spheres, cylinders and capsules
	TorusDivR int  `yaml:"torus_div_r"` // Divisions around the tube
	TorusDivT int  `yaml:"torus_div_t"` // Divisions around the axis
	Smooth    bool `yaml:"smooth"`      // Recompute smooth normals after building
	Workers   int  `yaml:"workers"`     // Parallel part builders
}

// TerrainConfig holds heightfield settings.
type TerrainConfig struct {
	Size    int                       `yaml:"size"`
	Image   string                    `yaml:"image"` // Takes precedence over perlin and seed
	Noise   float64                   `yaml:"noise"` // Height of a white image pixel
	Seed    uint64                    `yaml:"seed"`
	Perlin  *heightfield.PerlinParams `yaml:"perlin,omitempty"`
	Flatten *FlattenConfig            `yaml:"flatten,omitempty"`
}

// FlattenConfig levels a square patch of the terrain.
type FlattenConfig struct {
	X      int     `yaml:"x"`
	Y      int     `yaml:"y"`
	Height float64 `yaml:"height"`
	Radius int     `yaml:"radius"`
}

// ColorizeConfig holds terrain coloring settings.
type ColorizeConfig struct {
	Enabled bool                    `yaml:"enabled"`
	Margin  float64                 `yaml:"margin"`
	Miss    string                  `yaml:"miss"`
	Bands   []BandConfig            `yaml:"bands"`
	March   heightfield.MarchParams `yaml:"march"`
	Eye     *[3]float64             `yaml:"eye,omitempty"` // Enables occlusion shading
	Shadow  float64                 `yaml:"shadow"`
}

// BandConfig is one color band; Color is a hex string such as "#585654".
type BandConfig struct {
	Name  string  `yaml:"name"`
	Upto  float64 `yaml:"upto"`
	Color string  `yaml:"color"`
}

// ExportConfig holds output settings.
type ExportConfig struct {
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"` // Write .obj.zst instead of .obj
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Generation: GenerationConfig{
			Div:       50,
			TorusDivR: 10,
			TorusDivT: 10,
			Smooth:    false,
			Workers:   runtime.NumCPU(),
		},
		Terrain: TerrainConfig{
			Size:  196,
			Noise: 20,
			Seed:  1,
		},
		Colorize: ColorizeConfig{
			Enabled: true,
			Margin:  1,
			Miss:    "#000000",
			Bands: []BandConfig{
				{Name: "snow", Upto: 0.3, Color: "#ffffff"},
				{Name: "rock", Upto: 0.5, Color: "#585654"},
				{Name: "dirt", Upto: 0.7, Color: "#964b00"},
				{Name: "grass", Upto: 1, Color: "#00991a"},
			},
			March:  heightfield.DefaultMarchParams(),
			Shadow: 0.5,
		},
		Export: ExportConfig{
			Dir:      "out",
			Compress: false,
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Generation.Div >= 1, "generation.div must be at least 1, got %d", c.Generation.Div)
	check(c.Generation.TorusDivR >= 1, "generation.torus_div_r must be at least 1, got %d", c.Generation.TorusDivR)
	check(c.Generation.TorusDivT >= 1, "generation.torus_div_t must be at least 1, got %d", c.Generation.TorusDivT)
	check(c.Terrain.Size >= 1, "terrain.size must be at least 1, got %d", c.Terrain.Size)
	check(c.Colorize.March.Step > 0, "colorize.march.step must be positive, got %g", c.Colorize.March.Step)
	check(c.Colorize.Shadow >= 0 && c.Colorize.Shadow <= 1, "colorize.shadow must be in [0, 1], got %g", c.Colorize.Shadow)

	if c.Colorize.Miss != "" {
		_, hexErr := colorful.Hex(c.Colorize.Miss)
		check(hexErr == nil, "colorize.miss: %q is not a hex color", c.Colorize.Miss)
	}
	for i, b := range c.Colorize.Bands {
		_, hexErr := colorful.Hex(b.Color)
		check(hexErr == nil, "colorize.bands[%d]: %q is not a hex color", i, b.Color)
		if i > 0 {
			prev := c.Colorize.Bands[i-1].Upto
			check(b.Upto >= prev, "colorize.bands[%d]: upto %g below previous band %g", i, b.Upto, prev)
		}
	}

	return err
}
