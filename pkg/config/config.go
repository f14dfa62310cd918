// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/user/tapestudio/pkg/orchestrator"
	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

// Config represents the full configuration for tapestudio.
type Config struct {
	// Output
	OutputDir string `yaml:"output_dir"`
	Format    string `yaml:"format"`
	Quality   int    `yaml:"quality"`

	// Initial selection
	Product     string `yaml:"product"`
	ProductType string `yaml:"product_type"`
	Material    string `yaml:"material"`
	Background  string `yaml:"background"`

	// Texture mapping
	TextureRepeat Repeat `yaml:"texture_repeat"`
	CoreRepeat    Repeat `yaml:"core_repeat"`

	// Synthesis
	Seed uint64 `yaml:"seed"`

	// Uploads
	MaxUploadPixels int `yaml:"max_upload_pixels"`

	// Product card
	Card       bool   `yaml:"card"`
	CardWidth  int    `yaml:"card_width"`
	ChromePath string `yaml:"chrome_path"`

	// Summary
	Summary bool `yaml:"summary"`

	// Logging and debug
	LogLevel string `yaml:"log_level"`
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// Repeat is a texture repeat count per axis.
type Repeat struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Tiling converts r to a raster tiling.
func (r Repeat) Tiling() raster.Tiling {
	return raster.Tiling{RepeatX: r.X, RepeatY: r.Y}
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir: "./out",
		Format:    "png",
		Quality:   90,

		ProductType: policy.TypeAdhesive,
		Background:  "#000000",

		TextureRepeat: Repeat{X: 6, Y: 1},
		CoreRepeat:    Repeat{X: 12, Y: 2},

		CardWidth: 480,
		Summary:   true,

		LogLevel: "info",
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file over Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "png", "jpeg", "jpg", "webp":
	default:
		return fmt.Errorf("config: unsupported format %q", c.Format)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("config: quality must be within 1..100, got %d", c.Quality)
	}
	if err := c.TextureRepeat.Tiling().Validate(); err != nil {
		return fmt.Errorf("config: texture_repeat: %w", err)
	}
	if err := c.CoreRepeat.Tiling().Validate(); err != nil {
		return fmt.Errorf("config: core_repeat: %w", err)
	}
	if c.Product != "" {
		if _, err := policy.ResolveProduct(c.Product); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if _, err := policy.ResolveProductType(c.ProductType); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := ParseHex(c.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	if c.Card && c.CardWidth <= 0 {
		return errors.New("config: card_width must be positive")
	}
	return nil
}

// ImageFormat returns the configured output format.
func (c Config) ImageFormat() ports.ImageFormat {
	return ports.ParseImageFormat(strings.ToLower(c.Format))
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa into a color.
func ParseHex(hex string) (color.NRGBA, error) {
	s := strings.TrimSpace(hex)
	alpha := uint8(0xff)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q", hex)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	if len(s) != 4 && len(s) != 7 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", hex)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", hex)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// ParseColor parses a hex color string to color.Color. Malformed input
// yields opaque black.
func ParseColor(hex string) color.Color {
	c, err := ParseHex(hex)
	if err != nil {
		return color.Black
	}
	return c
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Product:       c.Product,
		ProductType:   c.ProductType,
		Material:      c.Material,
		Background:    c.Background,
		TextureRepeat: c.TextureRepeat.Tiling(),
		CoreRepeat:    c.CoreRepeat.Tiling(),
	}
}
