package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/tapestudio/pkg/adapters/fileconsumer"
	"github.com/user/tapestudio/pkg/adapters/logger"
	"github.com/user/tapestudio/pkg/config"
	"github.com/user/tapestudio/pkg/orchestrator"
	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/raster"
	"github.com/user/tapestudio/pkg/summarizer"
)

func TestBuildSummary(t *testing.T) {
	surface := &raster.Texture{Raster: raster.New(800, 600), Tiling: raster.Tiling{RepeatX: 6, RepeatY: 1}}
	state := orchestrator.Snapshot{
		ProductType: policy.TypeEco,
		Material:    policy.Resolve(policy.MaterialKraftEco),
		Product:     "eco-kraft",
		HasImage:    true,
		Background:  "#000000",
		Source:      orchestrator.SourceProceduralOverlay,
		Transitions: 2,
		SurfaceMap:  surface,
	}
	scene := fileconsumer.Scene{Surface: &fileconsumer.TextureInfo{File: "surface.png"}}

	s := buildSummary(state, scene, func(name string) int64 { return int64(len(name)) })

	if s.Product.PresetID != "eco-kraft" || s.Product.TypeID != policy.TypeEco {
		t.Errorf("unexpected product: %+v", s.Product)
	}
	if s.Surface.Source != "procedural-overlay" || s.Surface.Width != 800 || s.Surface.File != "surface.png" {
		t.Errorf("unexpected surface: %+v", s.Surface)
	}
	if s.Surface.FileSize != int64(len("surface.png")) {
		t.Errorf("expected file size from callback, got %d", s.Surface.FileSize)
	}
	if s.Core != (summarizer.TextureInfo{}) {
		t.Errorf("expected no core, got %+v", s.Core)
	}

	md := summarizer.NewMarkdownFormatter().Format(s)
	if !strings.Contains(md, "800x600") {
		t.Error("expected surface size in markdown")
	}

	state.CoreMap = &raster.Texture{Raster: raster.New(512, 512), Tiling: raster.Tiling{RepeatX: 12, RepeatY: 2}}
	if got := buildSummary(state, scene, func(string) int64 { return 0 }).Core.Source; got != "upload" {
		t.Errorf("expected core sourced from the upload, got %q", got)
	}
	state.HasImage = false
	if got := buildSummary(state, scene, func(string) int64 { return 0 }).Core.Source; got != "cardboard" {
		t.Errorf("expected cardboard core, got %q", got)
	}
}

func TestRenderCmd_ApplySelection(t *testing.T) {
	str := func(s string) *string { return &s }

	cfg := config.Defaults()
	cfg.Product = "eco-kraft"
	cmd := RenderCmd{ProductType: str(policy.TypePrinted), Background: str("#fff")}
	cmd.applySelection(&cfg)

	if cfg.Product != "" || cfg.ProductType != policy.TypePrinted || cfg.Material != "" {
		t.Errorf("product type flag should replace the preset: %+v", cfg)
	}
	if cfg.Background != "#fff" {
		t.Errorf("expected background override, got %q", cfg.Background)
	}

	cfg = config.Defaults()
	cmd = RenderCmd{Product: str("filament"), Material: str(policy.MaterialTransparent)}
	cmd.applySelection(&cfg)
	if cfg.Product != "filament" {
		t.Errorf("explicit product flag should be kept, got %q", cfg.Product)
	}
}

func TestCommonFlags_Load(t *testing.T) {
	out := "render-out"
	seed := uint64(7)
	level := "debug"
	flags := CommonFlags{Output: &out, Format: "webp", Seed: &seed, NoSummary: true, LogLevel: &level}

	cfg, err := flags.load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != out || cfg.Format != "webp" || cfg.Seed != 7 || cfg.Summary || cfg.LogLevel != "debug" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}

func TestCommonFlags_LogLevelPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tapestudio.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	flags := CommonFlags{Config: path}
	cfg, err := flags.load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected log_level from file without -l, got %q", cfg.LogLevel)
	}

	level := "error"
	flags.LogLevel = &level
	if cfg, err = flags.load(); err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("expected -l to override the file, got %q", cfg.LogLevel)
	}

	if _, ok := flags.logger(cfg).(*logger.ConsoleLogger); !ok {
		t.Error("expected a console logger")
	}
	flags.Quiet = true
	if _, ok := flags.logger(cfg).(*logger.NoopLogger); !ok {
		t.Error("expected quiet to win over the log level")
	}
}
