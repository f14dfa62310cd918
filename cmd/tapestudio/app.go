package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ideamans/go-l10n"

	"github.com/user/tapestudio/pkg/adapters/capturehtml"
	"github.com/user/tapestudio/pkg/adapters/fileconsumer"
	"github.com/user/tapestudio/pkg/adapters/filesink"
	"github.com/user/tapestudio/pkg/adapters/ggrenderer"
	"github.com/user/tapestudio/pkg/adapters/imagedecoder"
	"github.com/user/tapestudio/pkg/adapters/nullsink"
	"github.com/user/tapestudio/pkg/adapters/osfilesystem"
	"github.com/user/tapestudio/pkg/config"
	"github.com/user/tapestudio/pkg/orchestrator"
	"github.com/user/tapestudio/pkg/pipeline"
	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
	"github.com/user/tapestudio/pkg/stages/card"
	"github.com/user/tapestudio/pkg/stages/composite"
	"github.com/user/tapestudio/pkg/stages/synth"
	"github.com/user/tapestudio/pkg/summarizer"
)

// app wires adapters, stages and the orchestrator for one CLI invocation.
type app struct {
	cfg      config.Config
	log      ports.Logger
	fs       ports.FileSystem
	renderer *ggrenderer.Renderer
	consumer *fileconsumer.Consumer
	orch     *orchestrator.Orchestrator
}

func newSynth(renderer ports.Renderer, seed uint64, log ports.Logger) *synth.Synthesizer {
	if seed != 0 {
		return synth.NewSeeded(renderer, seed, log)
	}
	return synth.New(renderer, nil, log)
}

func newApp(cfg config.Config, log ports.Logger) (*app, error) {
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	if err := fs.MkdirAll(cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	consumer := fileconsumer.New(cfg.OutputDir, cfg.ImageFormat(), cfg.Quality, fs, renderer, log)

	orch, err := orchestrator.New(
		newSynth(renderer, cfg.Seed, log),
		composite.New(renderer, log),
		imagedecoder.New(cfg.MaxUploadPixels, log),
		consumer,
		sink,
		log,
		cfg.ToOrchestratorConfig(),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		fs:       fs,
		renderer: renderer,
		consumer: consumer,
		orch:     orch,
	}, nil
}

// upload decodes the file at path and waits for it to be applied.
func (a *app) upload(ctx context.Context, path string) error {
	data, err := a.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	out := <-a.orch.UploadImage(ctx, ports.ByteSource{Name: filepath.Base(path), Data: data})
	return out.Err
}

// finish writes the summary and product card for the final state.
func (a *app) finish(ctx context.Context) error {
	if err := a.consumer.Err(); err != nil {
		return err
	}
	state := a.orch.State()

	if a.cfg.Summary {
		path := filepath.Join(a.cfg.OutputDir, "summary.md")
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), a.fs)
		if err := writer.Write(path, buildSummary(state, a.consumer.Scene(), a.fileSize)); err != nil {
			return err
		}
		a.log.Info("Summary saved to %s", path)
	}

	if a.cfg.Card {
		if err := a.writeCard(ctx, state); err != nil {
			return err
		}
	}

	a.log.Info("Output saved to %s", a.cfg.OutputDir)
	return nil
}

func (a *app) writeCard(ctx context.Context, state orchestrator.Snapshot) error {
	input := pipeline.CardInput{
		Width:       a.cfg.CardWidth,
		ProductType: a.orch.ProductType(),
		Material:    state.Material,
		CustomText:  state.CustomText,
		Background:  state.Background,
	}
	if state.Product != "" {
		if p, err := policy.ResolveProduct(state.Product); err == nil {
			input.Product = &p
		}
	}
	if state.SurfaceMap != nil {
		input.SurfaceMap = state.SurfaceMap.Raster.Image()
	}

	stage := card.NewStage(capturehtml.New(capturehtml.WithExecPath(a.cfg.ChromePath)), a.renderer, a.log)
	res, err := stage.Execute(ctx, input)
	if err != nil {
		return fmt.Errorf("product card: %w", err)
	}
	data, err := a.renderer.EncodeImage(res.Image, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode card: %w", err)
	}
	path := filepath.Join(a.cfg.OutputDir, "card.png")
	if err := a.fs.WriteFile(path, data); err != nil {
		return err
	}
	a.log.Info("Product card saved to %s", path)
	return nil
}

func (a *app) fileSize(name string) int64 {
	data, err := a.fs.ReadFile(filepath.Join(a.cfg.OutputDir, name))
	if err != nil {
		return 0
	}
	return int64(len(data))
}

// buildSummary converts the final state into a summary.
func buildSummary(state orchestrator.Snapshot, scene fileconsumer.Scene, size func(string) int64) *summarizer.Summary {
	coreSource := string(raster.FamilyCardboard)
	if state.HasImage {
		coreSource = "upload"
	}

	b := summarizer.NewBuilder().
		WithProductType(policy.MustResolveProductType(state.ProductType)).
		WithMaterial(state.Material).
		WithSelection(state.CustomText, state.HasImage, state.Background).
		WithSurface(textureInfo(state.Source.String(), state.SurfaceMap, scene.Surface, size)).
		WithCore(textureInfo(coreSource, state.CoreMap, scene.Core, size)).
		WithSession(state.Transitions, state.CachedSlots)

	if state.Product != "" {
		if p, err := policy.ResolveProduct(state.Product); err == nil {
			b.WithPreset(&p)
		}
	}
	return b.Build()
}

func textureInfo(source string, tex *raster.Texture, written *fileconsumer.TextureInfo, size func(string) int64) summarizer.TextureInfo {
	if tex == nil {
		return summarizer.TextureInfo{}
	}
	info := summarizer.TextureInfo{
		Source:  source,
		Width:   tex.Width(),
		Height:  tex.Height(),
		RepeatX: tex.Tiling.RepeatX,
		RepeatY: tex.Tiling.RepeatY,
	}
	if written != nil {
		info.File = written.File
		info.FileSize = size(written.File)
	}
	return info
}
