// Package fileconsumer writes the renderer-facing output of the configurator
// to a directory, for viewers that load the tape scene from disk.
//
// Layout of the output directory:
//
//	surface.<ext>   current surface map (removed when there is none)
//	core.<ext>      core texture
//	scene.json      material parameters, background and texture metadata
package fileconsumer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

// TextureInfo describes a written texture in scene.json.
type TextureInfo struct {
	File     string          `json:"file"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Tiling   raster.Tiling   `json:"tiling"`
	Sampling raster.Sampling `json:"sampling"`
}

// Scene is the content of scene.json.
type Scene struct {
	Background string          `json:"background"`
	Material   policy.Material `json:"material"`
	Surface    *TextureInfo    `json:"surface"`
	Core       *TextureInfo    `json:"core"`
	CoreInner  *TextureInfo    `json:"core_inner"`
}

// Consumer implements ports.RenderConsumer on a FileSystem. Write errors are
// logged and remembered; Err returns the first one.
type Consumer struct {
	dir      string
	format   ports.ImageFormat
	quality  int
	fs       ports.FileSystem
	renderer ports.Renderer
	logger   ports.Logger

	mu    sync.Mutex
	scene Scene
	err   error
}

// New creates a consumer writing to dir.
func New(dir string, format ports.ImageFormat, quality int, fs ports.FileSystem, renderer ports.Renderer, logger ports.Logger) *Consumer {
	return &Consumer{
		dir:      dir,
		format:   format,
		quality:  quality,
		fs:       fs,
		renderer: renderer,
		logger:   logger.WithComponent("output"),
	}
}

// Ensure Consumer implements ports.RenderConsumer
var _ ports.RenderConsumer = (*Consumer)(nil)

// ApplySurfaceMap writes or removes the surface map.
func (c *Consumer) ApplySurfaceMap(tex *raster.Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.Surface = c.writeTexture("surface", tex)
	c.writeScene()
}

// ApplyCoreMap writes or removes the core texture.
func (c *Consumer) ApplyCoreMap(tex *raster.Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.Core = c.writeTexture("core", tex)
	c.writeScene()
}

// ApplyCoreInnerMap writes or removes the inner core texture.
func (c *Consumer) ApplyCoreInnerMap(tex *raster.Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.CoreInner = c.writeTexture("core-inner", tex)
	c.writeScene()
}

// ApplyMaterialParameters records the material in scene.json.
func (c *Consumer) ApplyMaterialParameters(material policy.Material) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.Material = material
	c.writeScene()
}

// SetViewportBackground records the background in scene.json.
func (c *Consumer) SetViewportBackground(colorHex string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene.Background = colorHex
	c.writeScene()
}

// Scene returns the last written scene description.
func (c *Consumer) Scene() Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene
}

// Err returns the first write error, if any.
func (c *Consumer) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Consumer) writeTexture(name string, tex *raster.Texture) *TextureInfo {
	file := name + c.format.Extension()
	path := filepath.Join(c.dir, file)

	if tex == nil || tex.Raster == nil {
		if exists, _ := c.fs.Exists(path); exists {
			if err := c.fs.Remove(path); err != nil {
				c.fail(fmt.Errorf("remove %s: %w", file, err))
			}
		}
		return nil
	}

	data, err := c.renderer.EncodeImage(tex.Raster.Image(), c.format, c.quality)
	if err != nil {
		c.fail(fmt.Errorf("encode %s: %w", file, err))
		return nil
	}
	if err := c.fs.WriteFile(path, data); err != nil {
		c.fail(fmt.Errorf("write %s: %w", file, err))
		return nil
	}
	c.logger.Debug("Wrote %s (%dx%d)", file, tex.Width(), tex.Height())

	return &TextureInfo{
		File:     file,
		Width:    tex.Width(),
		Height:   tex.Height(),
		Tiling:   tex.Tiling,
		Sampling: tex.Sampling,
	}
}

func (c *Consumer) writeScene() {
	data, err := json.MarshalIndent(c.scene, "", "  ")
	if err != nil {
		c.fail(fmt.Errorf("encode scene: %w", err))
		return
	}
	if err := c.fs.WriteFile(filepath.Join(c.dir, "scene.json"), data); err != nil {
		c.fail(fmt.Errorf("write scene: %w", err))
	}
}

func (c *Consumer) fail(err error) {
	c.logger.Warn("Failed to write output: %s", err)
	if c.err == nil {
		c.err = err
	}
}
