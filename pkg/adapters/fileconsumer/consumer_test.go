package fileconsumer

import (
	"encoding/json"
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/tapestudio/pkg/adapters/logger"
	"github.com/user/tapestudio/pkg/mocks"
	"github.com/user/tapestudio/pkg/policy"
	"github.com/user/tapestudio/pkg/ports"
	"github.com/user/tapestudio/pkg/raster"
)

const outDir = "out"

func newConsumer(fs *mocks.FileSystem, renderer *mocks.Renderer) *Consumer {
	return New(outDir, ports.FormatWebP, 0, fs, renderer, logger.NewNoop())
}

func webpRenderer() *mocks.Renderer {
	return &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return []byte(format.String()), nil
		},
	}
}

func texture(w, h int) *raster.Texture {
	return &raster.Texture{
		Raster:   raster.New(w, h).Publish(),
		Tiling:   raster.Tiling{RepeatX: 6, RepeatY: 1},
		Sampling: raster.RepeatSampling(),
	}
}

func readScene(t *testing.T, fs *mocks.FileSystem) Scene {
	t.Helper()
	data, ok := fs.GetFile(filepath.Join(outDir, "scene.json"))
	if !ok {
		t.Fatal("expected scene.json")
	}
	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		t.Fatalf("invalid scene.json: %v", err)
	}
	return scene
}

func TestConsumer_SurfaceMap(t *testing.T) {
	fs := mocks.NewFileSystem()
	c := newConsumer(fs, webpRenderer())

	c.ApplySurfaceMap(texture(800, 600))

	if data, ok := fs.GetFile(filepath.Join(outDir, "surface.webp")); !ok || string(data) != "webp" {
		t.Errorf("expected surface.webp to be written, got %q", data)
	}
	scene := readScene(t, fs)
	if scene.Surface == nil {
		t.Fatal("expected surface info")
	}
	if scene.Surface.Width != 800 || scene.Surface.Height != 600 || scene.Surface.Tiling.RepeatX != 6 {
		t.Errorf("unexpected surface info: %+v", scene.Surface)
	}
}

func TestConsumer_RemovesSurfaceMap(t *testing.T) {
	fs := mocks.NewFileSystem()
	c := newConsumer(fs, webpRenderer())

	c.ApplySurfaceMap(texture(8, 8))
	c.ApplySurfaceMap(nil)

	if _, ok := fs.GetFile(filepath.Join(outDir, "surface.webp")); ok {
		t.Error("expected surface.webp to be removed")
	}
	if readScene(t, fs).Surface != nil {
		t.Error("expected no surface in scene")
	}
	if err := c.Err(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConsumer_SceneFields(t *testing.T) {
	fs := mocks.NewFileSystem()
	c := newConsumer(fs, webpRenderer())

	c.SetViewportBackground("#ffffff")
	c.ApplyMaterialParameters(policy.Resolve(policy.MaterialKraft))
	c.ApplyCoreMap(texture(512, 512))

	scene := readScene(t, fs)
	if scene.Background != "#ffffff" {
		t.Errorf("expected background, got %q", scene.Background)
	}
	if scene.Material.ID != policy.MaterialKraft {
		t.Errorf("expected kraft material, got %q", scene.Material.ID)
	}
	if scene.Core == nil || scene.Core.File != "core.webp" {
		t.Errorf("expected core info, got %+v", scene.Core)
	}
	if c.Scene().Background != "#ffffff" {
		t.Error("expected Scene to reflect state")
	}
}

func TestConsumer_EncodeErrorRemembered(t *testing.T) {
	fs := mocks.NewFileSystem()
	boom := errors.New("boom")
	c := newConsumer(fs, &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, boom
		},
	})

	c.ApplySurfaceMap(texture(4, 4))
	c.ApplyCoreMap(texture(4, 4))

	if !errors.Is(c.Err(), boom) {
		t.Errorf("expected encode error, got %v", c.Err())
	}
}

func TestConsumer_CoreMaps(t *testing.T) {
	fs := mocks.NewFileSystem()
	c := newConsumer(fs, webpRenderer())

	c.ApplyCoreMap(texture(800, 600))
	c.ApplyCoreInnerMap(texture(512, 512))

	for _, name := range []string{"core.webp", "core-inner.webp"} {
		if _, ok := fs.GetFile(filepath.Join(outDir, name)); !ok {
			t.Errorf("expected %s to be written", name)
		}
	}
	scene := readScene(t, fs)
	if scene.Core == nil || scene.Core.Width != 800 || scene.CoreInner == nil || scene.CoreInner.File != "core-inner.webp" {
		t.Errorf("unexpected core entries: %+v / %+v", scene.Core, scene.CoreInner)
	}

	c.ApplyCoreInnerMap(nil)
	if _, ok := fs.GetFile(filepath.Join(outDir, "core-inner.webp")); ok {
		t.Error("expected core-inner.webp to be removed")
	}
}
