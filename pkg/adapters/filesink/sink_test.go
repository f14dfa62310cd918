package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/tapestudio/pkg/mocks"
	"github.com/user/tapestudio/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func pngRenderer() *mocks.Renderer {
	return &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			if format != ports.FormatPNG {
				return nil, errors.New("unexpected format")
			}
			return []byte("png"), nil
		},
	}
}

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveImages(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, pngRenderer())
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

	tests := []struct {
		name string
		save func() error
		path string
	}{
		{"procedural", func() error { return sink.SaveProcedural("kraft", img) }, filepath.Join(testBaseDir, "procedural", "kraft.png")},
		{"upload", func() error { return sink.SaveUpload(3, img) }, filepath.Join(testBaseDir, "uploads", "upload-0003.png")},
		{"composite", func() error { return sink.SaveComposite(12, img) }, filepath.Join(testBaseDir, "surfaces", "surface-0012.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.save(); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			saved, ok := fs.GetFile(tt.path)
			if !ok {
				t.Fatalf("expected file at %s", tt.path)
			}
			if string(saved) != "png" {
				t.Errorf("expected encoded data, got %q", saved)
			}
		})
	}
}

func TestSink_SaveStateJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	data := []byte(`{"source":"kraft"}`)
	if err := sink.SaveStateJSON(7, data); err != nil {
		t.Fatalf("SaveStateJSON failed: %v", err)
	}

	path := filepath.Join(testBaseDir, "states", "state-0007.json")
	saved, ok := fs.GetFile(path)
	if !ok {
		t.Fatalf("expected file at %s", path)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_EncodeError(t *testing.T) {
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

	if err := sink.SaveComposite(1, image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected encode error")
	}
}
