// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/tapestudio/pkg/ports"
)

// Sink saves debug output to files under a base directory:
//
//	procedural/<family>.png
//	uploads/upload-0001.png
//	surfaces/surface-0001.png
//	states/state-0001.json
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveProcedural saves a generated procedural texture.
func (s *Sink) SaveProcedural(name string, img image.Image) error {
	return s.savePNG("procedural", name+".png", img)
}

// SaveUpload saves a normalized uploaded image.
func (s *Sink) SaveUpload(token uint64, img image.Image) error {
	return s.savePNG("uploads", fmt.Sprintf("upload-%04d.png", token), img)
}

// SaveComposite saves the surface map of a transition.
func (s *Sink) SaveComposite(index int, img image.Image) error {
	return s.savePNG("surfaces", fmt.Sprintf("surface-%04d.png", index), img)
}

// SaveStateJSON saves the state snapshot of a transition.
func (s *Sink) SaveStateJSON(index int, data []byte) error {
	dir := filepath.Join(s.baseDir, "states")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, fmt.Sprintf("state-%04d.json", index)), data)
}

func (s *Sink) savePNG(subdir, name string, img image.Image) error {
	dir := filepath.Join(s.baseDir, subdir)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, name), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
