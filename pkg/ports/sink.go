package ports

import "image"

// DebugSink receives intermediate rasters and state snapshots while the
// configurator runs. Callers check Enabled before doing any encoding work.
type DebugSink interface {
	Enabled() bool
	// SaveProcedural is called once per generated procedural family or text.
	SaveProcedural(name string, img image.Image) error
	// SaveUpload receives a decoded upload after color reduction.
	SaveUpload(token uint64, img image.Image) error
	// SaveComposite receives the surface map of transition index.
	SaveComposite(index int, img image.Image) error
	SaveStateJSON(index int, data []byte) error
}
