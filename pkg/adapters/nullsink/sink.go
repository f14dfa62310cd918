// Package nullsink is the DebugSink used when --debug is off.
package nullsink

import (
	"image"

	"github.com/user/tapestudio/pkg/ports"
)

// Sink drops everything it is given.
type Sink struct{}

func New() *Sink { return &Sink{} }

func (*Sink) Enabled() bool                            { return false }
func (*Sink) SaveProcedural(string, image.Image) error { return nil }
func (*Sink) SaveUpload(uint64, image.Image) error     { return nil }
func (*Sink) SaveComposite(int, image.Image) error     { return nil }
func (*Sink) SaveStateJSON(int, []byte) error          { return nil }

var _ ports.DebugSink = (*Sink)(nil)
