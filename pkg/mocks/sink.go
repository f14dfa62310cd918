package mocks

import (
	"image"
	"sync"

	"github.com/user/tapestudio/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Procedural map[string]image.Image
	Uploads    map[uint64]image.Image
	Composites map[int]image.Image
	States     map[int][]byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		Procedural: make(map[string]image.Image),
		Uploads:    make(map[uint64]image.Image),
		Composites: make(map[int]image.Image),
		States:     make(map[int][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveProcedural(name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Procedural[name] = img
	return nil
}

func (m *DebugSink) SaveUpload(token uint64, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Uploads[token] = img
	return nil
}

func (m *DebugSink) SaveComposite(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Composites[index] = img
	return nil
}

func (m *DebugSink) SaveStateJSON(index int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.States[index] = data
	return nil
}

// State returns the state JSON saved for index.
func (m *DebugSink) State(index int) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.States[index]
	return data, ok
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                                  { return false }
func (m *NullSink) SaveProcedural(name string, img image.Image) error { return nil }
func (m *NullSink) SaveUpload(token uint64, img image.Image) error    { return nil }
func (m *NullSink) SaveComposite(index int, img image.Image) error    { return nil }
func (m *NullSink) SaveStateJSON(index int, data []byte) error        { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
