package ports

// FileSystem is the storage used for render outputs, debug dumps, scripts
// and uploaded images. Paths are host paths.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces path with data. Readers never observe a partial file.
	WriteFile(path string, data []byte) error
	MkdirAll(path string) error
	// Exists reports false with a nil error when path is missing.
	Exists(path string) (bool, error)
	Remove(path string) error
}
