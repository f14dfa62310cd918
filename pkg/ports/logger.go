// Package ports declares the boundaries between the configurator core and
// the outside world: decoding, rendering, storage, debug output and logging.
package ports

import "strings"

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug covers per-component details such as cache hits and generation timings.
	LevelDebug LogLevel = iota
	// LevelInfo covers user-visible configurator transitions.
	LevelInfo
	// LevelWarn covers recoverable problems like an undecodable upload.
	LevelWarn
	// LevelError covers failures that abort a command.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

var levelNames = [...]string{"debug", "info", "warn", "error", "quiet"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a string into a LogLevel. Unknown values map to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger is the printf-style logger every component receives. Messages are
// lexicon keys translated before formatting, so call sites pass the English
// format string and its arguments.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	// WithComponent tags subsequent messages with a component name such as
	// "orchestrator" or "synth".
	WithComponent(component string) Logger
}
