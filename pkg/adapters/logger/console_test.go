package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/user/tapestudio/pkg/ports"
)

func TestConsoleLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriter(ports.LevelInfo, &out, &errOut, false)

	l.Debug("hidden %d", 1)
	l.Info("Material: %s", "kraft")
	l.Warn("careful")
	l.Error("broken %s", "upload")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug should be filtered at info level")
	}
	if !strings.Contains(out.String(), "kraft") {
		t.Errorf("expected info on out, got %q", out.String())
	}
	if got := errOut.String(); !strings.Contains(got, "careful") || !strings.Contains(got, "broken upload") {
		t.Errorf("expected warn and error on errOut, got %q", got)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriter(ports.LevelQuiet, &out, &errOut, false)

	l.Error("nothing")
	if out.Len() != 0 || errOut.Len() != 0 {
		t.Error("quiet level should suppress everything")
	}
}

func TestConsoleLogger_Component(t *testing.T) {
	var out bytes.Buffer
	l := NewWriter(ports.LevelDebug, &out, &out, false).WithComponent("synth")

	l.Debug("Generated %s texture: %dx%d", "kraft", 2048, 2048)
	if !strings.HasPrefix(out.String(), "[synth] ") {
		t.Errorf("expected component prefix, got %q", out.String())
	}
}

func TestConsoleLogger_Color(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriter(ports.LevelDebug, &out, &errOut, true)

	l.Warn("careful")
	if !strings.HasPrefix(errOut.String(), colorYellow) {
		t.Errorf("expected yellow warning, got %q", errOut.String())
	}
}

func TestConsoleLogger_ConcurrentLines(t *testing.T) {
	var out bytes.Buffer
	root := NewWriter(ports.LevelInfo, &out, &out, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(l ports.Logger) {
			defer wg.Done()
			l.Info("line")
		}(root.WithComponent("upload"))
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line != "[upload] line" {
			t.Errorf("unexpected line %q", line)
		}
	}
}
