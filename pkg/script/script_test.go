package script

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/tapestudio/pkg/adapters/logger"
	"github.com/user/tapestudio/pkg/mocks"
	"github.com/user/tapestudio/pkg/orchestrator"
	"github.com/user/tapestudio/pkg/ports"
)

// recordingTarget records intents and fails those listed in fail.
type recordingTarget struct {
	calls   []string
	uploads []ports.ByteSource
	fail    map[string]error
}

func (r *recordingTarget) do(call string) error {
	r.calls = append(r.calls, call)
	return r.fail[call]
}

func (r *recordingTarget) SelectProductType(id string) error { return r.do("type:" + id) }
func (r *recordingTarget) SelectMaterial(id string) error    { return r.do("material:" + id) }
func (r *recordingTarget) SelectProduct(id string) error     { return r.do("product:" + id) }
func (r *recordingTarget) SetCustomText(text string) error   { return r.do("text:" + text) }
func (r *recordingTarget) SetBackground(hex string) error    { return r.do("background:" + hex) }

func (r *recordingTarget) UploadImage(ctx context.Context, src ports.ByteSource) <-chan orchestrator.UploadOutcome {
	r.uploads = append(r.uploads, src)
	out := make(chan orchestrator.UploadOutcome, 1)
	out <- orchestrator.UploadOutcome{Token: uint64(len(r.uploads)), Applied: true, Err: r.do("upload:" + src.Name)}
	close(out)
	return out
}

const sessionYAML = `
name: eco session
steps:
  - product_type: eco
  - upload: art/logo.png
  - background: "#ffffff"
  - product_type: printed
  - text: ACME
  - material: kraft
    expect_error: true
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(sessionYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sc.Name != "eco session" || len(sc.Steps) != 6 {
		t.Fatalf("unexpected script: %+v", sc)
	}

	action, arg, err := sc.Steps[4].Action()
	if err != nil || action != ActionText || arg != "ACME" {
		t.Errorf("unexpected text step: %s %q %v", action, arg, err)
	}
	if !sc.Steps[5].ExpectError {
		t.Error("expected expect_error on last step")
	}
}

func TestParse_EmptyText(t *testing.T) {
	sc, err := Parse([]byte("steps:\n  - text: \"\"\n"))
	if err != nil {
		t.Fatalf("an explicit empty text is a valid action: %v", err)
	}
	if action, arg, _ := sc.Steps[0].Action(); action != ActionText || arg != "" {
		t.Errorf("unexpected step: %s %q", action, arg)
	}
}

func TestParse_InvalidSteps(t *testing.T) {
	for name, yaml := range map[string]string{
		"no action":   "steps:\n  - expect_error: true\n",
		"two actions": "steps:\n  - material: kraft\n    background: \"#fff\"\n",
		"bad yaml":    "steps: [",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(yaml)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fs := mocks.NewFileSystem()
	path := filepath.Join("sessions", "eco.yaml")
	if err := fs.WriteFile(path, []byte("steps:\n  - product_type: eco\n")); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(fs, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sc.BaseDir != "sessions" || sc.Name != "eco.yaml" {
		t.Errorf("unexpected base dir/name: %q %q", sc.BaseDir, sc.Name)
	}

	if _, err := Load(fs, "missing.yaml"); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestRunner_Run(t *testing.T) {
	fs := mocks.NewFileSystem()
	if err := fs.WriteFile(filepath.Join("sessions", "art", "logo.png"), []byte("png")); err != nil {
		t.Fatal(err)
	}
	sc, err := Parse([]byte(sessionYAML))
	if err != nil {
		t.Fatal(err)
	}
	sc.BaseDir = "sessions"

	target := &recordingTarget{fail: map[string]error{"material:kraft": errors.New("not allowed")}}
	runner := NewRunner(target, fs, logger.NewNoop())
	var seen int
	runner.OnStep = func(StepResult) { seen++ }

	results, err := runner.Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{"type:eco", "upload:logo.png", "background:#ffffff", "type:printed", "text:ACME", "material:kraft"}
	if len(target.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, target.calls)
	}
	for i := range want {
		if target.calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], target.calls[i])
		}
	}
	if string(target.uploads[0].Data) != "png" {
		t.Error("expected upload bytes read relative to the script")
	}
	if len(results) != 6 || seen != 6 {
		t.Errorf("expected 6 results, got %d (callbacks %d)", len(results), seen)
	}
	if !results[5].Passed || results[5].Err != nil {
		t.Errorf("expected failure to satisfy expect_error, got %+v", results[5])
	}
}

func TestRunner_StopsAtFirstFailure(t *testing.T) {
	sc, err := Parse([]byte("steps:\n  - material: kraft\n  - background: \"#fff\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("not allowed")
	target := &recordingTarget{fail: map[string]error{"material:kraft": boom}}

	results, err := NewRunner(target, mocks.NewFileSystem(), logger.NewNoop()).Run(context.Background(), sc)

	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Index != 1 || !errors.Is(err, boom) {
		t.Fatalf("expected StepError for step 1, got %v", err)
	}
	if len(results) != 1 || len(target.calls) != 1 {
		t.Errorf("expected the run to stop, got %d results and calls %v", len(results), target.calls)
	}
}

func TestRunner_ContinueOnError(t *testing.T) {
	sc, err := Parse([]byte("continue_on_error: true\nsteps:\n  - upload: missing.png\n  - text: ok\n    expect_error: true\n  - background: \"#fff\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	target := &recordingTarget{}

	results, err := NewRunner(target, mocks.NewFileSystem(), logger.NewNoop()).Run(context.Background(), sc)

	if err == nil {
		t.Fatal("expected the first failure to be reported")
	}
	if len(results) != 3 {
		t.Fatalf("expected all steps to run, got %d", len(results))
	}
	if results[0].Passed {
		t.Error("missing upload file should fail")
	}
	if !errors.Is(results[1].Err, ErrUnexpectedSuccess) {
		t.Errorf("expected ErrUnexpectedSuccess, got %v", results[1].Err)
	}
	if !results[2].Passed {
		t.Error("expected background step to pass")
	}
}

func TestRunner_Cancelled(t *testing.T) {
	sc, err := Parse([]byte("steps:\n  - product_type: eco\n"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewRunner(&recordingTarget{}, mocks.NewFileSystem(), logger.NewNoop()).Run(ctx, sc)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
