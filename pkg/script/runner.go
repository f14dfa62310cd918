package script

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/user/tapestudio/pkg/orchestrator"
	"github.com/user/tapestudio/pkg/ports"
)

// ErrUnexpectedSuccess is reported for an expect_error step that succeeded.
var ErrUnexpectedSuccess = errors.New("script: step succeeded but an error was expected")

// Target receives the intents of a script.
type Target interface {
	SelectProductType(id string) error
	SelectMaterial(id string) error
	SelectProduct(id string) error
	SetCustomText(text string) error
	SetBackground(hex string) error
	UploadImage(ctx context.Context, src ports.ByteSource) <-chan orchestrator.UploadOutcome
}

// Ensure the orchestrator can be scripted
var _ Target = (*orchestrator.Orchestrator)(nil)

// StepResult is the outcome of one step.
type StepResult struct {
	Index  int // 1-based
	Action Action
	Arg    string
	Err    error // the step error; nil for an expected error
	Passed bool
}

// StepError wraps the error of a failed step.
type StepError struct {
	Index  int
	Action Action
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Action, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Runner executes scripts against a Target.
type Runner struct {
	target Target
	fs     ports.FileSystem
	logger ports.Logger

	// OnStep is called after every step.
	OnStep func(StepResult)
}

// NewRunner creates a runner. fs resolves upload files.
func NewRunner(target Target, fs ports.FileSystem, logger ports.Logger) *Runner {
	return &Runner{
		target: target,
		fs:     fs,
		logger: logger.WithComponent("script"),
	}
}

// Run executes sc. It stops at the first failing step unless
// sc.ContinueOnError is set, and returns the results of the executed steps
// and the first failure.
func (r *Runner) Run(ctx context.Context, sc *Script) ([]StepResult, error) {
	r.logger.Info("Running script %s (%d steps)", sc.Name, len(sc.Steps))

	var (
		results  []StepResult
		firstErr error
	)
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		action, arg, err := step.Action()
		if err == nil {
			err = r.apply(ctx, sc, action, arg)
		}

		res := StepResult{Index: i + 1, Action: action, Arg: arg, Err: err}
		switch {
		case step.ExpectError && err != nil:
			r.logger.Debug("Step %d (%s) failed as expected: %s", res.Index, action, err)
			res.Err, res.Passed = nil, true
		case step.ExpectError:
			res.Err = ErrUnexpectedSuccess
		default:
			res.Passed = err == nil
		}
		results = append(results, res)
		if r.OnStep != nil {
			r.OnStep(res)
		}

		if !res.Passed {
			stepErr := &StepError{Index: res.Index, Action: action, Err: res.Err}
			r.logger.Warn("%s", stepErr)
			if firstErr == nil {
				firstErr = stepErr
			}
			if !sc.ContinueOnError {
				break
			}
		}
	}
	return results, firstErr
}

func (r *Runner) apply(ctx context.Context, sc *Script, action Action, arg string) error {
	r.logger.Debug("Step %s: %s", action, arg)
	switch action {
	case ActionProductType:
		return r.target.SelectProductType(arg)
	case ActionMaterial:
		return r.target.SelectMaterial(arg)
	case ActionProduct:
		return r.target.SelectProduct(arg)
	case ActionText:
		return r.target.SetCustomText(arg)
	case ActionBackground:
		return r.target.SetBackground(arg)
	case ActionUpload:
		return r.upload(ctx, sc, arg)
	default:
		return fmt.Errorf("script: unknown action %q", action)
	}
}

func (r *Runner) upload(ctx context.Context, sc *Script, path string) error {
	if !filepath.IsAbs(path) && sc.BaseDir != "" {
		path = filepath.Join(sc.BaseDir, path)
	}
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	select {
	case out := <-r.target.UploadImage(ctx, ports.ByteSource{Name: filepath.Base(path), Data: data}):
		return out.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}
