// Package pipeline holds the generic stage contract shared by the texture
// synthesizer, the compositor and the card renderer, plus their inputs and
// results.
package pipeline

import "context"

// Stage turns one input into one result. Implementations must honor ctx
// cancellation between units of work.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc lets a plain function stand in for a Stage.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute calls f.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
