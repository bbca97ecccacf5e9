package service

import (
	"context"

	"github.com/alexanderramin/focussim/internal/app"
)

type SimulationService interface {
	app.SimulationUseCase
	// Events returns the events recorded in the running session.
	Events(ctx context.Context) ([]app.SessionEvent, error)
}

type HistoryService interface {
	app.HistoryUseCase
}

// Executor runs fn on the goroutine that owns the simulation.
// *scheduler.Runner is the production implementation.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

// InlineExecutor runs fn on the calling goroutine. It suits tests and
// scripted runs that advance the clock themselves.
type InlineExecutor struct{}

func (InlineExecutor) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}
