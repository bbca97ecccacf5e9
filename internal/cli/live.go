package cli

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/chance"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/engine"
	"github.com/alexanderramin/focussim/internal/scheduler"
	"github.com/alexanderramin/focussim/internal/service"
)

// liveSession is a simulation advanced by wall time on its own runner
// goroutine.
type liveSession struct {
	svc  service.SimulationService
	feed *feedRenderer
	gaze *toggleGaze

	cancel context.CancelFunc
	runner *scheduler.Runner
}

type liveOptions struct {
	env     domain.Environment
	seed    int64
	archive bool
}

// startLive builds a simulation for opts.env and starts the runner that
// owns it. Close must be called to release the goroutine.
func (a *App) startLive(ctx context.Context, opts liveOptions) *liveSession {
	cfg := a.Config
	cfg.Environment = opts.env
	if opts.seed == 0 {
		opts.seed = a.now().UnixNano()
	}
	cfg.Seed = opts.seed

	q := scheduler.NewQueue(a.now())
	feed := newFeedRenderer()
	g := &toggleGaze{}
	sim := engine.New(engine.Options{
		Config:   cfg,
		Queue:    q,
		Rand:     chance.New(opts.seed),
		Gaze:     g,
		Renderer: feed,
		Logger:   a.logger(),
	})

	var history app.HistoryUseCase
	if opts.archive && a.History != nil {
		history = a.History
	}

	runCtx, cancel := context.WithCancel(ctx)
	runner := scheduler.NewRunner(q)
	go func() {
		if err := runner.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger().Error("runner_stopped", "error", err.Error())
		}
	}()

	return &liveSession{
		svc:    service.NewSimulationService(sim, runner, history, "interactive", a.Observers...),
		feed:   feed,
		gaze:   g,
		cancel: cancel,
		runner: runner,
	}
}

// Close stops the runner and waits for it to exit.
func (s *liveSession) Close() {
	s.cancel()
	select {
	case <-s.runner.Done():
	case <-time.After(time.Second):
	}
}
