package scheduler

import (
	"context"
	"errors"
	"time"
)

// ErrRunnerStopped is returned by Do once Run has exited.
var ErrRunnerStopped = errors.New("runner stopped")

// DefaultResolution is how often the runner advances the virtual queue.
const DefaultResolution = 50 * time.Millisecond

// Runner drives a Queue from wall time on a single goroutine. Every timer
// callback and every command passed to Do runs on that goroutine, so the
// state they touch needs no locking.
type Runner struct {
	queue      *Queue
	wall       Clock
	resolution time.Duration
	cmds       chan command
	done       chan struct{}
}

type command struct {
	fn   func()
	done chan struct{}
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithResolution sets the wall-clock polling period.
func WithResolution(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.resolution = d
		}
	}
}

// WithWallClock replaces the wall clock used to measure elapsed time.
func WithWallClock(c Clock) RunnerOption {
	return func(r *Runner) {
		if c != nil {
			r.wall = c
		}
	}
}

func NewRunner(q *Queue, opts ...RunnerOption) *Runner {
	r := &Runner{
		queue:      q,
		wall:       SystemClock{},
		resolution: DefaultResolution,
		cmds:       make(chan command),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run blocks until ctx is cancelled, advancing the queue by elapsed wall
// time and executing submitted commands in arrival order.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)

	anchorWall := r.wall.Now()
	anchorVirtual := r.queue.Now()
	catchUp := func() {
		r.queue.AdvanceTo(anchorVirtual.Add(r.wall.Now().Sub(anchorWall)))
	}

	ticker := time.NewTicker(r.resolution)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			catchUp()
		case cmd := <-r.cmds:
			catchUp()
			cmd.fn()
			close(cmd.done)
		}
	}
}

// Do runs fn on the runner goroutine and waits for it to finish.
func (r *Runner) Do(ctx context.Context, fn func()) error {
	cmd := command{fn: fn, done: make(chan struct{})}
	select {
	case r.cmds <- cmd:
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-cmd.done:
		return nil
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} { return r.done }
