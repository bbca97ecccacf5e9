package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/engine"
)

type simulationService struct {
	sim      *engine.Simulation
	exec     Executor
	history  app.HistoryUseCase
	source   string
	observer UseCaseObserver
}

// NewSimulationService serializes every call onto exec. When history is
// set, summaries of stopped sessions are archived with the given source
// label before they are returned.
func NewSimulationService(
	sim *engine.Simulation,
	exec Executor,
	history app.HistoryUseCase,
	source string,
	observers ...UseCaseObserver,
) SimulationService {
	if exec == nil {
		exec = InlineExecutor{}
	}
	return &simulationService{
		sim:      sim,
		exec:     exec,
		history:  history,
		source:   source,
		observer: useCaseObserverOrNoop(observers),
	}
}

func validLevel(level domain.Level) error {
	if level < domain.LevelOff || level > domain.LevelHigh {
		return fmt.Errorf("%w: %d", domain.ErrInvalidLevel, int(level))
	}
	return nil
}

func (s *simulationService) Start(ctx context.Context, level domain.Level) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"env": string(s.sim.Environment()), "level": level.String()}
	defer func() { observe(ctx, s.observer, "start-session", startedAt, fields, err) }()

	if err = validLevel(level); err != nil {
		return err
	}
	return s.exec.Do(ctx, func() { s.sim.Start(level) })
}

func (s *simulationService) Stop(ctx context.Context) (summary *app.SessionSummary, err error) {
	startedAt := time.Now()
	fields := map[string]any{"env": string(s.sim.Environment())}
	defer func() { observe(ctx, s.observer, "stop-session", startedAt, fields, err) }()

	if err = s.exec.Do(ctx, func() { summary = s.sim.Stop() }); err != nil {
		return nil, err
	}
	if summary != nil {
		fields["duration_min"] = summary.DurationMin
		fields["give_ins"] = summary.GiveIns
		fields["refocuses"] = summary.Refocuses
		if err = s.archive(ctx, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (s *simulationService) archive(ctx context.Context, summary *app.SessionSummary) error {
	if s.history == nil {
		return nil
	}
	if summary.Source == "" {
		summary.Source = s.source
	}
	if err := s.history.Save(ctx, summary); err != nil {
		return fmt.Errorf("archiving session: %w", err)
	}
	return nil
}

func (s *simulationService) Pause(ctx context.Context) error {
	return s.exec.Do(ctx, s.sim.Pause)
}

func (s *simulationService) Resume(ctx context.Context) error {
	return s.exec.Do(ctx, s.sim.Resume)
}

func (s *simulationService) SetLevel(ctx context.Context, level domain.Level) (summary *app.SessionSummary, err error) {
	startedAt := time.Now()
	fields := map[string]any{"level": level.String()}
	defer func() { observe(ctx, s.observer, "set-level", startedAt, fields, err) }()

	if err = validLevel(level); err != nil {
		return nil, err
	}
	if err = s.exec.Do(ctx, func() { summary = s.sim.SetLevel(level) }); err != nil {
		return nil, err
	}
	if summary != nil {
		if err = s.archive(ctx, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (s *simulationService) GaveIn(ctx context.Context, meta app.GaveInMeta) error {
	return s.exec.Do(ctx, func() { s.sim.GaveIn(meta) })
}

func (s *simulationService) Refocus(ctx context.Context) error {
	return s.exec.Do(ctx, s.sim.Refocus)
}

func (s *simulationService) AddTask(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, domain.ErrEmptyTask
	}
	var (
		idx int
		ok  bool
	)
	if err := s.exec.Do(ctx, func() { idx, ok = s.sim.AddTask(text) }); err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrEmptyTask
	}
	return idx, nil
}

func (s *simulationService) CompleteTask(ctx context.Context, index int) error {
	var ok bool
	if err := s.exec.Do(ctx, func() { ok = s.sim.CompleteTask(index) }); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("task %d: %w", index, domain.ErrTaskIndex)
	}
	return nil
}

func (s *simulationService) RemoveTask(ctx context.Context, index int) error {
	var ok bool
	if err := s.exec.Do(ctx, func() { ok = s.sim.RemoveTask(index) }); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("task %d: %w", index, domain.ErrTaskIndex)
	}
	return nil
}

func (s *simulationService) Snapshot(ctx context.Context) (*app.Snapshot, error) {
	var snap app.Snapshot
	if err := s.exec.Do(ctx, func() { snap = s.sim.Snapshot() }); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *simulationService) Events(ctx context.Context) ([]app.SessionEvent, error) {
	var events []app.SessionEvent
	if err := s.exec.Do(ctx, func() { events = s.sim.Events() }); err != nil {
		return nil, err
	}
	return events, nil
}
