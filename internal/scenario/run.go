package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/chance"
	"github.com/alexanderramin/focussim/internal/config"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/engine"
	"github.com/alexanderramin/focussim/internal/gaze"
	"github.com/alexanderramin/focussim/internal/port"
	"github.com/alexanderramin/focussim/internal/scheduler"
	"github.com/alexanderramin/focussim/internal/service"
)

// Epoch is the virtual start time of every run.
var Epoch = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

type Options struct {
	Config   config.Config
	Renderer port.Renderer
	Logger   *slog.Logger
	// History archives the summary when set.
	History   app.HistoryUseCase
	Observers []service.UseCaseObserver
}

// Stats counts what the run asked the renderer to do.
type Stats struct {
	Effects  int
	Sounds   int
	Messages int
	Cues     int
	Tasks    int
}

type Result struct {
	Summary *app.SessionSummary
	Final   app.Snapshot
	Stats   Stats
}

// scriptedGaze answers LookAway from the most recent look_away action.
type scriptedGaze struct {
	angle *float64
}

func (g *scriptedGaze) LookAway() *gaze.Sample {
	if g.angle == nil {
		return &gaze.Sample{AngleDeg: 0}
	}
	return &gaze.Sample{AngleDeg: *g.angle}
}

// countingRenderer tallies commands before handing them on.
type countingRenderer struct {
	next  port.Renderer
	stats *Stats
}

func (c countingRenderer) SpawnEffect(cmd port.SpawnEffect) error {
	c.stats.Effects++
	return c.next.SpawnEffect(cmd)
}

func (c countingRenderer) ClearEffects(cmd port.ClearEffects) error { return c.next.ClearEffects(cmd) }

func (c countingRenderer) PlaySound(cmd port.PlaySound) error {
	c.stats.Sounds++
	return c.next.PlaySound(cmd)
}

func (c countingRenderer) RequestUIRefresh() error { return c.next.RequestUIRefresh() }

func (c countingRenderer) EmitCue(cmd port.EmitCue) error {
	c.stats.Cues++
	return c.next.EmitCue(cmd)
}

func (c countingRenderer) ShowMessage(cmd port.ShowMessage) error {
	c.stats.Messages++
	return c.next.ShowMessage(cmd)
}

func (c countingRenderer) TaskAdded(cmd port.TaskAdded) error {
	c.stats.Tasks++
	return c.next.TaskAdded(cmd)
}

func (c countingRenderer) AmbientStart(cmd port.AmbientStart) error { return c.next.AmbientStart(cmd) }

func (c countingRenderer) AmbientStop() error { return c.next.AmbientStop() }

func (c countingRenderer) DimScene(cmd port.DimScene) error { return c.next.DimScene(cmd) }

// Run plays the script to its end and stops the session.
func Run(ctx context.Context, s *Script, opts Options) (*Result, error) {
	if s.env == "" {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	cfg := opts.Config
	cfg.Environment = s.env
	cfg.Level = domain.Level(s.Level)
	cfg.Seed = s.Seed

	next := opts.Renderer
	if next == nil {
		next = port.NopRenderer{}
	}
	res := &Result{}
	q := scheduler.NewQueue(Epoch)
	g := &scriptedGaze{}
	sim := engine.New(engine.Options{
		Config:   cfg,
		Queue:    q,
		Rand:     chance.New(s.Seed),
		Gaze:     g,
		Renderer: countingRenderer{next: next, stats: &res.Stats},
		Logger:   opts.Logger,
	})
	svc := service.NewSimulationService(sim, service.InlineExecutor{}, opts.History, "scenario", opts.Observers...)

	if err := svc.Start(ctx, cfg.Level); err != nil {
		return nil, err
	}
	var lookBackAt time.Time
	for i, a := range s.Actions {
		at := Epoch.Add(a.At)
		if !lookBackAt.IsZero() && !lookBackAt.After(at) {
			q.AdvanceTo(lookBackAt)
			g.angle = nil
			lookBackAt = time.Time{}
		}
		q.AdvanceTo(at)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		summary, err := apply(ctx, svc, g, a)
		if err != nil {
			return nil, fmt.Errorf("action %d (%s at %s): %w", i, a.Do, a.At, err)
		}
		if summary != nil {
			res.Summary = summary
		}
		if a.Do == VerbLookAway && a.For > 0 {
			lookBackAt = at.Add(a.For)
		}
	}
	if !lookBackAt.IsZero() && lookBackAt.Before(Epoch.Add(s.Duration)) {
		q.AdvanceTo(lookBackAt)
		g.angle = nil
	}
	q.AdvanceTo(Epoch.Add(s.Duration))

	final, err := svc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	res.Final = *final

	summary, err := svc.Stop(ctx)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		res.Summary = summary
	}
	return res, nil
}

// apply runs one action. set_level 0 ends the session and returns its
// summary.
func apply(ctx context.Context, svc service.SimulationService, g *scriptedGaze, a Action) (*app.SessionSummary, error) {
	switch a.Do {
	case VerbGaveIn:
		return nil, svc.GaveIn(ctx, app.GaveInMeta{Label: a.Label, Type: a.Type, Severity: a.Severity})
	case VerbRefocus:
		return nil, svc.Refocus(ctx)
	case VerbLookAway:
		angle := a.Angle
		if angle <= 0 {
			angle = 45
		}
		g.angle = &angle
	case VerbLookBack:
		g.angle = nil
	case VerbSetLevel:
		return svc.SetLevel(ctx, domain.Level(*a.Level))
	case VerbAddTask:
		_, err := svc.AddTask(ctx, a.Text)
		return nil, err
	case VerbCompleteTask:
		return nil, svc.CompleteTask(ctx, a.Index)
	case VerbRemoveTask:
		return nil, svc.RemoveTask(ctx, a.Index)
	case VerbPause:
		return nil, svc.Pause(ctx)
	case VerbResume:
		return nil, svc.Resume(ctx)
	}
	return nil, nil
}
