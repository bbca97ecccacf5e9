package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/chance"
	"github.com/alexanderramin/focussim/internal/config"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/engine"
	"github.com/alexanderramin/focussim/internal/scheduler"
	"github.com/alexanderramin/focussim/internal/service"
	"github.com/alexanderramin/focussim/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with access to the live session behind
// the model. The simulation runs inline on a virtual queue, so time only
// moves when a test calls Advance.
type TestDriver struct {
	*teatest.Driver
	Queue *scheduler.Queue
	Svc   service.SimulationService
	Feed  *feedRenderer
	Gaze  *toggleGaze
}

// NewTestDriver starts a session in env at level and drains the model's
// Init. The frame period is long enough that frame ticks never fire on
// their own.
func NewTestDriver(t *testing.T, env domain.Environment, level domain.Level) *TestDriver {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Environment = env
	q := scheduler.NewQueue(cliNow)
	feed := newFeedRenderer()
	g := &toggleGaze{}
	sim := engine.New(engine.Options{
		Config:   cfg,
		Queue:    q,
		Rand:     chance.New(7),
		Gaze:     g,
		Renderer: feed,
	})
	svc := service.NewSimulationService(sim, service.InlineExecutor{}, nil, "interactive")
	require.NoError(t, svc.Start(context.Background(), level))

	m := newSessionModel(svc, feed, g, time.Hour)
	d := teatest.New(t, m,
		teatest.WithSize(110, 48),
		teatest.WithClock(func(dt time.Duration) { q.Advance(dt) }),
	)
	d.DrainInit()

	return &TestDriver{Driver: d, Queue: q, Svc: svc, Feed: feed, Gaze: g}
}

func (d *TestDriver) model() sessionModel {
	return d.Model.(sessionModel)
}

// Snap returns the snapshot the model last loaded.
func (d *TestDriver) Snap() app.Snapshot {
	d.T.Helper()
	s := d.model().snap
	require.NotNil(d.T, s, "model has no snapshot yet")
	return *s
}

// Step advances simulated time and lets the model poll.
func (d *TestDriver) Step(dt time.Duration) {
	d.T.Helper()
	d.Advance(dt, frameMsg(d.Queue.Now()))
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
