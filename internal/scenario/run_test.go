package scenario

import (
	"context"
	"testing"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/config"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/port"
	"github.com/alexanderramin/focussim/internal/repository"
	"github.com/alexanderramin/focussim/internal/service"
	"github.com/alexanderramin/focussim/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Spiral(t *testing.T) {
	s, err := Load("testdata/spiral.yaml")
	require.NoError(t, err)
	rec := &port.Recorder{}

	res, err := Run(context.Background(), s, Options{Config: config.DefaultConfig(), Renderer: rec})
	require.NoError(t, err)
	require.NotNil(t, res.Summary)

	sum := res.Summary
	assert.Equal(t, domain.EnvDesk, sum.Environment)
	assert.Equal(t, domain.LevelHigh, sum.Level)
	assert.Equal(t, 4, sum.DurationMin)
	assert.Equal(t, 3, sum.GiveIns)
	assert.GreaterOrEqual(t, sum.Refocuses, 1)
	assert.Equal(t, int64(42), sum.Seed)
	assert.Equal(t, Epoch, sum.StartedAt)
	assert.GreaterOrEqual(t, len(res.Final.Tasks), 4+countPileUps(sum.Events))

	assert.Equal(t, len(rec.Spawns()), res.Stats.Effects)
	assert.Equal(t, len(rec.Messages()), res.Stats.Messages)
	assert.Positive(t, res.Stats.Messages)

	var spiral bool
	for _, m := range rec.Messages() {
		if m.Tone == port.ToneDanger && m.Text == "Snacks - 13 Min. verloren (Stress-Spirale!)" {
			spiral = true
		}
	}
	assert.True(t, spiral, "third give-in within the window should report the spiral")
}

func countPileUps(events []app.SessionEvent) int {
	n := 0
	for _, e := range events {
		if e.Kind == app.EventPileUp {
			n++
		}
	}
	return n
}

func TestRun_IsDeterministic(t *testing.T) {
	s, err := Load("testdata/spiral.yaml")
	require.NoError(t, err)

	a, err := Run(context.Background(), s, Options{Config: config.DefaultConfig()})
	require.NoError(t, err)
	b, err := Run(context.Background(), s, Options{Config: config.DefaultConfig()})
	require.NoError(t, err)

	assert.Equal(t, a.Stats, b.Stats)
	assert.Equal(t, a.Summary.StressPeakPct, b.Summary.StressPeakPct)
	assert.Equal(t, a.Summary.WastedMin, b.Summary.WastedMin)
	assert.Equal(t, len(a.Summary.Events), len(b.Summary.Events))
}

func TestRun_SetLevelOffEndsEarly(t *testing.T) {
	s, err := Parse([]byte(`
environment: hoersaal
level: 2
seed: 1
duration: 5m
actions:
  - {at: 1m, do: gave_in}
  - {at: 2m, do: set_level, level: 0}
  - {at: 3m, do: gave_in}
`))
	require.NoError(t, err)

	res, err := Run(context.Background(), s, Options{Config: config.DefaultConfig()})
	require.NoError(t, err)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 2, res.Summary.DurationMin)
	assert.Equal(t, 1, res.Summary.GiveIns)
	assert.False(t, res.Final.Active)
}

func TestRun_ArchivesWithScenarioSource(t *testing.T) {
	database := testutil.NewTestDB(t)
	history := service.NewHistoryService(
		repository.NewSQLiteSummaryRepo(database),
		repository.NewSQLiteEventRepo(database),
		testutil.NewTestUoW(database),
	)
	s, err := Parse([]byte("environment: supermarkt\nlevel: 1\nseed: 9\nduration: 90s"))
	require.NoError(t, err)

	res, err := Run(context.Background(), s, Options{Config: config.DefaultConfig(), History: history})
	require.NoError(t, err)

	stored, err := history.Get(context.Background(), res.Summary.ID)
	require.NoError(t, err)
	assert.Equal(t, "scenario", stored.Source)
	assert.Equal(t, domain.EnvSupermarkt, stored.Environment)
}

func TestRun_CancelledContext(t *testing.T) {
	s, err := Parse([]byte("environment: desk\nlevel: 1\nduration: 1m\nactions: [{at: 10s, do: refocus}]"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, s, Options{Config: config.DefaultConfig()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScriptedGaze(t *testing.T) {
	g := &scriptedGaze{}
	assert.Zero(t, g.LookAway().AngleDeg)
	angle := 40.0
	g.angle = &angle
	assert.Equal(t, 40.0, g.LookAway().AngleDeg)
}
