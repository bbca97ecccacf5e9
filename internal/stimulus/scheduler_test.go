package stimulus

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/focussim/internal/chance"
	"github.com/alexanderramin/focussim/internal/config"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/habituation"
	"github.com/alexanderramin/focussim/internal/port"
	"github.com/alexanderramin/focussim/internal/scheduler"
	"github.com/alexanderramin/focussim/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type fakeState struct {
	level      domain.Level
	running    bool
	task       domain.TaskState
	reentry    bool
	hyperfocus bool
	shield     bool
	hardLock   bool
}

func (f *fakeState) Level() domain.Level         { return f.level }
func (f *fakeState) Running() bool               { return f.running }
func (f *fakeState) TaskState() domain.TaskState { return f.task }
func (f *fakeState) ReentryActive() bool         { return f.reentry }
func (f *fakeState) HyperfocusActive() bool      { return f.hyperfocus }
func (f *fakeState) ShieldActive() bool          { return f.shield }
func (f *fakeState) HardLockActive() bool        { return f.hardLock }

type fixture struct {
	s     *Scheduler
	state *fakeState
	q     *scheduler.Queue
	out   *port.Outbox
	list  *tasks.List
	habit *habituation.Tracker
}

func newFixture(env domain.Environment, level domain.Level, src chance.Source) *fixture {
	cfg := config.DefaultConfig()
	cfg.Environment = env
	cfg.Level = level
	q := scheduler.NewQueue(t0)
	state := &fakeState{level: level, running: true, task: domain.StateWorking}
	f := &fixture{
		state: state,
		q:     q,
		out:   &port.Outbox{},
		list:  tasks.NewList(tasks.Template(env)),
		habit: habituation.NewTracker(q),
	}
	f.s = New(Deps{
		Env:    env,
		Config: cfg,
		State:  state,
		Timers: q,
		Rand:   src,
		Habit:  f.habit,
		Tasks:  f.list,
		Out:    f.out,
	})
	return f
}

func spawns(cmds []port.Command) []port.SpawnEffect {
	var out []port.SpawnEffect
	for _, c := range cmds {
		if s, ok := c.(port.SpawnEffect); ok {
			out = append(out, s)
		}
	}
	return out
}

func soundsOf(cmds []port.Command) []port.PlaySound {
	var out []port.PlaySound
	for _, c := range cmds {
		if s, ok := c.(port.PlaySound); ok {
			out = append(out, s)
		}
	}
	return out
}

func TestFire_NotRunningEmitsNothing(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelHigh, chance.Fixed(0))
	f.state.running = false

	f.s.FireVisual()
	f.s.FireAudio()
	f.s.FireNotification()
	f.s.Nudge(domain.ReasonReentry)
	assert.Zero(t, f.out.Len())
}

func TestFire_HardLockSkipsEverything(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelHigh, chance.Fixed(0.99))
	f.state.hardLock = true

	f.s.FireVisual()
	f.s.FireAudio()
	f.s.FireNotification()
	assert.Zero(t, f.out.Len())
}

func TestSuppressed_Gates(t *testing.T) {
	cases := []struct {
		name       string
		level      domain.Level
		roll       float64
		hyperfocus bool
		shield     bool
		ch         channel
		want       bool
	}{
		{"hyperfocus L1 below threshold", domain.LevelLow, 0.54, true, false, visualChannel, true},
		{"hyperfocus L1 above threshold", domain.LevelLow, 0.56, true, false, visualChannel, false},
		{"hyperfocus L3", domain.LevelHigh, 0.69, true, false, audioChannel, true},
		{"shield visual L1", domain.LevelLow, 0.87, false, true, visualChannel, true},
		{"shield visual L3 passes", domain.LevelHigh, 0.79, false, true, visualChannel, false},
		{"shield audio L3", domain.LevelHigh, 0.79, false, true, audioChannel, true},
		{"shield notification L2", domain.LevelMedium, 0.85, false, true, notificationChannel, false},
		{"no windows", domain.LevelHigh, 0, false, false, visualChannel, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(domain.EnvHoersaal, tc.level, chance.Fixed(tc.roll))
			f.state.hyperfocus = tc.hyperfocus
			f.state.shield = tc.shield
			assert.Equal(t, tc.want, f.s.suppressed(tc.ch))
		})
	}
}

func TestFireVisual_HabituationRerolls(t *testing.T) {
	f := newFixture(domain.EnvHoersaal, domain.LevelLow, chance.NewSequence(0, 0.9, 0.5))
	for range 3 {
		f.habit.Note(HabitVisual, string(domain.VisualFlashingLight))
	}

	f.s.FireVisual()
	got := spawns(f.out.Drain())
	require.Len(t, got, 1)
	assert.Equal(t, domain.VisualThoughtBubble, got[0].Kind)
	assert.InDelta(t, 1/(1+habituation.Steepness), f.habit.Factor(HabitVisual, string(domain.VisualThoughtBubble)), 1e-9)
}

func TestFireVisual_BurstFollowsAtLevelThree(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelHigh, chance.Fixed(0))

	f.s.FireVisual()
	first := spawns(f.out.Drain())
	require.Len(t, first, 1)
	assert.Equal(t, domain.VisualMonitorMicro, first[0].Kind)
	assert.Equal(t, 2, f.s.PendingFollowUps(), "burst plus delayed look cue")

	f.q.Advance(400 * time.Millisecond)
	var burst []port.SpawnEffect
	for _, s := range spawns(f.out.Drain()) {
		if s.Reason == domain.ReasonBurst {
			burst = append(burst, s)
		}
	}
	require.Len(t, burst, 1)
	assert.Equal(t, domain.VisualMonitorMicro, burst[0].Kind)
}

func TestFireVisual_BurstRechecksShield(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelHigh, chance.Fixed(0))
	f.s.FireVisual()
	f.out.Drain()

	f.state.shield = true
	f.q.Advance(400 * time.Millisecond)
	for _, s := range spawns(f.out.Drain()) {
		assert.NotEqual(t, domain.ReasonBurst, s.Reason)
	}
}

func TestFireVisual_NoBurstAtLevelOne(t *testing.T) {
	f := newFixture(domain.EnvSupermarkt, domain.LevelLow, chance.Fixed(0))
	f.s.FireVisual()
	assert.Zero(t, f.s.PendingFollowUps())
}

func TestClearEffects_CancelsLifetimesAndFollowUps(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelHigh, chance.Fixed(0))
	f.s.FireVisual()
	require.NotZero(t, f.s.ActiveEffects())

	f.s.ClearEffects()
	cmds := f.out.Drain()
	require.NotEmpty(t, cmds)
	assert.Equal(t, port.ClearEffects{}, cmds[len(cmds)-1])
	assert.Zero(t, f.s.ActiveEffects())
	assert.Zero(t, f.s.PendingFollowUps())

	f.q.Advance(5 * time.Second)
	assert.Zero(t, f.out.Len(), "nothing scheduled survives a clear")
}

func TestEffects_ExpireAfterLifetime(t *testing.T) {
	f := newFixture(domain.EnvHoersaal, domain.LevelLow, chance.Fixed(0))
	f.s.thoughtBubble()
	require.Equal(t, 1, f.s.ActiveEffects())

	f.q.Advance(2000 * time.Millisecond)
	assert.Equal(t, 1, f.s.ActiveEffects())
	f.q.Advance(400 * time.Millisecond)
	assert.Zero(t, f.s.ActiveEffects())
}

func TestThoughtBubbles_Capped(t *testing.T) {
	f := newFixture(domain.EnvHoersaal, domain.LevelHigh, chance.Fixed(0))
	for range maxThoughtBubbles + 2 {
		f.s.thoughtBubble()
	}
	assert.Equal(t, maxThoughtBubbles, f.s.countKind(domain.VisualThoughtBubble))
}

func TestMonitorMicro_OneCardPerMonitor(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelMedium, chance.Fixed(0))

	f.s.MonitorMicro(domain.ReasonNone)
	first := spawns(f.out.Drain())
	require.Len(t, first, 1)

	f.s.MonitorMicro(domain.ReasonNone)
	cmds := f.out.Drain()
	assert.Contains(t, cmds, port.ClearEffects{IDs: []port.EffectID{first[0].ID}})
	assert.Equal(t, 1, f.s.countKind(domain.VisualMonitorMicro))
}

func TestMonitorMicro_DeskOnly(t *testing.T) {
	f := newFixture(domain.EnvSupermarkt, domain.LevelMedium, chance.Fixed(0))
	f.s.MonitorMicro(domain.ReasonNone)
	assert.Zero(t, f.out.Len())
}

func TestMonitorMicro_RefocusIsSilent(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelMedium, chance.Fixed(0))
	f.s.MonitorMicro(domain.ReasonRefocus)
	cmds := f.out.Drain()
	require.Len(t, cmds, 1)
	spawn := cmds[0].(port.SpawnEffect)
	assert.Equal(t, domain.ReasonRefocus, spawn.Reason)
	assert.Equal(t, 1350*time.Millisecond, spawn.Lifetime)
}

func TestNudge_RoutesByEnvironment(t *testing.T) {
	desk := newFixture(domain.EnvDesk, domain.LevelMedium, chance.Fixed(0))
	desk.s.Nudge(domain.ReasonReentry)
	got := spawns(desk.out.Drain())
	require.Len(t, got, 1)
	assert.Equal(t, domain.VisualMonitorMicro, got[0].Kind)

	hall := newFixture(domain.EnvHoersaal, domain.LevelMedium, chance.Fixed(0))
	hall.s.Nudge(domain.ReasonReentry)
	got = spawns(hall.out.Drain())
	require.Len(t, got, 1)
	assert.Equal(t, domain.VisualMonitorNotice, got[0].Kind)
}

func TestMonitorNotification_ForcedReasonBypassesHardLock(t *testing.T) {
	f := newFixture(domain.EnvHoersaal, domain.LevelMedium, chance.Fixed(0))
	f.state.hardLock = true

	f.s.MonitorNotification(domain.ReasonNone)
	assert.Zero(t, f.out.Len())

	f.s.MonitorNotification(domain.ReasonReentry)
	assert.Len(t, spawns(f.out.Drain()), 1)
}

func TestMonitorNotification_DisplayLockAndAntiRepeat(t *testing.T) {
	f := newFixture(domain.EnvHoersaal, domain.LevelMedium, chance.Fixed(0))

	f.s.MonitorNotification(domain.ReasonReentry)
	f.s.MonitorNotification(domain.ReasonReentry)
	first := spawns(f.out.Drain())
	require.Len(t, first, 1, "display lock holds the second notice back")
	assert.Equal(t, "Akku bei 20%", first[0].Content.Text)

	f.q.Advance(2120 * time.Millisecond)
	f.s.MonitorNotification(domain.ReasonReentry)
	second := spawns(f.out.Drain())
	require.Len(t, second, 1)
	assert.Equal(t, "WLAN instabil", second[0].Content.Text, "same text is suppressed for 12s")
}

func TestPhonePopup_RateLimited(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelMedium, chance.Fixed(0))

	require.True(t, f.s.PhonePopup())
	f.q.Advance(5 * time.Second)
	assert.False(t, f.s.PhonePopup(), "0.9 * 11250ms has not passed")
	f.q.Advance(5200 * time.Millisecond)
	assert.True(t, f.s.PhonePopup())
}

func TestPhonePopup_OnlyOneActive(t *testing.T) {
	f := newFixture(domain.EnvSupermarkt, domain.LevelMedium, chance.Fixed(0))
	f.s.cfg.PhonePopupMinSpacing = time.Millisecond
	f.s.Configure(f.s.cfg.Intervals(domain.LevelMedium))

	require.True(t, f.s.PhonePopup())
	f.q.Advance(2 * time.Second)
	assert.False(t, f.s.PhonePopup(), "previous popup still on screen")
	f.q.Advance(2300 * time.Millisecond)
	assert.True(t, f.s.PhonePopup())
}

func TestPhonePopup_InjectsMappedTaskWithSuffix(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelMedium, chance.Fixed(0))

	require.True(t, f.s.PhonePopup())
	cmds := f.out.Drain()
	popup := spawns(cmds)
	require.Len(t, popup, 1)
	assert.Equal(t, "Steam", popup[0].Content.App)
	assert.Contains(t, cmds, port.TaskAdded{Text: "Spiel-Update installieren", Kind: domain.KindMisc, Source: "notification"})
	assert.Len(t, soundsOf(cmds), 2, "vibration plus notification tone")

	// Anti-repeat moves on to the next realistic message; the task
	// throttle blocks a second injection.
	f.q.Advance(11 * time.Second)
	require.True(t, f.s.PhonePopup())
	popup = spawns(f.out.Drain())
	require.Len(t, popup, 1)
	assert.Equal(t, "Slack", popup[0].Content.App)
	assert.Equal(t, 4, f.list.Len())

	f.q.Advance(31 * time.Second)
	require.True(t, f.s.PhonePopup())
	assert.True(t, f.list.Contains("Spiel-Update installieren (2)"))
}

func TestFireAudio_SpatialVolume(t *testing.T) {
	f := newFixture(domain.EnvSupermarkt, domain.LevelLow, chance.Fixed(0))
	f.state.task = domain.StateProcrastinating

	f.s.FireAudio()
	got := soundsOf(f.out.Drain())
	require.Len(t, got, 1)
	assert.Equal(t, domain.SoundAnnouncement, got[0].Sound)
	assert.Equal(t, "supermarket-17823.mp3", got[0].File)
	assert.InDelta(t, 0.16, got[0].Volume, 1e-9)
	require.NotNil(t, got[0].Position)
	assert.InDelta(t, -0.2, got[0].Position.X, 1e-9)
	assert.Equal(t, 1.0, f.habit.Count(HabitAudio, string(domain.SoundAnnouncement)))
}

func TestFireAudio_HabituatedSoundIsSkipped(t *testing.T) {
	f := newFixture(domain.EnvSupermarkt, domain.LevelLow, chance.Fixed(0))
	for range 5 {
		f.habit.Note(HabitAudio, string(domain.SoundAnnouncement))
	}
	f.s.FireAudio()
	assert.Zero(t, f.out.Len())
}

func TestFireAudio_CashRegisterRepeats(t *testing.T) {
	spec := Sound(domain.SoundCashRegister)
	assert.Equal(t, 3, spec.Repeat)
	assert.Equal(t, 520*time.Millisecond, spec.RepeatGap)
}

func TestReset_ForgetsHistory(t *testing.T) {
	f := newFixture(domain.EnvDesk, domain.LevelMedium, chance.Fixed(0))
	require.True(t, f.s.PhonePopup())
	f.habit.Note(HabitVisual, "x")

	f.s.Reset()
	assert.Equal(t, 1.0, f.habit.Factor(HabitVisual, "x"))
	assert.True(t, f.s.PhonePopup(), "rate limit forgotten")
}

func TestMicroPool_LevelOneNeverShowsYouTube(t *testing.T) {
	reasons := []domain.Reason{domain.ReasonNone, domain.ReasonReentry, domain.ReasonBurst}
	for _, kind := range []domain.TaskKind{domain.KindDeepwork, domain.KindEmail, domain.KindStudy} {
		for _, r := range reasons {
			for _, reentry := range []bool{false, true} {
				pool := microPool(kind, domain.LevelLow, r, domain.StateWorking, reentry)
				assert.NotContains(t, pool, microYouTube, "kind=%s reason=%s", kind, r)
				assert.NotEmpty(t, pool)
			}
		}
	}
}

func TestMicroPool_ProcrastinationIsTempting(t *testing.T) {
	pool := microPool(domain.KindDeepwork, domain.LevelHigh, domain.ReasonNone, domain.StateProcrastinating, false)
	assert.Contains(t, pool, microSteam)
	assert.Contains(t, pool, microYouTube)
	for _, v := range microByKind[domain.KindDeepwork] {
		assert.NotContains(t, pool, v)
	}
}

func TestVisualBag_DeskStates(t *testing.T) {
	working := visualBag(domain.EnvDesk, domain.StateWorking, false)
	assert.NotContains(t, working, domain.VisualMovingObject)
	assert.Contains(t, working, domain.VisualLargePopup)

	reentry := visualBag(domain.EnvDesk, domain.StateWorking, true)
	assert.NotContains(t, reentry, domain.VisualLargePopup)

	procrastinating := visualBag(domain.EnvDesk, domain.StateProcrastinating, false)
	assert.Len(t, procrastinating, len(visualBags[domain.EnvDesk])+3)

	hall := visualBag(domain.EnvHoersaal, domain.StateProcrastinating, false)
	assert.Equal(t, visualBags[domain.EnvHoersaal], hall)
}

func TestAudioBag_LevelExtras(t *testing.T) {
	assert.Len(t, audioBag(domain.EnvHoersaal, domain.LevelLow, domain.StateIdle, false), 8)
	assert.Len(t, audioBag(domain.EnvHoersaal, domain.LevelHigh, domain.StateIdle, false), 12)

	reentry := audioBag(domain.EnvDesk, domain.LevelHigh, domain.StateWorking, true)
	assert.NotContains(t, reentry, domain.SoundPhoneVibrate)
	assert.NotContains(t, reentry, domain.SoundMouseClick)
}

func TestSchedulerProperty_Invariants(t *testing.T) {
	reasons := []domain.Reason{domain.ReasonNone, domain.ReasonReentry, domain.ReasonInterrupt, domain.ReasonRefocus}
	states := []domain.TaskState{domain.StateProcrastinating, domain.StateWorking, domain.StateHyperfocus}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		env := domain.Environments[rng.Intn(len(domain.Environments))]
		level := domain.Level(1 + rng.Intn(3))
		f := newFixture(env, level, rand.New(rand.NewSource(seed*7)))

		for step := 0; step < 300; step++ {
			f.state.task = states[rng.Intn(len(states))]
			f.state.reentry = rng.Intn(3) == 0
			f.state.hyperfocus = rng.Intn(5) == 0
			f.state.shield = rng.Intn(5) == 0
			f.state.hardLock = rng.Intn(8) == 0

			switch rng.Intn(4) {
			case 0:
				f.s.FireVisual()
			case 1:
				f.s.FireAudio()
			case 2:
				f.s.FireNotification()
			case 3:
				f.s.Nudge(reasons[rng.Intn(len(reasons))])
			}
			f.q.Advance(time.Duration(rng.Intn(3000)) * time.Millisecond)

			require.LessOrEqual(t, f.s.countKind(domain.VisualLargePopup), 1, "seed=%d step=%d", seed, step)
			for _, snd := range soundsOf(f.out.Drain()) {
				require.GreaterOrEqual(t, snd.Volume, 0.0)
				require.LessOrEqual(t, snd.Volume, 1.0)
				require.GreaterOrEqual(t, snd.Pan, -1.0)
				require.LessOrEqual(t, snd.Pan, 1.0)
			}
		}

		seen := map[string]bool{}
		for _, task := range f.list.All() {
			require.False(t, seen[task.Text], "duplicate task %q", task.Text)
			seen[task.Text] = true
		}
	}
}

func dimsOf(cmds []port.Command) []port.DimScene {
	var out []port.DimScene
	for _, c := range cmds {
		if d, ok := c.(port.DimScene); ok {
			out = append(out, d)
		}
	}
	return out
}

func TestVisualSpawners_DimTheScene(t *testing.T) {
	tests := []struct {
		name  string
		env   domain.Environment
		spawn func(*Scheduler)
		want  []time.Duration
	}{
		{"moving object at the desk", domain.EnvDesk, (*Scheduler).movingObject, []time.Duration{700 * time.Millisecond}},
		{"moving object in the lecture hall", domain.EnvHoersaal, (*Scheduler).movingObject, []time.Duration{1500 * time.Millisecond}},
		{"flashing light in the supermarket", domain.EnvSupermarkt, (*Scheduler).flashingLight, []time.Duration{1300 * time.Millisecond}},
		{"desk glare does not dim", domain.EnvDesk, (*Scheduler).flashingLight, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.env, domain.LevelMedium, chance.Fixed(0.3))
			tt.spawn(f.s)

			var got []time.Duration
			for _, d := range dimsOf(f.out.Drain()) {
				assert.InDelta(t, 0.3, d.Factor, 1e-9)
				got = append(got, d.Duration)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmbient_StartStopIsIdempotent(t *testing.T) {
	f := newFixture(domain.EnvHoersaal, domain.LevelMedium, chance.Fixed(0.5))

	f.s.StartAmbient()
	f.s.StartAmbient()
	cmds := f.out.Drain()
	require.Len(t, cmds, 1, "a playing loop is not restarted")
	start, ok := cmds[0].(port.AmbientStart)
	require.True(t, ok)
	assert.Equal(t, "Professor", start.Name)
	assert.Equal(t, domain.EnvHoersaal, start.Env)
	assert.InDelta(t, 1.0, start.Rate, 1e-9)
	require.NotNil(t, start.Position)
	assert.True(t, f.s.AmbientPlaying())

	f.s.StopAmbient()
	f.s.StopAmbient()
	assert.Equal(t, []port.Command{port.AmbientStop{}}, f.out.Drain())
	assert.False(t, f.s.AmbientPlaying())
}

func TestAmbient_PerEnvironment(t *testing.T) {
	tests := []struct {
		env  domain.Environment
		name string
		pan  float64
	}{
		{domain.EnvDesk, "Nachbarschaft", -0.55},
		{domain.EnvHoersaal, "Professor", 0},
		{domain.EnvSupermarkt, "Supermarkt", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.env), func(t *testing.T) {
			f := newFixture(tt.env, domain.LevelLow, chance.Fixed(0.5))
			f.s.StartAmbient()
			cmds := f.out.Drain()
			require.Len(t, cmds, 1)
			start := cmds[0].(port.AmbientStart)
			assert.Equal(t, tt.name, start.Name)
			assert.InDelta(t, tt.pan, start.Pan, 1e-9)
			assert.NotEmpty(t, start.File)
		})
	}
}

func TestMonitorNotification_IgnoresHyperfocus(t *testing.T) {
	f := newFixture(domain.EnvHoersaal, domain.LevelHigh, chance.Fixed(0))
	f.state.hyperfocus = true

	f.s.MonitorNotification(domain.ReasonNone)
	assert.Len(t, spawns(f.out.Drain()), 1)
}

func TestMonitorNotification_ShieldSkipsUnforced(t *testing.T) {
	f := newFixture(domain.EnvHoersaal, domain.LevelMedium, chance.Fixed(0))
	f.state.shield = true

	f.s.MonitorNotification(domain.ReasonNone)
	assert.Zero(t, f.out.Len())

	f.s.MonitorNotification(domain.ReasonReentry)
	assert.Len(t, spawns(f.out.Drain()), 1)
}
