// Package engine owns one simulation session: the task-state machine, the
// periodic tick, the give-in and refocus handlers and the session
// lifecycle. A Simulation is not safe for concurrent use; every call and
// every timer callback must run on the goroutine that advances its queue.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/focussim/internal/app"
	"github.com/alexanderramin/focussim/internal/chance"
	"github.com/alexanderramin/focussim/internal/config"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/gaze"
	"github.com/alexanderramin/focussim/internal/habituation"
	"github.com/alexanderramin/focussim/internal/ledger"
	"github.com/alexanderramin/focussim/internal/port"
	"github.com/alexanderramin/focussim/internal/scheduler"
	"github.com/alexanderramin/focussim/internal/stimulus"
	"github.com/alexanderramin/focussim/internal/tasks"
)

// GazeSource supplies the look-away sample once per tick. A nil sample
// means no focus target is in view.
type GazeSource interface {
	LookAway() *gaze.Sample
}

// GazeFunc adapts a function to GazeSource.
type GazeFunc func() *gaze.Sample

func (f GazeFunc) LookAway() *gaze.Sample { return f() }

const (
	colorGuilt   = "#ff4444"
	colorDrift   = "#f59e0b"
	colorSuccess = "#22c55e"
)

// Options wires a Simulation. Queue is required; everything else has a
// usable default.
type Options struct {
	Config   config.Config
	Queue    *scheduler.Queue
	Rand     chance.Source
	Gaze     GazeSource
	Renderer port.Renderer
	Logger   *slog.Logger
}

type sessionMeta struct {
	startedAt   time.Time
	initialDone int
}

// Simulation is the state of one environment's session.
type Simulation struct {
	env    domain.Environment
	cfg    config.Config
	q      *scheduler.Queue
	rnd    chance.Source
	gaze   GazeSource
	logger *slog.Logger

	out      *port.Outbox
	dispatch *port.Dispatcher
	tasks    *tasks.List
	ledger   *ledger.Ledger
	eval     *gaze.Evaluator
	habit    *habituation.Tracker
	stim     *stimulus.Scheduler

	active bool
	paused bool
	level  domain.Level

	state              domain.TaskState
	stateUntil         time.Time
	hyperfocusUntil    time.Time
	reentryUntil       time.Time
	shieldUntil        time.Time
	hardLockUntil      time.Time
	focusModeUntil     time.Time
	timeBlindnessUntil time.Time
	timeBlindnessMsg   string
	lastHyperfocusAt   time.Time
	lastTimeBlindAt    time.Time

	message      string
	messageUntil time.Time

	tickTimer  scheduler.TimerID
	stimTimers []scheduler.TimerID

	session sessionMeta
	events  []app.SessionEvent
}

// New builds an inert simulation for cfg.Environment. Call Start to run it.
func New(opts Options) *Simulation {
	cfg := opts.Config
	q := opts.Queue
	if q == nil {
		q = scheduler.NewQueue(time.Now())
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = chance.New(time.Now().UnixNano())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Tick <= 0 {
		cfg.Tick = config.DefaultConfig().Tick
	}
	if cfg.Environment == "" {
		cfg.Environment = domain.EnvDesk
	}
	env := cfg.Environment

	s := &Simulation{
		env:      env,
		cfg:      cfg,
		q:        q,
		rnd:      rnd,
		gaze:     opts.Gaze,
		logger:   logger,
		out:      &port.Outbox{},
		dispatch: port.NewDispatcher(opts.Renderer, logger),
		tasks:    tasks.NewList(tasks.Template(env)),
		ledger:   ledger.New(),
		eval:     gaze.NewEvaluator(gaze.DefaultParams(env)),
		habit:    habituation.NewTracker(q),
		level:    domain.ClampLevel(int(cfg.Level)),
		state:    domain.StateIdle,
	}
	s.stim = stimulus.New(stimulus.Deps{
		Env:    env,
		Config: cfg,
		State:  s,
		Timers: flushingTimers{q: q, flush: s.flush},
		Rand:   rnd,
		Habit:  s.habit,
		Tasks:  s.tasks,
		Out:    s.out,
	})
	return s
}

// flushingTimers delivers whatever a delayed stimulus callback emitted as
// soon as it ran.
type flushingTimers struct {
	q     *scheduler.Queue
	flush func()
}

func (t flushingTimers) Now() time.Time { return t.q.Now() }

func (t flushingTimers) After(d time.Duration, fn func()) scheduler.TimerID {
	return t.q.After(d, func() {
		fn()
		t.flush()
	})
}

func (t flushingTimers) Cancel(id scheduler.TimerID) bool { return t.q.Cancel(id) }

func (s *Simulation) now() time.Time { return s.q.Now() }

func (s *Simulation) flush() {
	if s.out.Len() == 0 {
		return
	}
	s.dispatch.Dispatch(s.out.Drain())
}

// Environment is fixed for the lifetime of the simulation.
func (s *Simulation) Environment() domain.Environment { return s.env }

// Level implements stimulus.State.
func (s *Simulation) Level() domain.Level { return s.level }

// Running is true while the session is active, unpaused and level > 0.
func (s *Simulation) Running() bool {
	return s.active && !s.paused && s.level > domain.LevelOff
}

func (s *Simulation) TaskState() domain.TaskState { return s.state }

func (s *Simulation) windowActive(until time.Time) bool {
	return s.Running() && s.now().Before(until)
}

func (s *Simulation) HyperfocusActive() bool { return s.windowActive(s.hyperfocusUntil) }
func (s *Simulation) ReentryActive() bool    { return s.windowActive(s.reentryUntil) }
func (s *Simulation) ShieldActive() bool     { return s.windowActive(s.shieldUntil) }
func (s *Simulation) HardLockActive() bool   { return s.windowActive(s.hardLockUntil) }
func (s *Simulation) FocusModeActive() bool  { return s.windowActive(s.focusModeUntil) }

// DispatchFailures counts renderer calls that failed or panicked.
func (s *Simulation) DispatchFailures() int { return s.dispatch.Failures() }

// PendingTimers reports how many timers the simulation's queue holds.
func (s *Simulation) PendingTimers() int { return s.q.Pending() }

// Start begins a session at level after silently stopping any running
// one. Level 0 leaves the simulation off.
func (s *Simulation) Start(level domain.Level) {
	level = domain.ClampLevel(int(level))
	s.stop(true)
	s.level = level
	if level == domain.LevelOff {
		s.out.Emit(port.RequestUIRefresh{})
		s.flush()
		return
	}

	now := s.now()
	s.active = true
	s.paused = false
	s.tasks.Reset(tasks.Template(s.env))
	s.ledger.Reset()
	s.eval.Reset()
	s.stim.Reset()
	s.events = nil
	s.session = sessionMeta{startedAt: now, initialDone: s.doneCount()}
	s.setState(domain.StateIdle, 0)

	s.tickTimer = s.q.Every(s.cfg.Tick, s.Tick)
	s.scheduleStimuli()
	s.stim.StartAmbient()

	s.logger.Debug("session_started", "env", string(s.env), "level", s.level.String())
	s.out.Emit(port.RequestUIRefresh{})
	s.flush()
}

func (s *Simulation) scheduleStimuli() {
	iv := s.cfg.Intervals(s.level)
	s.stim.Configure(iv)
	s.stimTimers = []scheduler.TimerID{
		s.q.Every(iv.Visual, s.fire(s.stim.FireVisual)),
		s.q.Every(iv.Audio, s.fire(s.stim.FireAudio)),
		s.q.Every(iv.Notification, s.fire(s.stim.FireNotification)),
	}
}

func (s *Simulation) cancelStimuli() {
	for _, id := range s.stimTimers {
		s.q.Cancel(id)
	}
	s.stimTimers = nil
}

func (s *Simulation) fire(fn func()) func() {
	return func() {
		fn()
		s.flush()
	}
}

// Stop ends the session. It returns a summary only when an active session
// was actually stopped; a second Stop is a no-op that returns nil.
func (s *Simulation) Stop() *app.SessionSummary {
	return s.stop(false)
}

func (s *Simulation) stop(silent bool) *app.SessionSummary {
	var summary *app.SessionSummary
	if !silent && s.active && s.level > domain.LevelOff && !s.session.startedAt.IsZero() {
		summary = s.buildSummary()
		s.session.startedAt = time.Time{}
	}
	wasActive := s.active

	s.active = false
	s.paused = false
	s.q.Cancel(s.tickTimer)
	s.tickTimer = 0
	s.cancelStimuli()
	s.stim.StopAmbient()
	s.stim.Reset()
	s.resetTransient()
	s.shieldUntil = time.Time{}
	s.hardLockUntil = time.Time{}
	s.focusModeUntil = time.Time{}
	s.lastHyperfocusAt = time.Time{}
	s.lastTimeBlindAt = time.Time{}
	s.message = ""
	s.messageUntil = time.Time{}

	if wasActive {
		s.logger.Debug("session_stopped", "env", string(s.env), "silent", silent)
	}
	s.out.Emit(port.RequestUIRefresh{})
	s.flush()
	return summary
}

// resetTransient returns the state machine to idle and closes the windows
// that must never survive an inactive tick.
func (s *Simulation) resetTransient() {
	s.state = domain.StateIdle
	s.stateUntil = time.Time{}
	s.hyperfocusUntil = time.Time{}
	s.reentryUntil = time.Time{}
	s.timeBlindnessUntil = time.Time{}
	s.timeBlindnessMsg = ""
	s.eval.Reset()
}

// Pause freezes the session and silences the ambient loop. Stimulus timers
// keep their cadence but do nothing until Resume.
func (s *Simulation) Pause() {
	if !s.active || s.paused {
		return
	}
	s.paused = true
	s.stim.ClearEffects()
	s.stim.StopAmbient()
	s.out.Emit(port.RequestUIRefresh{})
	s.flush()
}

func (s *Simulation) Resume() {
	if !s.active || !s.paused {
		return
	}
	s.paused = false
	s.stim.StartAmbient()
	s.out.Emit(port.RequestUIRefresh{})
	s.flush()
}

// SetLevel changes the distraction level of a running session and
// re-derives the stimulus intervals. Level 0 ends the session and returns
// its summary. On an inactive simulation it only records the level.
func (s *Simulation) SetLevel(level domain.Level) *app.SessionSummary {
	level = domain.ClampLevel(int(level))
	if !s.active {
		s.level = level
		return nil
	}
	if level == domain.LevelOff {
		summary := s.stop(false)
		s.level = level
		return summary
	}
	if level == s.level {
		return nil
	}
	prev := s.level
	s.level = level
	s.cancelStimuli()
	s.scheduleStimuli()
	s.record(app.EventLevelChanged, fmt.Sprintf("%s -> %s", prev.Label(), level.Label()))
	s.out.Emit(port.RequestUIRefresh{})
	s.flush()
	return nil
}

func (s *Simulation) setState(state domain.TaskState, d time.Duration) {
	s.state = state
	if d > 0 {
		s.stateUntil = s.now().Add(d)
	} else {
		s.stateUntil = time.Time{}
	}
}

func (s *Simulation) jitter(maxMs int) time.Duration {
	return time.Duration(chance.Jitter(s.rnd, float64(maxMs)) * float64(time.Millisecond))
}

func (s *Simulation) msJitter(base, maxMs int) time.Duration {
	return ms(base) + s.jitter(maxMs)
}

func (s *Simulation) say(text string, tone port.Tone, d time.Duration) {
	s.message = text
	s.messageUntil = s.now().Add(d)
	s.out.Emit(port.ShowMessage{Text: text, Tone: tone, Duration: d})
}

func (s *Simulation) record(kind app.EventKind, detail string) {
	s.events = append(s.events, app.SessionEvent{
		At:     s.now(),
		Kind:   kind,
		Detail: detail,
		Stress: s.ledger.Stress(),
	})
}

// Tick advances the task-state machine by one step. It runs from the tick
// timer; tests may call it directly.
func (s *Simulation) Tick() {
	defer s.flush()
	now := s.now()
	if !s.Running() {
		s.resetTransient()
		s.out.Emit(port.RequestUIRefresh{})
		return
	}
	lvl := s.level.Index()

	if s.state == domain.StateIdle {
		s.setState(domain.StateProcrastinating, s.msJitter(initiationMin, initiationMax-initiationMin))
		s.eval.Idle(now)
		s.out.Emit(port.RequestUIRefresh{})
		return
	}

	if !s.stateUntil.IsZero() && !now.Before(s.stateUntil) {
		switch s.state {
		case domain.StateProcrastinating:
			s.reentryUntil = now.Add(s.msJitter(reentryAfterProcrastination[lvl], reentryAfterProcrastJitter))
			s.setState(domain.StateWorking, 0)
			s.stim.Nudge(domain.ReasonReentry)
		case domain.StateHyperfocus:
			s.hyperfocusUntil = time.Time{}
			s.setState(domain.StateProcrastinating, s.msJitter(crashMin, crashJitter))
		}
	}

	if s.state == domain.StateWorking {
		if chance.Roll(s.rnd, interruptChance[lvl]) {
			s.interrupt(now, lvl)
			s.out.Emit(port.RequestUIRefresh{})
			return
		}
		s.maybeHyperfocus(now, lvl)
	}

	s.evaluateGaze(now)
	s.drift(lvl)
	activeDone := s.accrue(lvl)
	s.maybeTimeBlindness(now, lvl)
	if activeDone {
		s.completeActive()
	}
	s.out.Emit(port.RequestUIRefresh{})
}

func (s *Simulation) interrupt(now time.Time, lvl int) {
	s.reentryUntil = now.Add(s.msJitter(reentryAfterInterrupt[lvl], reentryInterruptJit))
	s.ledger.AddStress(0.06 + 0.03*float64(lvl))
	s.setState(domain.StateProcrastinating, s.msJitter(interruptMin, interruptJitter))
	s.stim.Nudge(domain.ReasonInterrupt)
	s.record(app.EventInterrupt, "")
}

func (s *Simulation) maybeHyperfocus(now time.Time, lvl int) {
	if !s.lastHyperfocusAt.IsZero() && now.Sub(s.lastHyperfocusAt) <= hyperfocusCooldown {
		return
	}
	p := hyperfocusChance[lvl]
	if boost, ok := s.ledger.BoostAt(now); ok {
		p = math.Min(hyperfocusMaxBoost, p+boost)
	}
	if !chance.Roll(s.rnd, p) {
		return
	}
	d := s.msJitter(hyperfocusMin, hyperfocusJitter)
	s.enterHyperfocus(now, d)
}

func (s *Simulation) enterHyperfocus(now time.Time, d time.Duration) {
	s.lastHyperfocusAt = now
	s.hyperfocusUntil = now.Add(d)
	s.setState(domain.StateHyperfocus, d)
	s.record(app.EventHyperfocus, d.Round(time.Second).String())
}

// accrue applies one tick of progress and reports whether the active task
// reached full progress without being marked completed yet.
func (s *Simulation) accrue(lvl int) bool {
	stressFactor := math.Max(0.45, 1-0.45*s.ledger.Stress())
	penalty := levelPenalty[lvl]

	if bg := backgroundRate(s.state); bg > 0 {
		for _, i := range s.tasks.AccrueBackground(func(t domain.Task) float64 {
			return bg * penalty * t.Kind.KindBonus() * stressFactor
		}) {
			s.record(app.EventTaskCompleted, s.tasks.At(i).Text)
		}
	}

	t := s.tasks.Active()
	if t == nil || t.Completed {
		return false
	}
	if s.state.InFocusWork() {
		base := baseProgress
		if s.state == domain.StateHyperfocus {
			base = hyperfocusProgress
		}
		reentry := 1.0
		if s.state == domain.StateWorking && s.ReentryActive() {
			reentry = reentryProgress
		}
		inc := base * penalty * t.Kind.KindBonus() * reentry * stressFactor
		t.Progress = math.Min(1, t.Progress+inc)
	}
	return t.Progress >= 1
}

func (s *Simulation) completeActive() {
	t := s.tasks.Active()
	t.Progress = 1
	t.Completed = true
	s.record(app.EventTaskCompleted, t.Text)
	s.stim.Play(domain.SoundCelebrate)
	s.say("✓ Task erledigt!", port.ToneSuccess, 2*time.Second)
	s.tasks.AdvanceToNextIncomplete()
	s.setState(domain.StateProcrastinating, s.msJitter(relaxMin, relaxJitter))
}

func (s *Simulation) evaluateGaze(now time.Time) {
	if !s.state.InFocusWork() {
		s.eval.Idle(now)
		return
	}
	var sample *gaze.Sample
	if s.gaze != nil {
		sample = s.gaze.LookAway()
	}
	out := s.eval.Observe(now, sample, s.level)
	if out.EnteredPenalty {
		s.stim.Tint(colorDrift, 650*time.Millisecond)
		target := s.cfg.FocusTarget(s.env)
		if out.Target != nil {
			target = *out.Target
		}
		s.stim.Cue(port.CueGaze, target, 900*time.Millisecond)
	}
	if out.Message {
		s.say("Blick weg von Aufgabe → Stress +", port.ToneWarn, 1200*time.Millisecond)
	}
	if out.StressDelta > 0 {
		s.ledger.AddStress(out.StressDelta)
	}
	if out.Returned {
		s.say("Zurück im Fokus ✓", port.ToneSuccess, 900*time.Millisecond)
		s.stim.Tint(colorSuccess, 450*time.Millisecond)
		s.ledger.AddStress(-0.010)
	}
}

func (s *Simulation) drift(lvl int) {
	switch s.state {
	case domain.StateProcrastinating:
		s.ledger.AddStress(0.0025 + 0.0015*float64(lvl))
	case domain.StateWorking:
		s.ledger.AddStress(-0.002)
	case domain.StateHyperfocus:
		s.ledger.AddStress(-0.003)
	}
}

func (s *Simulation) maybeTimeBlindness(now time.Time, lvl int) {
	if !s.state.InFocusWork() {
		return
	}
	if !s.lastTimeBlindAt.IsZero() && now.Sub(s.lastTimeBlindAt) <= timeBlindCooldown {
		return
	}
	p := 0.007
	if s.state == domain.StateHyperfocus {
		p = 0.016
	}
	if !chance.Roll(s.rnd, p*timeBlindBias[lvl]) {
		return
	}
	s.lastTimeBlindAt = now
	lost := 5 + chance.Intn(s.rnd, 21)
	s.timeBlindnessMsg = fmt.Sprintf("Zeitblindheit: +%d Min", lost)
	s.timeBlindnessUntil = now.Add(timeBlindShown)
	s.ledger.AddStress(timeBlindStress)
	s.say(s.timeBlindnessMsg, port.ToneWarn, timeBlindShown)
	s.record(app.EventTimeBlindness, s.timeBlindnessMsg)
}

// GaveIn records that the user yielded to a distraction.
func (s *Simulation) GaveIn(meta app.GaveInMeta) {
	if !s.Running() {
		return
	}
	defer s.flush()
	now := s.now()
	lvl := float64(s.level.Index())
	sev := meta.SeverityOrDefault()
	label := domain.CoalesceStr(meta.Label, meta.Type, app.DefaultGiveInLabel)

	mult := s.ledger.GiveIn(now)
	s.ledger.AddStress((0.025 + 0.015*lvl) * domain.Clamp(sev, 0.5, 1.6) * mult)

	wasted := int(math.Floor(2 + 3*lvl + 2*sev))
	s.ledger.AddWasted(wasted)

	s.stim.Tint(colorGuilt, 2500*time.Millisecond)

	if s.state == domain.StateHyperfocus {
		s.hyperfocusUntil = time.Time{}
	}
	if s.state.InFocusWork() {
		d := ms(1800) + s.jitter(2200) + time.Duration(700*sev*float64(time.Millisecond))
		s.setState(domain.StateProcrastinating, d)
	}

	if t := s.tasks.Active(); t != nil {
		t.Setback((0.025 + 0.02*lvl) * (0.8 + 0.7*sev) * mult)
	}

	if s.ledger.Stress() > pileUpStress && chance.Roll(s.rnd, pileUpChance) {
		pile := chance.Pick(s.rnd, tasks.PileUp)
		if text, ok := s.tasks.InjectUnique(pile.Text, pile.Kind); ok {
			s.out.Emit(port.TaskAdded{Text: text, Kind: pile.Kind, Source: "pile-up"})
			s.record(app.EventPileUp, text)
		}
	}

	s.ledger.BreakStreak()

	spiral := ""
	if mult > 1.5 {
		spiral = " (Stress-Spirale!)"
	}
	msg := fmt.Sprintf("%s - %d Min. verloren%s", label, wasted, spiral)
	s.say(msg, port.ToneDanger, 3500*time.Millisecond)
	s.record(app.EventGaveIn, msg)
	s.out.Emit(port.RequestUIRefresh{})
}

// Refocus records a deliberate return to the task.
func (s *Simulation) Refocus() {
	if !s.Running() {
		return
	}
	defer s.flush()
	now := s.now()
	lvl := s.level.Index()
	prevStreak := s.ledger.Streak()
	caught := s.state == domain.StateProcrastinating

	s.shieldUntil = now.Add(s.msJitter(shieldBase[lvl], shieldJitter[lvl]))
	s.hardLockUntil = now.Add(s.msJitter(hardLockBase[lvl], hardLockJitter[lvl]))

	s.stim.ClearEffects()
	s.stim.FocusTunnel(ms(5000 + prevStreak*1000))
	s.stim.Tint(colorSuccess, 700*time.Millisecond)

	s.ledger.AddStress(-(0.15 + 0.05*float64(prevStreak)/5))

	s.reentryUntil = now.Add(s.msJitter(refocusReentry[lvl], refocusReentryJ))
	s.setState(domain.StateWorking, 0)
	s.focusModeUntil = now.Add(ms(focusModeLength[lvl]))
	s.ledger.ResetSpiral()

	if i, ok := s.tasks.FirstIncomplete(domain.KindDeepwork); ok {
		s.tasks.SetActive(i)
	}

	streak := s.ledger.Refocus(now, caught)
	if caught {
		if t := s.tasks.Active(); t != nil && !t.Completed {
			bonus := (refocusBonusBase + chance.Jitter(s.rnd, refocusBonusJit)) *
				refocusScale[lvl] * (1 + float64(streak-1)*0.15)
			t.Progress = math.Min(1, t.Progress+bonus)
		}
		s.ledger.ArmBoost(now)
		if streak >= streakHyperfocusMin && chance.Roll(s.rnd, streakHyperfocusP) {
			s.enterHyperfocus(now, s.msJitter(8000, 6000))
		}
	}

	msg := "FOCUS MODE: Zurück zur Aufgabe"
	if st := s.ledger.Streak(); st > 1 {
		msg = fmt.Sprintf("%s (%dx)", msg, st)
	}
	s.say(msg, port.ToneSuccess, 2600*time.Millisecond)

	target := s.cfg.FocusTarget(s.env)
	s.stim.Cue(port.CueGaze, target, 1350*time.Millisecond)
	s.stim.Spotlight(target, 1600*time.Millisecond)
	s.stim.Nudge(domain.ReasonRefocus)

	detail := ""
	if caught {
		detail = fmt.Sprintf("streak %d", streak)
	}
	s.record(app.EventRefocus, detail)
	s.out.Emit(port.RequestUIRefresh{})
}

// AddTask appends a user task of kind misc and returns its index. Blank
// text is ignored.
func (s *Simulation) AddTask(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	i := s.tasks.Add(text, domain.KindMisc)
	s.out.Emit(port.RequestUIRefresh{})
	s.flush()
	return i, true
}

// CompleteTask toggles the completion of task i. Completing the active
// task moves the marker on to the next open one.
func (s *Simulation) CompleteTask(i int) bool {
	completed, ok := s.tasks.Toggle(i)
	if !ok {
		return false
	}
	if completed && i == s.tasks.ActiveIndex() {
		s.tasks.AdvanceToNextIncomplete()
	}
	s.stim.Play(domain.SoundTaskToggle)
	s.out.Emit(port.RequestUIRefresh{})
	s.flush()
	return true
}

// RemoveTask deletes task i.
func (s *Simulation) RemoveTask(i int) bool {
	if !s.tasks.Remove(i) {
		return false
	}
	s.out.Emit(port.RequestUIRefresh{})
	s.flush()
	return true
}

func (s *Simulation) doneCount() int {
	n := 0
	for _, t := range s.tasks.All() {
		if t.Progress >= 1 {
			n++
		}
	}
	return n
}

// Events returns the events recorded since Start.
func (s *Simulation) Events() []app.SessionEvent {
	return append([]app.SessionEvent(nil), s.events...)
}

func (s *Simulation) buildSummary() *app.SessionSummary {
	now := s.now()
	m := s.ledger.Metrics(now)
	done := s.doneCount()
	dur := max(0, now.Sub(s.session.startedAt))
	return &app.SessionSummary{
		Environment:          s.env,
		EnvironmentLabel:     s.env.Label(),
		Level:                s.level,
		LevelLabel:           s.level.Label(),
		StartedAt:            s.session.startedAt,
		EndedAt:              now,
		DurationMin:          int(math.Round(dur.Minutes())),
		WastedMin:            m.WastedMinutes,
		TasksDoneThisSession: max(0, done-s.session.initialDone),
		TasksDoneTotal:       done,
		TasksTotal:           s.tasks.Len(),
		Refocuses:            m.Refocuses,
		GiveIns:              m.GiveIns,
		RefocusStreak:        m.Streak,
		StressNowPct:         int(math.Round(m.Stress * 100)),
		StressPeakPct:        int(math.Round(m.StressPeak * 100)),
		Seed:                 s.cfg.Seed,
		Events:               s.Events(),
	}
}

// Snapshot copies the session state for display.
func (s *Simulation) Snapshot() app.Snapshot {
	now := s.now()
	m := s.ledger.Metrics(now)
	snap := app.Snapshot{
		Now:         now,
		Environment: s.env,
		Level:       s.level,
		Active:      s.active,
		Paused:      s.paused,
		TaskState:   s.state,
		Windows: app.Windows{
			StateUntil:         s.stateUntil,
			HyperfocusUntil:    s.hyperfocusUntil,
			ReentryUntil:       s.reentryUntil,
			ShieldUntil:        s.shieldUntil,
			HardLockUntil:      s.hardLockUntil,
			FocusModeUntil:     s.focusModeUntil,
			TimeBlindnessUntil: s.timeBlindnessUntil,
		},
		HyperfocusActive: s.HyperfocusActive(),
		ReentryActive:    s.ReentryActive(),
		ShieldActive:     s.ShieldActive(),
		HardLockActive:   s.HardLockActive(),
		FocusModeActive:  s.FocusModeActive(),
		Stress:           m.Stress,
		StressPeak:       m.StressPeak,
		StressBand:       string(ledger.Band(m.Stress)),
		Multiplier:       m.Multiplier,
		SpiralCount:      m.SpiralCount,
		Streak:           m.Streak,
		Boost:            m.Boost,
		WastedMinutes:    m.WastedMinutes,
		GiveIns:          m.GiveIns,
		Refocuses:        m.Refocuses,
		LookingAway:      s.eval.LookingAway(),
		AwayFor:          s.eval.AwayFor(),
		ActiveIndex:      s.tasks.ActiveIndex(),
	}
	for i, t := range s.tasks.All() {
		snap.Tasks = append(snap.Tasks, app.TaskView{
			Index:     i,
			Text:      t.Text,
			Kind:      t.Kind,
			Progress:  t.Progress,
			Completed: t.Completed,
			Active:    i == s.tasks.ActiveIndex(),
		})
	}
	if now.Before(s.messageUntil) {
		snap.Message = s.message
	}
	if now.Before(s.timeBlindnessUntil) {
		snap.TimeBlindness = s.timeBlindnessMsg
	}
	return snap
}
