// Package stimulus decides which distractions the simulation emits, when,
// and with what content. It never renders anything: every decision ends
// up as a command in the outbox.
package stimulus

import (
	"math"
	"time"

	"github.com/alexanderramin/focussim/internal/chance"
	"github.com/alexanderramin/focussim/internal/config"
	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/habituation"
	"github.com/alexanderramin/focussim/internal/port"
	"github.com/alexanderramin/focussim/internal/scheduler"
	"github.com/alexanderramin/focussim/internal/tasks"
)

// Habituation kinds.
const (
	HabitVisual = "visual"
	HabitAudio  = "audio"
)

const (
	movingObjectLife   = 4500 * time.Millisecond
	peripheralLife     = 3500 * time.Millisecond
	screenFlickerLife  = 420 * time.Millisecond
	phonePopupLife     = 4200 * time.Millisecond
	monitorNoticeLife  = 2000 * time.Millisecond
	minPhonePopupGap   = 1800 * time.Millisecond
	minPhoneTodoGap    = 9 * time.Second
	minPhoneRepeat     = 8 * time.Second
	minMonitorRepeat   = 3 * time.Second
	gazeCueCooldown    = 650 * time.Millisecond
	popupSpacingFactor = 0.9
)

var (
	hyperfocusSkip     = [4]float64{0, 0.55, 0.62, 0.70}
	shieldSkip         = [4]float64{0, 0.88, 0.84, 0.78}
	shieldSkipAudio    = [4]float64{0, 0.90, 0.86, 0.80}
	burstChance        = [4]float64{0, 0, 0.12, 0.22}
	maxActiveVisuals   = map[domain.Environment]int{domain.EnvDesk: 4}
	defaultMaxVisuals  = 3
	burstDelay         = 180 * time.Millisecond
	burstDelayJitter   = 170 * time.Millisecond
	injectedTaskSource = "notification"
)

// State is the read-only view of the session the scheduler consults.
type State interface {
	Level() domain.Level
	// Running is true while the session is active, unpaused and level > 0.
	Running() bool
	TaskState() domain.TaskState
	ReentryActive() bool
	HyperfocusActive() bool
	ShieldActive() bool
	HardLockActive() bool
}

// Timers is the virtual clock the scheduler uses for lifetimes and
// delayed follow-ups. *scheduler.Queue satisfies it.
type Timers interface {
	Now() time.Time
	After(d time.Duration, fn func()) scheduler.TimerID
	Cancel(id scheduler.TimerID) bool
}

// Deps wires a Scheduler.
type Deps struct {
	Env    domain.Environment
	Config config.Config
	State  State
	Timers Timers
	Rand   chance.Source
	Habit  *habituation.Tracker
	Tasks  *tasks.List
	Out    *port.Outbox
}

type effect struct {
	kind  domain.VisualKind
	timer scheduler.TimerID
}

type channel int

const (
	visualChannel channel = iota
	audioChannel
	notificationChannel
)

// Scheduler emits stimuli for one environment. It keeps a registry of
// live effects so concurrency caps and "one phone popup at a time" hold.
type Scheduler struct {
	env    domain.Environment
	cfg    config.Config
	state  State
	timers Timers
	rnd    chance.Source
	habit  *habituation.Tracker
	tasks  *tasks.List
	out    *port.Outbox

	nextID       port.EffectID
	effects      map[port.EffectID]effect
	pending      map[scheduler.TimerID]struct{}
	monitorCards map[string]port.EffectID
	tunnel       port.EffectID
	ambientOn    bool

	popupMin           time.Duration
	todoMin            time.Duration
	lastPopupAt        time.Time
	lastTodoAt         time.Time
	lastCueAt          time.Time
	monitorNextAllowed time.Time
	recentPhone        map[string]time.Time
	recentMonitor      map[string]time.Time
}

func New(d Deps) *Scheduler {
	s := &Scheduler{
		env:    d.Env,
		cfg:    d.Config,
		state:  d.State,
		timers: d.Timers,
		rnd:    d.Rand,
		habit:  d.Habit,
		tasks:  d.Tasks,
		out:    d.Out,
	}
	s.resetMaps()
	s.Configure(d.Config.Intervals(d.Config.Level))
	return s
}

func (s *Scheduler) resetMaps() {
	s.effects = make(map[port.EffectID]effect)
	s.pending = make(map[scheduler.TimerID]struct{})
	s.monitorCards = make(map[string]port.EffectID)
	s.recentPhone = make(map[string]time.Time)
	s.recentMonitor = make(map[string]time.Time)
}

// Configure derives the phone rate limits from the active intervals.
func (s *Scheduler) Configure(iv config.Intervals) {
	s.popupMin = s.cfg.PhonePopupMin(iv)
	s.todoMin = s.cfg.PhoneTodoMin(iv)
}

// FireVisual handles one tick of the visual timer.
func (s *Scheduler) FireVisual() {
	if !s.state.Running() || s.suppressed(visualChannel) {
		return
	}
	bag := visualBag(s.env, s.state.TaskState(), s.reentryWork())
	kind := chance.Pick(s.rnd, bag)
	for range 2 {
		if s.habit.Factor(HabitVisual, string(kind)) >= habituation.RerollBelow {
			break
		}
		kind = chance.Pick(s.rnd, bag)
	}
	s.habit.Note(HabitVisual, string(kind))
	s.spawnVisual(kind)
	s.maybeBurst()
}

// FireAudio handles one tick of the audio timer.
func (s *Scheduler) FireAudio() {
	if !s.state.Running() || s.suppressed(audioChannel) {
		return
	}
	bag := audioBag(s.env, s.state.Level(), s.state.TaskState(), s.reentryWork())
	kind := chance.Pick(s.rnd, bag)
	f := s.habit.Factor(HabitAudio, string(kind))
	if f < habituation.SkipBelow && chance.Roll(s.rnd, 0.18+0.22*(1-f)) {
		return
	}
	pos, pan, vol, ok := s.spatial(kind)
	if !ok {
		vol = Sound(kind).Volume
	}
	s.habit.Note(HabitAudio, string(kind))
	s.playSound(kind, vol*f, pan, pos)
}

// FireNotification handles one tick of the notification timer. Every
// environment uses the phone.
func (s *Scheduler) FireNotification() {
	if !s.state.Running() || s.suppressed(notificationChannel) {
		return
	}
	s.PhonePopup()
}

// Nudge emits the small task-adjacent stimulus that accompanies re-entry,
// interruptions and refocus: a monitor card on the desk, a monitor
// notification elsewhere. Forced reasons bypass the suppression gates.
func (s *Scheduler) Nudge(reason domain.Reason) {
	if s.env == domain.EnvDesk {
		s.MonitorMicro(reason)
		return
	}
	s.MonitorNotification(reason)
}

func (s *Scheduler) suppressed(ch channel) bool {
	if s.state.HardLockActive() {
		return true
	}
	lvl := s.state.Level().Index()
	if s.state.HyperfocusActive() && chance.Roll(s.rnd, hyperfocusSkip[lvl]) {
		return true
	}
	if s.state.ShieldActive() {
		p := shieldSkip[lvl]
		if ch == audioChannel {
			p = shieldSkipAudio[lvl]
		}
		if chance.Roll(s.rnd, p) {
			return true
		}
	}
	return false
}

func (s *Scheduler) noticeSuppressed() bool {
	if s.state.HardLockActive() {
		return true
	}
	return s.state.ShieldActive() && chance.Roll(s.rnd, shieldSkip[s.state.Level().Index()])
}

func (s *Scheduler) reentryWork() bool {
	return s.state.TaskState() == domain.StateWorking && s.state.ReentryActive()
}

func (s *Scheduler) spawnVisual(kind domain.VisualKind) {
	switch kind {
	case domain.VisualLargePopup:
		s.PhonePopup()
	case domain.VisualMovingObject:
		s.movingObject()
	case domain.VisualFlashingLight:
		s.flashingLight()
	case domain.VisualPeripheralMovement:
		s.peripheral()
	case domain.VisualThoughtBubble:
		s.thoughtBubble()
	case domain.VisualMonitorMicro:
		s.MonitorMicro(domain.ReasonNone)
	case domain.VisualScreenFlicker:
		s.screenFlicker()
	}
}

// maybeBurst schedules one correlated follow-up stimulus at level 2+.
func (s *Scheduler) maybeBurst() {
	lvl := s.state.Level()
	if lvl < domain.LevelMedium || s.state.HyperfocusActive() || s.state.ShieldActive() {
		return
	}
	limit, ok := maxActiveVisuals[s.env]
	if !ok {
		limit = defaultMaxVisuals
	}
	if s.ActiveDistractions() >= limit || !chance.Roll(s.rnd, burstChance[lvl.Index()]) {
		return
	}
	delay := burstDelay + time.Duration(chance.Jitter(s.rnd, float64(burstDelayJitter)))
	s.later(delay, func() {
		if !s.state.Running() || s.state.HardLockActive() || s.state.HyperfocusActive() || s.state.ShieldActive() {
			return
		}
		switch s.env {
		case domain.EnvDesk:
			s.MonitorMicro(domain.ReasonBurst)
		case domain.EnvHoersaal:
			s.thoughtBubble()
		default:
			s.peripheral()
		}
	})
}

// MonitorMicro shows a small card on one of the desk monitors. Each
// monitor holds at most one card; a new card replaces the old one.
func (s *Scheduler) MonitorMicro(reason domain.Reason) {
	if s.env != domain.EnvDesk || !s.state.Running() {
		return
	}
	lvl := s.state.Level().Index()
	m := chance.Pick(s.rnd, monitors)
	pool := microPool(s.activeKind(), s.state.Level(), reason, s.state.TaskState(), s.state.ReentryActive())
	v := chance.Pick(s.rnd, pool)

	if prev, ok := s.monitorCards[m.ID]; ok {
		s.remove(prev)
	}

	refocus := reason == domain.ReasonRefocus
	life := ms(microLifeBase[lvl]) + jitterMs(s.rnd, microLifeJitter[lvl])
	if refocus {
		life = ms(microRefocusBase[lvl]) + jitterMs(s.rnd, microRefocusJitter)
	}
	pos := m.Pos
	s.monitorCards[m.ID] = s.spawn(port.SpawnEffect{
		Kind:     domain.VisualMonitorMicro,
		Reason:   reason,
		Lifetime: life,
		Content:  port.Content{Title: v.Title, Text: v.Body, Accent: v.Accent, Icon: v.Icon},
		Monitor:  m.ID,
		Position: &pos,
	})
	if refocus {
		return
	}

	s.playSound(domain.SoundElectricTick, 0.035, m.Pan, nil)
	above := domain.Vec3{X: m.Pos.X, Y: m.Pos.Y + 0.1, Z: m.Pos.Z}
	if chance.Roll(s.rnd, microDeskCueProb[lvl]) {
		s.hint(port.CueDesk, above, 850*time.Millisecond+jitterMs(s.rnd, 450))
	}
	if look := microLookDuration[lvl]; look > 0 && chance.Roll(s.rnd, microLookProb[lvl]) {
		s.later(250*time.Millisecond, func() { s.hint(port.CueLook, above, ms(look)) })
	}
}

// MonitorNotification shows a one-line notice on the work screen. A
// display lock keeps notices from overlapping. Notices land on the work
// itself, so hyperfocus does not filter them; only the hard lock and the
// shield do, and forced reasons pass both.
func (s *Scheduler) MonitorNotification(reason domain.Reason) {
	if !s.state.Running() {
		return
	}
	if !reason.Forced() && s.noticeSuppressed() {
		return
	}
	now := s.timers.Now()
	if now.Before(s.monitorNextAllowed) {
		return
	}
	s.monitorNextAllowed = now.Add(s.cfg.MonitorDisplay)

	bag := monitorBag(s.activeKind(), reason, s.state.TaskState(), s.state.ReentryActive())
	window := max(minMonitorRepeat, s.cfg.MonitorNotifRepeat)
	pick := filterRecent(bag, func(msg string) string { return msg }, s.recentMonitor, now, window)
	msg := chance.Pick(s.rnd, pick)
	s.recentMonitor[msg] = now

	monitor := ""
	if s.env == domain.EnvDesk {
		monitor = monitors[len(monitors)-1].ID
	}
	s.spawn(port.SpawnEffect{
		Kind:     domain.VisualMonitorNotice,
		Reason:   reason,
		Lifetime: monitorNoticeLife,
		Content:  port.Content{Text: msg},
		Monitor:  monitor,
	})
}

// PhonePopup shows a smartphone notification and may turn it into a new
// task. It reports whether a popup was shown.
func (s *Scheduler) PhonePopup() bool {
	now := s.timers.Now()
	gap := time.Duration(popupSpacingFactor * float64(max(minPhonePopupGap, s.popupMin)))
	if !s.lastPopupAt.IsZero() && now.Sub(s.lastPopupAt) < gap {
		return false
	}
	if s.countKind(domain.VisualLargePopup) > 0 {
		return false
	}
	s.lastPopupAt = now

	all, ok := phoneNotifications[s.env]
	if !ok {
		all = phoneNotifications[domain.EnvDesk]
	}
	var realistic, tempting []PhoneNotification
	for _, n := range all {
		if temptingApps[n.App] {
			tempting = append(tempting, n)
		} else {
			realistic = append(realistic, n)
		}
	}
	bag := all
	if len(realistic) > 0 && len(tempting) > 0 {
		bag = tempting
		if chance.Roll(s.rnd, 0.5) {
			bag = realistic
		}
	}
	window := max(minPhoneRepeat, s.cfg.PhoneNotifRepeat)
	bag = filterRecent(bag, PhoneNotification.key, s.recentPhone, now, window)
	n := chance.Pick(s.rnd, bag)
	s.recentPhone[n.key()] = now

	s.injectTodo(n, now)

	s.spawn(port.SpawnEffect{
		Kind:     domain.VisualLargePopup,
		Lifetime: phonePopupLife,
		Content:  port.Content{App: n.App, Sender: n.Sender, Text: n.Text, Icon: n.Icon, Time: n.Time},
	})
	s.playSound(domain.SoundPhoneVibrate, Sound(domain.SoundPhoneVibrate).Volume, 0, nil)
	s.playSound(domain.SoundNotification, Sound(domain.SoundNotification).Volume, 0, nil)
	return true
}

func (s *Scheduler) injectTodo(n PhoneNotification, now time.Time) {
	todos := todosFor(s.env, n)
	if len(todos) == 0 {
		return
	}
	gap := max(minPhoneTodoGap, s.todoMin)
	if !s.lastTodoAt.IsZero() && now.Sub(s.lastTodoAt) < gap {
		return
	}
	s.lastTodoAt = now
	for _, c := range todos {
		if text, ok := s.tasks.InjectUnique(c, domain.KindMisc); ok {
			s.out.Emit(port.TaskAdded{Text: text, Kind: domain.KindMisc, Source: injectedTaskSource}, port.RequestUIRefresh{})
			return
		}
	}
}

func filterRecent[T any](bag []T, key func(T) string, recent map[string]time.Time, now time.Time, window time.Duration) []T {
	var fresh []T
	for _, it := range bag {
		at, seen := recent[key(it)]
		if !seen || now.Sub(at) > window {
			fresh = append(fresh, it)
		}
	}
	if len(fresh) == 0 {
		return bag
	}
	return fresh
}

func (s *Scheduler) movingObject() {
	dim := dimMovingElsewhere
	if s.env == domain.EnvDesk {
		dim = dimMovingDesk
	}
	s.dimScene(dim)

	startX := 5.0
	if chance.Roll(s.rnd, 0.5) {
		startX = -5
	}
	var pos domain.Vec3
	var icon, color string
	if chance.Roll(s.rnd, 0.5) {
		icon, color = paperPlane, "#ffffff"
		pos = domain.Vec3{X: startX, Y: 1.3 + chance.Jitter(s.rnd, 1.2), Z: -1.2 - chance.Jitter(s.rnd, 1.5)}
	} else {
		obj := chance.Pick(s.rnd, movingObjects)
		icon, color = obj.Icon, obj.Color
		pos = domain.Vec3{X: startX, Y: 1.2 + chance.Jitter(s.rnd, 1.5), Z: -1 - chance.Jitter(s.rnd, 2)}
	}
	s.spawn(port.SpawnEffect{
		Kind:     domain.VisualMovingObject,
		Lifetime: movingObjectLife,
		Content:  port.Content{Icon: icon},
		Color:    color,
		Position: &pos,
	})
}

func (s *Scheduler) flashingLight() {
	lvl := s.state.Level().Index()
	if s.env == domain.EnvDesk {
		if lvl == 0 {
			return
		}
		s.spawn(port.SpawnEffect{
			Kind:      domain.VisualFlashingLight,
			Lifetime:  420*time.Millisecond + jitterMs(s.rnd, 280),
			Color:     "#ffffff",
			Intensity: deskGlare[lvl],
		})
		s.screenFlicker()
		if chance.Roll(s.rnd, deskExtraFlicker[lvl]) {
			s.later(180*time.Millisecond+jitterMs(s.rnd, 240), s.screenFlicker)
		}
		side := 1.0
		if chance.Roll(s.rnd, 0.5) {
			side = -1
		}
		pan := side * (0.15 + chance.Jitter(s.rnd, 0.25))
		s.playSound(domain.SoundElectricTick, 0.05+chance.Jitter(s.rnd, 0.03), pan, nil)
		return
	}

	spec := flashingLights[lvl]
	s.dimScene(spec.period + dimFlashExtra)
	pos := domain.Vec3{
		X: (s.rnd.Float64() - 0.5) * 8,
		Y: 1 + chance.Jitter(s.rnd, 3),
		Z: (s.rnd.Float64() - 0.5) * 12,
	}
	span := spec.period * time.Duration(spec.repeats)
	s.spawn(port.SpawnEffect{
		Kind:      domain.VisualFlashingLight,
		Lifetime:  span + 500*time.Millisecond,
		Color:     chance.Pick(s.rnd, lightColors),
		Position:  &pos,
		Intensity: spec.intensity,
	})
	s.hint(port.CueGaze, pos, span+300*time.Millisecond)
}

func (s *Scheduler) peripheral() {
	lvl := s.state.Level().Index()
	side := 1.0
	if chance.Roll(s.rnd, 0.5) {
		side = -1
	}
	start := domain.Vec3{X: side * 4, Y: 0.8, Z: 3}
	mid := domain.Vec3{X: side * 4, Y: 0.8, Z: -2.5}
	s.spawn(port.SpawnEffect{
		Kind:     domain.VisualPeripheralMovement,
		Lifetime: peripheralLife,
		Position: &start,
	})
	if s.env == domain.EnvDesk {
		if lvl > 0 {
			s.playSound(domain.SoundSteps, 0.16, side*(0.55+chance.Jitter(s.rnd, 0.25)), nil)
		}
		if chance.Roll(s.rnd, peripheralCueProb[lvl]) {
			d := ms(peripheralDeskCue[lvl])
			s.later(750*time.Millisecond, func() { s.hint(port.CueGaze, mid, d) })
		}
		return
	}
	if d := peripheralLookCue[lvl]; d > 0 {
		s.later(800*time.Millisecond, func() { s.hint(port.CueGaze, mid, ms(d)) })
	}
}

func (s *Scheduler) thoughtBubble() {
	if s.countKind(domain.VisualThoughtBubble) >= maxThoughtBubbles {
		return
	}
	lines, ok := thoughts[s.env]
	if !ok {
		lines = thoughts[domain.EnvDesk]
	}
	lvl := s.state.Level().Index()
	s.spawn(port.SpawnEffect{
		Kind:     domain.VisualThoughtBubble,
		Lifetime: ms(thoughtLifeBase[lvl]) + jitterMs(s.rnd, thoughtLifeJitter[lvl]),
		Content:  port.Content{Text: chance.Pick(s.rnd, lines)},
	})
}

func (s *Scheduler) screenFlicker() {
	if s.env != domain.EnvDesk {
		return
	}
	m := chance.Pick(s.rnd, monitors)
	s.spawn(port.SpawnEffect{
		Kind:     domain.VisualScreenFlicker,
		Lifetime: screenFlickerLife,
		Monitor:  m.ID,
	})
	s.playSound(domain.SoundMouseClick, 0.06, m.Pan*0.8, nil)
}

// Tint washes the view in color for d.
func (s *Scheduler) Tint(color string, d time.Duration) {
	s.spawn(port.SpawnEffect{Kind: domain.VisualTint, Color: color, Lifetime: d})
}

// FocusTunnel narrows the view for d, replacing any running tunnel.
func (s *Scheduler) FocusTunnel(d time.Duration) {
	if s.tunnel != 0 {
		s.remove(s.tunnel)
	}
	s.tunnel = s.spawn(port.SpawnEffect{Kind: domain.VisualFocusTunnel, Lifetime: d})
}

// Spotlight highlights target for d.
func (s *Scheduler) Spotlight(target domain.Vec3, d time.Duration) {
	s.spawn(port.SpawnEffect{Kind: domain.VisualSpotlight, Lifetime: d, Position: &target})
}

// Cue emits a directional hint unconditionally.
func (s *Scheduler) Cue(style port.CueStyle, target domain.Vec3, d time.Duration) {
	s.lastCueAt = s.timers.Now()
	s.out.Emit(port.EmitCue{Style: style, Target: target, Duration: d})
}

// Play emits a one-off sound with its catalog volume.
func (s *Scheduler) Play(kind domain.SoundKind) {
	s.playSound(kind, Sound(kind).Volume, 0, nil)
}

// hint is a throttled Cue: only one hint per cooldown.
func (s *Scheduler) hint(style port.CueStyle, target domain.Vec3, d time.Duration) {
	now := s.timers.Now()
	if !s.lastCueAt.IsZero() && now.Sub(s.lastCueAt) < gazeCueCooldown {
		return
	}
	s.Cue(style, target, d)
}

func (s *Scheduler) dimScene(d time.Duration) {
	s.out.Emit(port.DimScene{Factor: dimFactor, Duration: d})
}

// StartAmbient starts the environment's background loop unless it is
// already playing.
func (s *Scheduler) StartAmbient() {
	a, ok := Ambient(s.env)
	if !ok || s.ambientOn {
		return
	}
	rate := 1.0
	if a.RateJitter > 0 {
		rate = 1 - a.RateJitter/2 + chance.Jitter(s.rnd, a.RateJitter)
	}
	var pos *domain.Vec3
	if a.Position != nil {
		p := *a.Position
		pos = &p
	}
	s.ambientOn = true
	s.out.Emit(port.AmbientStart{
		Env:      s.env,
		Name:     a.Name,
		File:     a.File,
		Volume:   a.Volume,
		Pan:      a.Pan,
		Rate:     rate,
		Position: pos,
	})
}

// StopAmbient silences the background loop if it is playing.
func (s *Scheduler) StopAmbient() {
	if !s.ambientOn {
		return
	}
	s.ambientOn = false
	s.out.Emit(port.AmbientStop{})
}

// AmbientPlaying reports whether the background loop is running.
func (s *Scheduler) AmbientPlaying() bool { return s.ambientOn }

// ClearEffects drops every live effect and pending follow-up.
func (s *Scheduler) ClearEffects() {
	for _, e := range s.effects {
		s.timers.Cancel(e.timer)
	}
	for id := range s.pending {
		s.timers.Cancel(id)
	}
	s.effects = make(map[port.EffectID]effect)
	s.pending = make(map[scheduler.TimerID]struct{})
	s.monitorCards = make(map[string]port.EffectID)
	s.tunnel = 0
	s.out.Emit(port.ClearEffects{})
}

// Reset clears effects and forgets rate limits, anti-repeat history and
// habituation.
func (s *Scheduler) Reset() {
	s.ClearEffects()
	s.resetMaps()
	s.lastPopupAt = time.Time{}
	s.lastTodoAt = time.Time{}
	s.lastCueAt = time.Time{}
	s.monitorNextAllowed = time.Time{}
	s.habit.Reset()
}

// ActiveDistractions counts live effects that are distractions.
func (s *Scheduler) ActiveDistractions() int {
	n := 0
	for _, e := range s.effects {
		if e.kind.Distraction() {
			n++
		}
	}
	return n
}

// ActiveEffects counts every live effect, feedback included.
func (s *Scheduler) ActiveEffects() int { return len(s.effects) }

// PendingFollowUps counts scheduled bursts and delayed cues.
func (s *Scheduler) PendingFollowUps() int { return len(s.pending) }

func (s *Scheduler) countKind(kind domain.VisualKind) int {
	n := 0
	for _, e := range s.effects {
		if e.kind == kind {
			n++
		}
	}
	return n
}

func (s *Scheduler) activeKind() domain.TaskKind {
	if t := s.tasks.Active(); t != nil {
		return t.Kind
	}
	return domain.KindMisc
}

func (s *Scheduler) spawn(e port.SpawnEffect) port.EffectID {
	s.nextID++
	id := s.nextID
	e.ID = id
	timer := s.timers.After(e.Lifetime, func() { delete(s.effects, id) })
	s.effects[id] = effect{kind: e.Kind, timer: timer}
	s.out.Emit(e)
	return id
}

func (s *Scheduler) remove(id port.EffectID) {
	e, ok := s.effects[id]
	if !ok {
		return
	}
	s.timers.Cancel(e.timer)
	delete(s.effects, id)
	s.out.Emit(port.ClearEffects{IDs: []port.EffectID{id}})
}

func (s *Scheduler) later(d time.Duration, fn func()) {
	var id scheduler.TimerID
	id = s.timers.After(d, func() {
		delete(s.pending, id)
		fn()
	})
	s.pending[id] = struct{}{}
}

func (s *Scheduler) playSound(kind domain.SoundKind, volume, pan float64, pos *domain.Vec3) {
	spec := Sound(kind)
	s.out.Emit(port.PlaySound{
		Sound:       kind,
		File:        spec.File,
		Volume:      volume,
		Pan:         pan,
		Position:    pos,
		MaxDuration: spec.MaxDuration,
		Repeat:      spec.Repeat,
		RepeatGap:   spec.RepeatGap,
	})
}

// spatial places a sound around the listener. ok is false when the
// environment has no hint for kind and only a random pan is available.
func (s *Scheduler) spatial(kind domain.SoundKind) (pos *domain.Vec3, pan, volume float64, ok bool) {
	h, found := spatialHints[s.env][kind]
	if !found {
		width := fallbackPanWidth[s.state.Level().Index()]
		return nil, (s.rnd.Float64()*2 - 1) * width, 0, false
	}
	jit := func(v, a float64) float64 { return v + (s.rnd.Float64()*2-1)*a }
	base := h.pos
	pan = h.pan
	if h.seat {
		side := 1.0
		if chance.Roll(s.rnd, 0.5) {
			side = -1
		}
		base.X = side * (0.9 + chance.Jitter(s.rnd, 0.8))
		base.Z = jit(0.6, 0.5)
		pan = side * h.pan
	}
	p := domain.Vec3{
		X: jit(base.X, h.jitter.X),
		Y: jit(base.Y, h.jitter.Y),
		Z: jit(base.Z, h.jitter.Z),
	}
	return &p, pan, h.volume, true
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func jitterMs(src chance.Source, maxMs int) time.Duration {
	return time.Duration(math.Round(chance.Jitter(src, float64(maxMs)))) * time.Millisecond
}
