// Package port defines the outbound commands the simulation core issues to
// its rendering and audio collaborators, and the isolated dispatch that
// delivers them.
package port

import (
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
)

// Command is one fire-and-forget instruction for a collaborator.
type Command interface {
	CommandName() string
}

// EffectID identifies a spawned effect for later removal.
type EffectID uint64

// Content is the text payload of a card-like effect.
type Content struct {
	App    string
	Sender string
	Title  string
	Text   string
	Icon   string
	Accent string
	Time   string
}

// SpawnEffect asks the renderer to show a visual effect for Lifetime.
// Intensity is a kind-specific strength (light intensity, glare opacity).
type SpawnEffect struct {
	ID        EffectID
	Kind      domain.VisualKind
	Reason    domain.Reason
	Lifetime  time.Duration
	Content   Content
	Color     string
	Monitor   string
	Position  *domain.Vec3
	Intensity float64
}

// ClearEffects removes effects. An empty IDs slice clears every effect.
type ClearEffects struct {
	IDs []EffectID
}

// PlaySound asks the audio collaborator to play a sound. Repeat > 1 plays
// it several times, RepeatGap apart.
type PlaySound struct {
	Sound       domain.SoundKind
	File        string
	Volume      float64
	Pan         float64
	Position    *domain.Vec3
	MaxDuration time.Duration
	Repeat      int
	RepeatGap   time.Duration
}

// RequestUIRefresh signals that session state changed.
type RequestUIRefresh struct{}

type CueStyle string

const (
	CueGaze      CueStyle = "gaze"
	CueSpotlight CueStyle = "spotlight"
	CueDesk      CueStyle = "desk"
	CueLook      CueStyle = "look"
)

// EmitCue is a directional attention hint toward Target.
type EmitCue struct {
	Style    CueStyle
	Target   domain.Vec3
	Duration time.Duration
}

type Tone string

const (
	ToneInfo    Tone = "info"
	ToneWarn    Tone = "warn"
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
)

// ShowMessage is a transient status line.
type ShowMessage struct {
	Text     string
	Tone     Tone
	Duration time.Duration
}

// TaskAdded reports a task the core inserted on its own.
type TaskAdded struct {
	Text   string
	Kind   domain.TaskKind
	Source string
}

// AmbientStart starts the environment's background loop. A second
// AmbientStart replaces the running loop.
type AmbientStart struct {
	Env      domain.Environment
	Name     string
	File     string
	Volume   float64
	Pan      float64
	Rate     float64
	Position *domain.Vec3
}

// AmbientStop silences the background loop.
type AmbientStop struct{}

// DimScene lowers the scene lighting to Factor of its level for Duration.
type DimScene struct {
	Factor   float64
	Duration time.Duration
}

func (SpawnEffect) CommandName() string      { return "spawn_effect" }
func (ClearEffects) CommandName() string     { return "clear_effects" }
func (PlaySound) CommandName() string        { return "play_sound" }
func (RequestUIRefresh) CommandName() string { return "request_ui_refresh" }
func (EmitCue) CommandName() string          { return "emit_cue" }
func (ShowMessage) CommandName() string      { return "show_message" }
func (TaskAdded) CommandName() string        { return "task_added" }
func (AmbientStart) CommandName() string     { return "ambient_start" }
func (AmbientStop) CommandName() string      { return "ambient_stop" }
func (DimScene) CommandName() string         { return "dim_scene" }

// Outbox buffers commands produced while the core mutates state, so
// collaborators never run in the middle of a state transition.
type Outbox struct {
	cmds []Command
}

func (o *Outbox) Emit(cmds ...Command) {
	o.cmds = append(o.cmds, cmds...)
}

// Drain returns and forgets the buffered commands.
func (o *Outbox) Drain() []Command {
	cmds := o.cmds
	o.cmds = nil
	return cmds
}

func (o *Outbox) Len() int { return len(o.cmds) }
