package port

import (
	"fmt"
	"log/slog"
)

// Renderer is the outbound port implemented by rendering and audio
// collaborators.
type Renderer interface {
	SpawnEffect(SpawnEffect) error
	ClearEffects(ClearEffects) error
	PlaySound(PlaySound) error
	RequestUIRefresh() error
	EmitCue(EmitCue) error
	ShowMessage(ShowMessage) error
	TaskAdded(TaskAdded) error
	AmbientStart(AmbientStart) error
	AmbientStop() error
	DimScene(DimScene) error
}

// NopRenderer discards every command.
type NopRenderer struct{}

func (NopRenderer) SpawnEffect(SpawnEffect) error   { return nil }
func (NopRenderer) ClearEffects(ClearEffects) error { return nil }
func (NopRenderer) PlaySound(PlaySound) error       { return nil }
func (NopRenderer) RequestUIRefresh() error         { return nil }
func (NopRenderer) EmitCue(EmitCue) error           { return nil }
func (NopRenderer) ShowMessage(ShowMessage) error   { return nil }
func (NopRenderer) TaskAdded(TaskAdded) error       { return nil }
func (NopRenderer) AmbientStart(AmbientStart) error { return nil }
func (NopRenderer) AmbientStop() error              { return nil }
func (NopRenderer) DimScene(DimScene) error         { return nil }

// Dispatcher delivers commands to a Renderer. A failing or panicking
// renderer call is logged and skipped; it never reaches the caller.
type Dispatcher struct {
	renderer Renderer
	logger   *slog.Logger
	failures int
}

func NewDispatcher(r Renderer, logger *slog.Logger) *Dispatcher {
	if r == nil {
		r = NopRenderer{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{renderer: r, logger: logger}
}

// Dispatch delivers cmds in order and returns how many failed.
func (d *Dispatcher) Dispatch(cmds []Command) int {
	failed := 0
	for _, cmd := range cmds {
		if err := d.deliver(cmd); err != nil {
			failed++
			d.failures++
			d.logger.Warn("renderer_command_failed", "command", cmd.CommandName(), "error", err.Error())
		}
	}
	return failed
}

// Failures is the total number of failed deliveries.
func (d *Dispatcher) Failures() int { return d.failures }

func (d *Dispatcher) deliver(cmd Command) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("renderer panic: %v", p)
		}
	}()

	switch c := cmd.(type) {
	case SpawnEffect:
		return d.renderer.SpawnEffect(c)
	case ClearEffects:
		return d.renderer.ClearEffects(c)
	case PlaySound:
		return d.renderer.PlaySound(c)
	case RequestUIRefresh:
		return d.renderer.RequestUIRefresh()
	case EmitCue:
		return d.renderer.EmitCue(c)
	case ShowMessage:
		return d.renderer.ShowMessage(c)
	case TaskAdded:
		return d.renderer.TaskAdded(c)
	case AmbientStart:
		return d.renderer.AmbientStart(c)
	case AmbientStop:
		return d.renderer.AmbientStop()
	case DimScene:
		return d.renderer.DimScene(c)
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
}
