package port

import "sync"

// Recorder is a Renderer that keeps every command it receives. It is safe
// for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	cmds []Command
}

func (r *Recorder) record(c Command) error {
	r.mu.Lock()
	r.cmds = append(r.cmds, c)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) SpawnEffect(c SpawnEffect) error   { return r.record(c) }
func (r *Recorder) ClearEffects(c ClearEffects) error { return r.record(c) }
func (r *Recorder) PlaySound(c PlaySound) error       { return r.record(c) }
func (r *Recorder) RequestUIRefresh() error           { return r.record(RequestUIRefresh{}) }
func (r *Recorder) EmitCue(c EmitCue) error           { return r.record(c) }
func (r *Recorder) ShowMessage(c ShowMessage) error   { return r.record(c) }
func (r *Recorder) TaskAdded(c TaskAdded) error       { return r.record(c) }
func (r *Recorder) AmbientStart(c AmbientStart) error { return r.record(c) }
func (r *Recorder) AmbientStop() error                { return r.record(AmbientStop{}) }
func (r *Recorder) DimScene(c DimScene) error         { return r.record(c) }

// Commands returns a copy of everything recorded so far.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.cmds...)
}

// Reset forgets recorded commands.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cmds = nil
	r.mu.Unlock()
}

// Spawns returns the recorded SpawnEffect commands.
func (r *Recorder) Spawns() []SpawnEffect {
	return filter[SpawnEffect](r.Commands())
}

// Sounds returns the recorded PlaySound commands.
func (r *Recorder) Sounds() []PlaySound {
	return filter[PlaySound](r.Commands())
}

// Messages returns the recorded ShowMessage commands.
func (r *Recorder) Messages() []ShowMessage {
	return filter[ShowMessage](r.Commands())
}

// Cues returns the recorded EmitCue commands.
func (r *Recorder) Cues() []EmitCue {
	return filter[EmitCue](r.Commands())
}

// Dims returns the recorded DimScene commands.
func (r *Recorder) Dims() []DimScene {
	return filter[DimScene](r.Commands())
}

func filter[T Command](cmds []Command) []T {
	var out []T
	for _, c := range cmds {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
