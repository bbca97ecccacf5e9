package domain

// Task is one entry of the simulated to-do list.
type Task struct {
	Text      string
	Kind      TaskKind
	Progress  float64
	Completed bool
}

// Advance adds delta to the task's progress, clamped to [0,1]. It returns
// true when this call completed the task.
func (t *Task) Advance(delta float64) bool {
	if t.Completed {
		return false
	}
	t.Progress = Clamp01(t.Progress + delta)
	if t.Progress >= 1 {
		t.Progress = 1
		t.Completed = true
		return true
	}
	return false
}

// Setback removes progress without touching the completion flag.
func (t *Task) Setback(delta float64) {
	t.Progress = Clamp01(t.Progress - delta)
}

// Toggle flips the completion flag. Marking done fills the progress bar;
// reopening caps it just below done so the next tick does not re-complete
// it instantly.
func (t *Task) Toggle() bool {
	t.Completed = !t.Completed
	if t.Completed {
		t.Progress = 1
	} else if t.Progress > reopenedProgressCap {
		t.Progress = reopenedProgressCap
	}
	return t.Completed
}

const reopenedProgressCap = 0.95

// Vec3 is a world-space position handed to the rendering collaborator.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}
