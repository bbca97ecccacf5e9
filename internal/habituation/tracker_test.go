package habituation

import (
	"testing"
	"time"

	"github.com/alexanderramin/focussim/internal/scheduler"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestFactor_UnseenIsOne(t *testing.T) {
	tr := NewTracker(scheduler.NewManualClock(t0))
	assert.Equal(t, 1.0, tr.Factor("visual", "flashingLight"))
	assert.Equal(t, 0.0, tr.Count("visual", "flashingLight"))
}

func TestCount_HalvesAfterHalfLife(t *testing.T) {
	clock := scheduler.NewManualClock(t0)
	tr := NewTracker(clock)
	tr.Note("audio", "cough")
	tr.Note("audio", "cough")
	assert.InDelta(t, 2.0, tr.Count("audio", "cough"), 1e-9)

	clock.Advance(HalfLife)
	assert.InDelta(t, 1.0, tr.Count("audio", "cough"), 1e-9)
}

func TestFactor_ThreeNotesWithinWindow(t *testing.T) {
	clock := scheduler.NewManualClock(t0)
	tr := NewTracker(clock)
	tr.Note("visual", "monitorMicro")
	clock.Advance(4 * time.Second)
	tr.Note("visual", "monitorMicro")
	clock.Advance(4 * time.Second)
	tr.Note("visual", "monitorMicro")

	// 1 -> 1.794 -> 2.424 decayed count
	assert.InDelta(t, 2.424, tr.Count("visual", "monitorMicro"), 0.001)
	assert.InDelta(t, 0.388, tr.Factor("visual", "monitorMicro"), 0.001)
}

func TestFactor_FloorsAtMin(t *testing.T) {
	tr := NewTracker(scheduler.NewManualClock(t0))
	for i := 0; i < 20; i++ {
		tr.Note("audio", "keyboard")
	}
	assert.Equal(t, MinFactor, tr.Factor("audio", "keyboard"))
}

func TestKeysAreIndependent(t *testing.T) {
	tr := NewTracker(scheduler.NewManualClock(t0))
	tr.Note("audio", "cough")
	assert.Equal(t, 1.0, tr.Factor("visual", "cough"))
	assert.Equal(t, 1.0, tr.Factor("audio", "whisper"))
}

func TestReset(t *testing.T) {
	tr := NewTracker(scheduler.NewManualClock(t0))
	tr.Note("audio", "cough")
	tr.Reset()
	assert.Equal(t, 0.0, tr.Count("audio", "cough"))
}
