package cli

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/gaze"
	"github.com/alexanderramin/focussim/internal/port"
)

const feedCapacity = 64

// feedRenderer is the terminal's stand-in for the 3D scene: it turns
// effects, sounds and injected tasks into one-line descriptions the TUI
// shows as a scrolling feed. Calls arrive on the runner goroutine while
// the TUI reads, so access is locked.
type feedRenderer struct {
	mu      sync.Mutex
	lines   []string
	seq     uint64
	ambient string
}

var _ port.Renderer = (*feedRenderer)(nil)

func newFeedRenderer() *feedRenderer {
	return &feedRenderer{}
}

func (f *feedRenderer) push(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.lines = append(f.lines, line)
	if len(f.lines) > feedCapacity {
		f.lines = f.lines[len(f.lines)-feedCapacity:]
	}
}

// Recent returns up to n lines, oldest first.
func (f *feedRenderer) Recent(n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > len(f.lines) {
		n = len(f.lines)
	}
	return append([]string(nil), f.lines[len(f.lines)-n:]...)
}

// Seq counts every line ever pushed, including evicted ones.
func (f *feedRenderer) Seq() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

func (f *feedRenderer) SpawnEffect(c port.SpawnEffect) error {
	if line := describeEffect(c); line != "" {
		f.push(line)
	}
	return nil
}

func (f *feedRenderer) ClearEffects(port.ClearEffects) error { return nil }

func (f *feedRenderer) PlaySound(c port.PlaySound) error {
	line := "♪ " + string(c.Sound)
	if c.Repeat > 1 {
		line += fmt.Sprintf(" ×%d", c.Repeat)
	}
	f.push(line)
	return nil
}

// RequestUIRefresh is a no-op: the TUI polls snapshots on its frame timer.
func (f *feedRenderer) RequestUIRefresh() error { return nil }

// EmitCue is silent; the snapshot already shows the focus state.
func (f *feedRenderer) EmitCue(port.EmitCue) error { return nil }

// ShowMessage is silent; the snapshot carries the current message.
func (f *feedRenderer) ShowMessage(port.ShowMessage) error { return nil }

func (f *feedRenderer) TaskAdded(c port.TaskAdded) error {
	f.push("+ " + c.Text)
	return nil
}

// AmbientStart is shown in the TUI header rather than the feed.
func (f *feedRenderer) AmbientStart(c port.AmbientStart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ambient = c.Name
	return nil
}

func (f *feedRenderer) AmbientStop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ambient = ""
	return nil
}

func (f *feedRenderer) DimScene(c port.DimScene) error {
	f.push(fmt.Sprintf("◐ Licht gedimmt (%dms)", c.Duration.Milliseconds()))
	return nil
}

// Ambient names the background loop that is playing, or "" when silent.
func (f *feedRenderer) Ambient() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ambient
}

func describeEffect(c port.SpawnEffect) string {
	switch c.Kind {
	case domain.VisualTint, domain.VisualFocusTunnel, domain.VisualSpotlight:
		return ""
	case domain.VisualLargePopup, domain.VisualMonitorNotice:
		parts := make([]string, 0, 3)
		for _, s := range []string{c.Content.App, c.Content.Sender, c.Content.Text} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			parts = append(parts, c.Content.Title)
		}
		return "✉ " + strings.Join(parts, " · ")
	case domain.VisualMonitorMicro, domain.VisualThoughtBubble:
		text := c.Content.Text
		if text == "" {
			text = c.Content.Title
		}
		if text == "" {
			return "◌ " + string(c.Kind)
		}
		return "◌ " + text
	default:
		return "◌ " + string(c.Kind)
	}
}

// toggleGaze reports the user looking at or away from the focus target.
// The TUI flips it; the simulation samples it on every tick.
type toggleGaze struct {
	away atomic.Bool
}

const lookAwayAngle = 45.0

func (g *toggleGaze) LookAway() *gaze.Sample {
	if g.away.Load() {
		return &gaze.Sample{AngleDeg: lookAwayAngle}
	}
	return &gaze.Sample{AngleDeg: 0}
}

// Toggle flips the gaze and reports whether the user now looks away.
func (g *toggleGaze) Toggle() bool {
	for {
		cur := g.away.Load()
		if g.away.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

func (g *toggleGaze) Away() bool { return g.away.Load() }
