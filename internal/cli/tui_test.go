package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/focussim/internal/domain"
	"github.com/alexanderramin/focussim/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskTexts(d *TestDriver) []string {
	var out []string
	for _, t := range d.Snap().Tasks {
		out = append(out, t.Text)
	}
	return out
}

func TestTUI_ShowsSessionOnStartup(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)

	snap := d.Snap()
	assert.True(t, snap.Active)
	assert.Equal(t, domain.LevelMedium, snap.Level)

	view := d.View()
	assert.Contains(t, view, "FOCUSSIM")
	assert.Contains(t, view, "Schreibtisch")
	assert.Contains(t, view, "Mittel (2)")
	assert.Contains(t, view, "AUFGABEN")
	assert.Contains(t, view, "Hausarbeit weiterschreiben")
	assert.Contains(t, view, "give in")
}

func TestTUI_GiveInKey(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)

	d.PressKey('g')

	snap := d.Snap()
	assert.Equal(t, 1, snap.GiveIns)
	assert.Greater(t, snap.Stress, 0.0)
	assert.Greater(t, snap.WastedMinutes, 0)
	assert.Contains(t, d.View(), "Ablenkung - ")
}

func TestTUI_RefocusKeys(t *testing.T) {
	for _, press := range []struct {
		name string
		fn   func(d *TestDriver)
	}{
		{"f", func(d *TestDriver) { d.PressKey('f') }},
		{"space", func(d *TestDriver) { d.PressSpace() }},
	} {
		t.Run(press.name, func(t *testing.T) {
			d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)

			press.fn(d)

			snap := d.Snap()
			assert.Equal(t, 1, snap.Refocuses)
			assert.True(t, snap.ShieldActive)
			assert.True(t, snap.FocusModeActive)
			view := d.View()
			assert.Contains(t, view, "FOCUS MODE")
			assert.Contains(t, view, "SCHILD")
		})
	}
}

func TestTUI_PauseAndResume(t *testing.T) {
	d := NewTestDriver(t, domain.EnvHoersaal, domain.LevelLow)

	d.PressKey('p')
	assert.True(t, d.Snap().Paused)
	assert.Contains(t, d.View(), "[PAUSE]")

	d.PressKey('p')
	assert.False(t, d.Snap().Paused)
	assert.NotContains(t, d.View(), "[PAUSE]")
}

func TestTUI_AddTask(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)

	d.PressKey('a')
	assert.True(t, d.model().adding)

	// Keys go to the input while adding; "g" must not count as giving in.
	d.Type("gg lesen")
	d.PressEnter()

	assert.False(t, d.model().adding)
	assert.Contains(t, taskTexts(d), "gg lesen")
	assert.Len(t, d.Snap().Tasks, 4)
	assert.Zero(t, d.Snap().GiveIns)
}

func TestTUI_AddTaskCancelled(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)

	d.PressKey('a')
	d.Type("nope")
	d.PressEsc()

	assert.False(t, d.model().adding)
	assert.Len(t, d.Snap().Tasks, 3)
}

func TestTUI_ToggleTaskAtCursor(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)

	d.PressDown()
	d.PressDown()
	d.PressDown() // clamps at the last task
	assert.Equal(t, 2, d.model().cursor)

	d.PressKey('x')
	assert.True(t, d.Snap().Tasks[2].Completed)

	d.PressKey('x')
	task := d.Snap().Tasks[2]
	assert.False(t, task.Completed)
	assert.LessOrEqual(t, task.Progress, 0.95)

	d.PressUp()
	assert.Equal(t, 1, d.model().cursor)
}

func TestTUI_RemoveTasksThenError(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)

	for range 3 {
		d.PressKey('d')
	}
	assert.Empty(t, d.Snap().Tasks)
	assert.Contains(t, d.View(), "Keine Aufgaben")

	d.PressKey('x')
	assert.Contains(t, d.View(), domain.ErrTaskIndex.Error())
}

func TestTUI_LevelKeys(t *testing.T) {
	d := NewTestDriver(t, domain.EnvSupermarkt, domain.LevelLow)

	d.PressKey('3')
	assert.Equal(t, domain.LevelHigh, d.Snap().Level)
	assert.Contains(t, d.View(), "Stark (3)")

	d.PressKey('0')
	assert.True(t, d.Quitting)
	m := d.model()
	require.NotNil(t, m.Summary())
	assert.Equal(t, domain.EnvSupermarkt, m.Summary().Environment)
	assert.Empty(t, d.View())
}

func TestTUI_QuitReturnsSummary(t *testing.T) {
	for _, press := range []struct {
		name string
		fn   func(d *TestDriver)
	}{
		{"q", func(d *TestDriver) { d.PressKey('q') }},
		{"ctrl+c", func(d *TestDriver) { d.PressCtrlC() }},
	} {
		t.Run(press.name, func(t *testing.T) {
			d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)
			d.PressKey('g')
			d.Step(2 * time.Minute)

			press.fn(d)

			assert.True(t, d.Quitting)
			summary := d.model().Summary()
			require.NotNil(t, summary)
			assert.Equal(t, 1, summary.GiveIns)
			assert.Equal(t, 2, summary.DurationMin)
			assert.Equal(t, "interactive", summary.Source)
		})
	}
}

func TestTUI_LookAwayToggle(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)

	d.PressKey('w')
	assert.True(t, d.Gaze.Away())
	assert.Equal(t, lookAwayAngle, d.Gaze.LookAway().AngleDeg)
	assert.Contains(t, d.View(), "weggeschaut")

	d.PressKey('w')
	assert.False(t, d.Gaze.Away())
	assert.NotContains(t, d.View(), "weggeschaut")
}

func TestTUI_FeedShowsStimuli(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelHigh)
	assert.NotContains(t, d.View(), "REIZE")

	d.Step(30 * time.Second)

	assert.NotZero(t, d.Feed.Seq())
	assert.Contains(t, d.View(), "REIZE")
}

func TestTUI_HelpToggle(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)
	assert.NotContains(t, d.View(), "add task")

	d.PressKey('?')
	assert.Contains(t, d.View(), "add task")

	d.PressKey('?')
	assert.NotContains(t, d.View(), "add task")
}

func TestTUI_IgnoresKeysAfterStop(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)
	d.PressKey('q')
	require.True(t, d.Quitting)

	// The driver drops sends once quitting; the model itself also ignores keys.
	updated, cmd := d.model().Update(keyRune('g'))
	assert.Nil(t, cmd)
	assert.True(t, updated.(sessionModel).done)
}

func TestFeedRenderer_Describe(t *testing.T) {
	f := newFeedRenderer()

	require.NoError(t, f.SpawnEffect(port.SpawnEffect{Kind: domain.VisualTint}))
	require.NoError(t, f.SpawnEffect(port.SpawnEffect{
		Kind:    domain.VisualLargePopup,
		Content: port.Content{App: "WhatsApp", Sender: "Lerngruppe", Text: "Kommst du?"},
	}))
	require.NoError(t, f.SpawnEffect(port.SpawnEffect{Kind: domain.VisualFlashingLight}))
	require.NoError(t, f.PlaySound(port.PlaySound{Sound: domain.SoundPhoneVibrate, Repeat: 2}))
	require.NoError(t, f.TaskAdded(port.TaskAdded{Text: "Mama zurückrufen"}))
	require.NoError(t, f.ShowMessage(port.ShowMessage{Text: "ignored"}))

	assert.Equal(t, []string{
		"✉ WhatsApp · Lerngruppe · Kommst du?",
		"◌ flashingLight",
		"♪ phoneVibrate ×2",
		"+ Mama zurückrufen",
	}, f.Recent(10))
	assert.Equal(t, []string{"+ Mama zurückrufen"}, f.Recent(1))
	assert.Equal(t, uint64(4), f.Seq())
}

func TestFeedRenderer_AmbientAndDimming(t *testing.T) {
	f := newFeedRenderer()

	require.NoError(t, f.AmbientStart(port.AmbientStart{Env: domain.EnvDesk, Name: "Nachbarschaft"}))
	assert.Equal(t, "Nachbarschaft", f.Ambient())
	assert.Zero(t, f.Seq(), "the loop shows in the header, not the feed")

	require.NoError(t, f.DimScene(port.DimScene{Factor: 0.3, Duration: 700 * time.Millisecond}))
	assert.Equal(t, []string{"◐ Licht gedimmt (700ms)"}, f.Recent(10))

	require.NoError(t, f.AmbientStop())
	assert.Empty(t, f.Ambient())
}

func TestTUI_HeaderShowsAmbientLoop(t *testing.T) {
	d := NewTestDriver(t, domain.EnvDesk, domain.LevelMedium)
	assert.Contains(t, d.View(), "♫ Nachbarschaft")
}

func TestFeedRenderer_Capacity(t *testing.T) {
	f := newFeedRenderer()
	for range feedCapacity + 10 {
		require.NoError(t, f.TaskAdded(port.TaskAdded{Text: "x"}))
	}
	assert.Len(t, f.Recent(1000), feedCapacity)
	assert.Equal(t, uint64(feedCapacity+10), f.Seq())
}
