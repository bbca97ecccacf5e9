package cli

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// sessionKeys are the bindings of the live session view.
type sessionKeys struct {
	GaveIn   key.Binding
	Refocus  key.Binding
	LookAway key.Binding
	Pause    key.Binding
	Level    key.Binding
	Add      key.Binding
	Toggle   key.Binding
	Remove   key.Binding
	Up       key.Binding
	Down     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var _ help.KeyMap = sessionKeys{}

func defaultSessionKeys() sessionKeys {
	return sessionKeys{
		GaveIn:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "give in")),
		Refocus:  key.NewBinding(key.WithKeys("f", " "), key.WithHelp("f/space", "refocus")),
		LookAway: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "look away/back")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Level:    key.NewBinding(key.WithKeys("0", "1", "2", "3"), key.WithHelp("0-3", "level")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Toggle:   key.NewBinding(key.WithKeys("x", "enter"), key.WithHelp("x", "toggle done")),
		Remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove task")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "stop")),
	}
}

func (k sessionKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.GaveIn, k.Refocus, k.LookAway, k.Pause, k.Help, k.Quit}
}

func (k sessionKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GaveIn, k.Refocus, k.LookAway, k.Pause, k.Level},
		{k.Add, k.Toggle, k.Remove, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}
