package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/dirplay/internal/session"
)

type keyMap struct {
	Next     key.Binding
	Previous key.Binding
	Activate key.Binding
	Leave    key.Binding
	Pause    key.Binding
	Stop     key.Binding
	Shuffle  key.Binding
	Quit     key.Binding
}

var defaultKeys = keyMap{
	Next:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next")),
	Previous: key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev")),
	Activate: key.NewBinding(key.WithKeys("l", "enter"), key.WithHelp("l/enter", "open/play")),
	Leave:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "parent")),
	Pause:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "pause")),
	Stop:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop")),
	Shuffle:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "shuffle")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Activate, k.Leave, k.Pause, k.Stop, k.Shuffle, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.Activate, k.Leave},
		{k.Pause, k.Stop, k.Shuffle, k.Quit},
	}
}

// command decodes a key press. Unbound keys report false.
func (k keyMap) command(msg tea.KeyMsg) (session.Command, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return session.Quit, true
	case key.Matches(msg, k.Shuffle):
		return session.ToggleShuffle, true
	case key.Matches(msg, k.Stop):
		return session.Stop, true
	case key.Matches(msg, k.Next):
		return session.SelectNext, true
	case key.Matches(msg, k.Previous):
		return session.SelectPrevious, true
	case key.Matches(msg, k.Leave):
		return session.LeaveDirectory, true
	case key.Matches(msg, k.Activate):
		return session.Activate, true
	case key.Matches(msg, k.Pause):
		return session.PauseOrResume, true
	}
	return 0, false
}
