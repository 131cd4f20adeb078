package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/felixgeelhaar/rehearse/internal/session"
)

// keyMap defines the keyboard shortcuts of the practice screen. Bindings
// that do not apply to the current phase are disabled so help only shows
// what works.
type keyMap struct {
	Submit  key.Binding
	Pause   key.Binding
	ConfUp  key.Binding
	ConfDn  key.Binding
	Next    key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
	Abort   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Pause: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "pause"),
		),
		ConfUp: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("ctrl+↑", "confidence +10"),
		),
		ConfDn: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("ctrl+↓", "confidence -10"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "n"),
			key.WithHelp("enter", "next question"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "practice again"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "abort"),
		),
	}
}

func (k *keyMap) update(s session.State) {
	phase := s.Phase()
	answering := phase == session.PhaseAnswering

	k.Submit.SetEnabled(answering)
	k.Pause.SetEnabled(answering)
	k.ConfUp.SetEnabled(answering)
	k.ConfDn.SetEnabled(answering)
	k.Next.SetEnabled(phase == session.PhaseReviewing)
	k.Restart.SetEnabled(phase == session.PhaseComplete)
	k.Help.SetEnabled(!answering)
	k.Quit.SetEnabled(!answering)

	if s.Paused {
		k.Pause.SetHelp("esc", "resume")
	} else {
		k.Pause.SetHelp("esc", "pause")
	}
	if phase == session.PhaseReviewing && s.Session.CurrentIndex == len(s.Session.Questions)-1 {
		k.Next.SetHelp("enter", "finish")
	} else {
		k.Next.SetHelp("enter", "next question")
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Pause, k.Next, k.Restart, k.Help, k.Quit, k.Abort}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Pause, k.ConfUp, k.ConfDn},
		{k.Next, k.Restart},
		{k.Help, k.Quit, k.Abort},
	}
}
