package cli

import "github.com/charmbracelet/bubbles/key"

type timerKeyMap struct {
	Study   key.Binding
	Break   key.Binding
	Pause   key.Binding
	Reset   key.Binding
	Species key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultTimerKeys() timerKeyMap {
	return timerKeyMap{
		Study:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "study")),
		Break:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break")),
		Pause:   key.NewBinding(key.WithKeys(" ", "space", "p"), key.WithHelp("space", "pause/resume")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Species: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next plant")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Study, k.Break, k.Pause, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Study, k.Break, k.Pause},
		{k.Reset, k.Species},
		{k.Help, k.Quit},
	}
}
