package ui

import "charm.land/bubbles/v2/key"

type browseKeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Open  key.Binding
	Back  key.Binding
	Home  key.Binding
	Stats key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Open, k.Back, k.Stats, k.Help, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Open, k.Back}, {k.Home, k.Stats, k.Help, k.Quit}}
}

type lessonKeyMap struct {
	PrevControl key.Binding
	NextControl key.Binding
	Decrease    key.Binding
	Increase    key.Binding
	Complete    key.Binding
	Reset       key.Binding
	Back        key.Binding
	Home        key.Binding
	Stats       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func (k lessonKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextControl, k.Decrease, k.Increase, k.Complete, k.Back, k.Help}
}

func (k lessonKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevControl, k.NextControl, k.Decrease, k.Increase},
		{k.Complete, k.Reset, k.Back, k.Home},
		{k.Stats, k.Help, k.Quit},
	}
}

type statsKeyMap struct {
	Close key.Binding
	Quit  key.Binding
}

func (k statsKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Close, k.Quit} }

func (k statsKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Close, k.Quit}} }

func newBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Prev:  key.NewBinding(key.WithKeys("up", "left", "k", "shift+tab"), key.WithHelp("↑/←", "prev")),
		Next:  key.NewBinding(key.WithKeys("down", "right", "j", "tab"), key.WithHelp("↓/→", "next")),
		Open:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:  key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Home:  key.NewBinding(key.WithKeys("h", "home"), key.WithHelp("h", "home")),
		Stats: key.NewBinding(key.WithKeys("s", "f2"), key.WithHelp("s", "session")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+q", "q"), key.WithHelp("q", "quit")),
	}
}

func newLessonKeyMap() lessonKeyMap {
	return lessonKeyMap{
		PrevControl: key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑", "prev control")),
		NextControl: key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("tab/↓", "next control")),
		Decrease:    key.NewBinding(key.WithKeys("left", "-"), key.WithHelp("←", "decrease")),
		Increase:    key.NewBinding(key.WithKeys("right", "+", "="), key.WithHelp("→", "increase")),
		Complete:    key.NewBinding(key.WithKeys("c", "enter"), key.WithHelp("c", "mark complete")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Back:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Home:        key.NewBinding(key.WithKeys("h", "home"), key.WithHelp("h", "home")),
		Stats:       key.NewBinding(key.WithKeys("s", "f2"), key.WithHelp("s", "session")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

func newStatsKeyMap() statsKeyMap {
	return statsKeyMap{
		Close: key.NewBinding(key.WithKeys("esc", "s", "f2", "q"), key.WithHelp("esc", "close")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}
