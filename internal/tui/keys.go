package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// listKeys holds key bindings for the contact list.
type listKeys struct {
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Search key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns the list bindings for the help bar.
func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Search, k.Reload, k.Quit}
}

// FullHelp returns the list bindings grouped for expanded help.
func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Edit, k.Delete},
		{k.Search, k.Reload, k.Quit},
	}
}

// formKeys holds key bindings for the create/edit form.
type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Save   key.Binding
	Cancel key.Binding
}

// ShortHelp returns the form bindings for the help bar.
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Save, k.Cancel}
}

// FullHelp returns the form bindings grouped for expanded help.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Submit, k.Save, k.Cancel}}
}

// searchKeys holds key bindings while the search box has focus.
type searchKeys struct {
	Done  key.Binding
	Clear key.Binding
}

// ShortHelp returns the search bindings for the help bar.
func (k searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Done, k.Clear}
}

// FullHelp returns the search bindings grouped for expanded help.
func (k searchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Done, k.Clear}}
}

// confirmKeys holds key bindings for the confirm prompt.
type confirmKeys struct {
	Yes    key.Binding
	AnyKey key.Binding
}

// ShortHelp returns the confirm bindings for the help bar.
func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.AnyKey}
}

// FullHelp returns the confirm bindings grouped for expanded help.
func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Yes, k.AnyKey}}
}

type keyMap struct {
	list    listKeys
	form    formKeys
	search  searchKeys
	confirm confirmKeys
}

func defaultKeyMap() keyMap {
	return keyMap{
		list: listKeys{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			Add: key.NewBinding(
				key.WithKeys("a"),
				key.WithHelp("a", "add"),
			),
			Edit: key.NewBinding(
				key.WithKeys("e", "enter"),
				key.WithHelp("e", "edit"),
			),
			Delete: key.NewBinding(
				key.WithKeys("d"),
				key.WithHelp("d", "delete"),
			),
			Search: key.NewBinding(
				key.WithKeys("/"),
				key.WithHelp("/", "search"),
			),
			Reload: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "reload"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		form: formKeys{
			Next: key.NewBinding(
				key.WithKeys("tab", "down"),
				key.WithHelp("tab", "next field"),
			),
			Prev: key.NewBinding(
				key.WithKeys("shift+tab", "up"),
				key.WithHelp("shift+tab", "previous"),
			),
			Submit: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "next / save"),
			),
			Save: key.NewBinding(
				key.WithKeys("ctrl+s"),
				key.WithHelp("ctrl+s", "save"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
		search: searchKeys{
			Done: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "done"),
			),
			Clear: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "clear"),
			),
		},
		confirm: confirmKeys{
			Yes: key.NewBinding(
				key.WithKeys("y", "Y"),
				key.WithHelp("y", "confirm"),
			),
			// Display only; any key other than y cancels in Update.
			AnyKey: key.NewBinding(
				key.WithKeys("any"),
				key.WithHelp("any other key", "cancel"),
			),
		},
	}
}

// helpBindings returns the help.KeyMap for the current mode
func (k keyMap) helpBindings(m mode) help.KeyMap {
	switch m {
	case modeForm:
		return k.form
	case modeSearch:
		return k.search
	case modeConfirm:
		return k.confirm
	default:
		return k.list
	}
}
