package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Filter   key.Binding
	MarkAll  key.Binding
	Clear    key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Search   key.Binding
	Tag      key.Binding
	Submit   key.Binding
	Reload   key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/toggle")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		MarkAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "resolve all")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
		NextPage: key.NewBinding(key.WithKeys("]", "right"), key.WithHelp("]", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("[", "left"), key.WithHelp("[", "prev page")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Tag:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "by tag")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Confirm:  key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) projectHelp() []key.Binding {
	return []key.Binding{k.Select, k.New, k.Edit, k.Delete, k.PrevPage, k.NextPage, k.Search, k.Tag, k.Reload, k.Quit}
}

func (k keyMap) taskHelp() []key.Binding {
	return []key.Binding{k.Select, k.New, k.Edit, k.Delete, k.Filter, k.MarkAll, k.Clear, k.Cancel, k.Quit}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}
