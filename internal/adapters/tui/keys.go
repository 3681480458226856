package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains the keyboard shortcuts of the main screen.
type KeyMap struct {
	Toggle       key.Binding
	Reset        key.Binding
	Skip         key.Binding
	Add          key.Binding
	SelectNext   key.Binding
	Complete     key.Binding
	CompleteNext key.Binding
	Return       key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	Up           key.Binding
	Down         key.Binding
	SwitchList   key.Binding
	Filter       key.Binding
	Settings     key.Binding
	Presets      key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// NewKeyMap creates the default key bindings.
func NewKeyMap() KeyMap {
	return KeyMap{
		Toggle:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Skip:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip break")),
		Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		SelectNext:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next task")),
		Complete:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		CompleteNext: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "complete + next")),
		Return:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "return to queue")),
		MoveUp:       key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:     key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		SwitchList:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
		Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Settings:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "settings")),
		Presets:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "presets")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the bottom bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Add, k.SelectNext, k.Complete, k.Help, k.Quit}
}

// FullHelp returns every binding grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Skip, k.Settings, k.Presets},
		{k.Add, k.SelectNext, k.Complete, k.CompleteNext, k.Return},
		{k.Up, k.Down, k.MoveUp, k.MoveDown, k.SwitchList, k.Filter},
		{k.Help, k.Quit},
	}
}
