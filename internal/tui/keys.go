package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Focus     key.Binding
	Add       key.Binding
	Edit      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Save      key.Binding
	Reload    key.Binding
	Dismiss   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Focus:     key.NewBinding(key.WithKeys("tab", "a", "i"), key.WithHelp("tab", "new task")),
		Add:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:    key.NewBinding(key.WithKeys("x", " ", "space"), key.WithHelp("x", "done")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Confirm:   key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete it")),
		Cancel:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "keep it")),
		Save:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// contextHelp is the help.KeyMap for the current focus and row state.
type contextHelp []key.Binding

func (h contextHelp) ShortHelp() []key.Binding  { return h }
func (h contextHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (m Model) helpKeys() contextHelp {
	k := m.keys
	switch m.focus {
	case focusInput:
		esc := key.NewBinding(key.WithKeys("esc"), key.WithHelp("tab/esc", "list"))
		return contextHelp{k.Add, esc}
	case focusEdit:
		esc := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
		return contextHelp{k.Save, esc}
	}

	if r, ok := m.selectedRow(); ok && r.ControlsDisabled() {
		return contextHelp{k.Confirm, k.Cancel}
	}
	h := contextHelp{k.Up, k.Down, k.Edit, k.Toggle, k.Delete, k.Focus, k.Reload}
	if len(m.center.Active()) > 0 {
		h = append(h, k.Dismiss)
	}
	return append(h, k.Quit)
}
