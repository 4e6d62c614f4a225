// Package tui is the interactive task list: a bubbletea program that
// projects the controller's task list and turns key presses into
// controller events.
package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasksync/internal/controller"
	"tasksync/internal/notify"
	"tasksync/internal/tasklist"
)

const maxTitleLen = 500

type focus int

const (
	focusInput focus = iota
	focusList
	focusEdit
)

// eventMsg delivers a completion event from an effect.
type eventMsg struct {
	ev controller.Event
}

// expireMsg asks the model to drop expired notifications.
type expireMsg struct{}

// Model is the bubbletea model of the task list.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	center *notify.Center

	input   textinput.Model
	editor  textinput.Model
	editKey tasklist.Key
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	focus  focus
	cursor int
	width  int

	// runEffect turns an effect into a command; after schedules a message.
	runEffect func(controller.Effect) tea.Cmd
	after     func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// New creates the model. Effects run with ctx.
func New(ctx context.Context, ctrl *controller.Controller, center *notify.Center) Model {
	input := textinput.New()
	input.Prompt = "+ "
	input.Placeholder = "New task"
	input.CharLimit = maxTitleLen
	input.Focus()

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = maxTitleLen

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		center:  center,
		input:   input,
		editor:  editor,
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeys(),
		focus:   focusInput,
		after:   tea.Tick,
	}
	m.runEffect = func(effect controller.Effect) tea.Cmd {
		return func() tea.Msg {
			return eventMsg{ev: effect(ctx)}
		}
	}
	return m
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.dispatch(controller.Load{}), m.spinner.Tick, textinput.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case eventMsg:
		return m.handleEvent(msg.ev)

	case expireMsg:
		m.center.Prune()
		return m, m.expireCmd()

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

// dispatch hands ev to the controller and wraps the resulting effect.
func (m Model) dispatch(ev controller.Event) tea.Cmd {
	effect := m.ctrl.Handle(ev)
	if effect == nil {
		return nil
	}
	return m.runEffect(effect)
}

func (m Model) handleEvent(ev controller.Event) (tea.Model, tea.Cmd) {
	cmd := m.dispatch(ev)

	switch ev := ev.(type) {
	case controller.Added:
		// A failed add keeps the input so the user can retry
		if ev.OK {
			m.input.Reset()
		}
	case controller.Saved:
		if m.focus == focusEdit && m.editKey == ev.Key {
			m.closeEditor()
		}
	case controller.Loaded, controller.Deleted:
		m.clampCursor()
	}

	return m, tea.Batch(cmd, m.expireCmd())
}

// expireCmd schedules pruning for the next notification to expire.
func (m Model) expireCmd() tea.Cmd {
	next, ok := m.center.NextExpiry()
	if !ok {
		return nil
	}
	d := next.Sub(m.center.Now())
	if d < 0 {
		d = 0
	}
	return m.after(d, func(time.Time) tea.Msg { return expireMsg{} })
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg)
	case focusEdit:
		return m.handleEditKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m, m.dispatch(controller.Submit{Title: m.input.Value()})
	case tea.KeyTab, tea.KeyEsc, tea.KeyDown:
		m.input.Blur()
		m.focus = focusList
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, ok := m.ctrl.List().Row(m.editKey)
	if !ok {
		m.closeEditor()
		return m, nil
	}
	if row.Pending {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m, m.dispatch(controller.EditSave{Key: m.editKey, Input: m.editor.Value()})
	case tea.KeyEsc:
		cmd := m.dispatch(controller.EditCancel{Key: m.editKey})
		m.closeEditor()
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, k.Down):
		if m.cursor < m.ctrl.List().Len()-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, k.Reload):
		if m.ctrl.Loading() {
			return m, nil
		}
		return m, tea.Batch(m.dispatch(controller.Load{}), m.spinner.Tick)
	}

	row, ok := m.selectedRow()

	// esc belongs to an open delete prompt; otherwise it clears the oldest banner
	if key.Matches(msg, k.Dismiss) && (!ok || row.State != tasklist.ConfirmingDelete) {
		m.dismissNotification()
		return m, nil
	}

	if !ok {
		if key.Matches(msg, k.Focus) {
			return m, m.focusInput()
		}
		return m, nil
	}

	// While the delete prompt is open only its own controls respond
	if row.State == tasklist.ConfirmingDelete {
		switch {
		case key.Matches(msg, k.Confirm):
			return m, m.dispatch(controller.DeleteConfirm{Key: row.Key})
		case key.Matches(msg, k.Cancel):
			return m, m.dispatch(controller.DeleteCancel{Key: row.Key})
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Focus):
		return m, m.focusInput()
	case key.Matches(msg, k.Edit):
		cmd := m.dispatch(controller.EditStart{Key: row.Key})
		if r, ok := m.ctrl.List().Row(row.Key); ok && r.State == tasklist.Editing {
			return m, tea.Batch(cmd, m.openEditor(r))
		}
		return m, cmd
	case key.Matches(msg, k.Toggle):
		return m, m.dispatch(controller.Toggle{Key: row.Key})
	case key.Matches(msg, k.Delete):
		return m, m.dispatch(controller.DeleteStart{Key: row.Key})
	}
	return m, nil
}

func (m *Model) dismissNotification() {
	if active := m.center.Active(); len(active) > 0 {
		m.center.Dismiss(active[0].ID)
	}
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) openEditor(r tasklist.Row) tea.Cmd {
	m.editKey = r.Key
	m.focus = focusEdit
	m.editor.SetValue(r.Task.Title)
	m.editor.CursorEnd()
	return m.editor.Focus()
}

func (m *Model) closeEditor() {
	m.editor.Blur()
	m.editor.Reset()
	m.editKey = 0
	m.focus = focusList
}

func (m *Model) clampCursor() {
	n := m.ctrl.List().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selectedRow() (tasklist.Row, bool) {
	k, ok := m.ctrl.List().KeyAt(m.cursor)
	if !ok {
		return tasklist.Row{}, false
	}
	return m.ctrl.List().Row(k)
}

// updateInputs forwards other messages (cursor blink) to the focused input.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusEdit:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}
