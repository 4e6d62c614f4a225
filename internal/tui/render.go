package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"tasksync/internal/output"
	"tasksync/internal/tasklist"
)

const (
	loadingText   = "Loading..."
	emptyText     = "No tasks. Press tab to add one."
	confirmPrompt = "Delete this task?"
	confirmYes    = "[y] delete it"
	confirmNo     = "[n] just kidding, keep it"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tasks"))
	b.WriteString("\n\n")

	for _, n := range m.center.Active() {
		b.WriteString(bannerStyle.Render(n.Message))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.ctrl.Loading() {
		b.WriteString(m.spinner.View() + " " + statusStyle.Render(loadingText))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.helpKeys()))
	return b.String()
}

func (m Model) renderList() string {
	rows := m.ctrl.List().Rows()
	if len(rows) == 0 {
		return statusStyle.Render(emptyText) + "\n"
	}

	var b strings.Builder
	for i, r := range rows {
		selected := m.focus != focusInput && i == m.cursor
		editor := ""
		if r.State == tasklist.Editing && r.Key == m.editKey {
			editor = m.editor.View()
		}
		b.WriteString(renderRow(r, selected, editor, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow renders one row. editor is the edit box when the row is being
// edited. A width of zero disables truncation.
func renderRow(r tasklist.Row, selected bool, editor string, width int) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}

	mark := output.Mark(r.Task.Completed)
	if r.Task.Completed {
		mark = doneMarkStyle.Render(mark)
	}
	id := idStyle.Render("#" + r.Task.ID.String())

	if r.State == tasklist.Editing {
		status := statusStyle.Render("enter save · esc cancel")
		if r.Pending {
			status = statusStyle.Render("saving...")
		}
		return fmt.Sprintf("%s%s %s  %s", cursor, mark, editor, status)
	}

	title := output.NormalizeTitle(r.Task.Title)
	if width > 0 {
		if room := width - 40; room > 10 {
			title = runewidth.Truncate(title, room, "…")
		}
	}
	if r.Task.Completed {
		title = doneStyle.Render(title)
	}

	line := fmt.Sprintf("%s%s %s %s  %s", cursor, mark, title, id, renderControls(r))
	if r.State != tasklist.ConfirmingDelete {
		return line
	}

	prompt := dangerStyle.Render(confirmPrompt) + "  " +
		controlStyle.Render(confirmYes) + "  " + controlStyle.Render(confirmNo)
	if r.Pending {
		prompt = statusStyle.Render("Deleting...")
	}
	return line + "\n      " + prompt
}

func renderControls(r tasklist.Row) string {
	if r.ControlsHidden() {
		return ""
	}
	style := controlStyle
	if r.ControlsDisabled() {
		style = disabledStyle
	}
	toggle := "[x] done"
	if r.Task.Completed {
		toggle = "[x] undo"
	}
	return style.Render("[e] edit  " + toggle + "  [d] delete")
}
