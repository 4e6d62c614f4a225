// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasksync/internal/service"
)

const (
	doneMark = "[x]"
	openMark = "[ ]"
)

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  {MARK} #{ID}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s #%s  %s\n", num, Mark(task.Completed), task.ID, NormalizeTitle(task.Title))
}

// FormatResult formats the confirmation line of a mutating command.
func FormatResult(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "ok #%s\n", task.ID)
}

// Mark returns the completion marker for a task.
func Mark(completed bool) string {
	if completed {
		return doneMark
	}
	return openMark
}

// NormalizeTitle normalizes a task title for single-line display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
