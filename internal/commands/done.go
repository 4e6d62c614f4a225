package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/output"
	"tasksync/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
	Register(&ToggleCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "tasksync done <id>" }
func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	return runSetStatus(ctx, cfg, svc, args, true, out, errOut)
}

// UndoCmd marks a task not completed.
type UndoCmd struct{}

func (c *UndoCmd) Name() string       { return "undo" }
func (c *UndoCmd) Aliases() []string  { return []string{"undone"} }
func (c *UndoCmd) Synopsis() string   { return "Mark a task not completed" }
func (c *UndoCmd) Usage() string      { return "tasksync undo <id>" }
func (c *UndoCmd) NeedsService() bool { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	return runSetStatus(ctx, cfg, svc, args, false, out, errOut)
}

// runSetStatus is the shared implementation for done and undo.
func runSetStatus(ctx context.Context, cfg *config.Config, svc service.Service, args []string, completed bool, out, errOut io.Writer) int {
	id, _, code := parseID(args, errOut)
	if code != exitcode.Success {
		return code
	}

	tr, _ := newTransport(cfg, svc, errOut)
	task, ok := tr.ToggleTaskStatus(ctx, id, completed)
	if !ok {
		return exitcode.BackendError
	}
	if task.ID.IsZero() {
		task.ID = id
	}

	if !cfg.Quiet {
		output.FormatResult(out, task)
	}
	return exitcode.Success
}

// ToggleCmd flips the completed flag of a task.
type ToggleCmd struct {
	limit int
}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return nil }
func (c *ToggleCmd) Synopsis() string   { return "Flip a task between done and not done" }
func (c *ToggleCmd) Usage() string      { return "tasksync toggle [--limit <n>] <id>" }
func (c *ToggleCmd) NeedsService() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.limit, "limit", 0, "")
}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	id, _, code := parseID(args, errOut)
	if code != exitcode.Success {
		return code
	}
	limit := c.limit
	if limit <= 0 {
		limit = cfg.FetchLimit
	}

	tr, notes := newTransport(cfg, svc, errOut)

	// Find the current state, then send its inverse
	current, err := findTask(ctx, tr, notes, id, limit)
	if err != nil {
		if errors.Is(err, errTaskNotFound) {
			fmt.Fprintf(errOut, "error: task not found: %s\n", id)
			return exitcode.UserError
		}
		return exitcode.BackendError
	}

	task, ok := tr.ToggleTaskStatus(ctx, id, !current.Completed)
	if !ok {
		return exitcode.BackendError
	}
	if task.ID.IsZero() {
		task.ID = id
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok #%s %s\n", task.ID, output.Mark(!current.Completed))
	}
	return exitcode.Success
}
