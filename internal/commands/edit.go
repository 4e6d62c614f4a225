package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/output"
	"tasksync/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"rename"} }
func (c *EditCmd) Synopsis() string   { return "Change a task title" }
func (c *EditCmd) Usage() string      { return "tasksync edit <id> <title...>" }
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	id, rest, code := parseID(args, errOut)
	if code != exitcode.Success {
		return code
	}

	title := strings.TrimSpace(strings.Join(rest, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	tr, _ := newTransport(cfg, svc, errOut)
	task, ok := tr.UpdateTask(ctx, id, service.TitlePatch(title))
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

// parseID parses the task id argument and reports usage errors on errOut.
func parseID(args []string, errOut io.Writer) (service.TaskID, []string, int) {
	id, rest, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return "", nil, exitcode.UserError
	}
	return id, rest, exitcode.Success
}
