package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
// Deletion is two-step: the id is confirmed on stdin unless --yes is given.
type RmCmd struct {
	yes bool
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "tasksync rm [--yes] <id>" }
func (c *RmCmd) NeedsService() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	id, _, code := parseID(args, errOut)
	if code != exitcode.Success {
		return code
	}

	if !c.yes && !confirm(in, errOut, fmt.Sprintf("delete task %s? [y/N] ", id)) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "cancelled")
		}
		return exitcode.Success
	}

	tr, _ := newTransport(cfg, svc, errOut)
	if !tr.DeleteTask(ctx, id) {
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// confirm prints prompt and reads one line; only "y" or "yes" confirms.
func confirm(in io.Reader, prompt io.Writer, question string) bool {
	if in == nil {
		return false
	}
	fmt.Fprint(prompt, question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
