package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"tasksync/internal/config"
	"tasksync/internal/controller"
	"tasksync/internal/exitcode"
	"tasksync/internal/notify"
	"tasksync/internal/service"
	"tasksync/internal/transport"
	"tasksync/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd runs the interactive task list.
type UICmd struct {
	limit int
}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return nil }
func (c *UICmd) Synopsis() string   { return "Open the interactive task list" }
func (c *UICmd) Usage() string      { return "tasksync ui [--limit <n>]" }
func (c *UICmd) NeedsService() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.limit, "limit", 0, "")
}

// OpenLog implements LogOpener. The terminal belongs to the UI, so records
// go to the log file.
func (c *UICmd) OpenLog(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}
	return cfg.NewLogger(f), f, nil
}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	limit := c.limit
	if limit <= 0 {
		limit = cfg.FetchLimit
	}

	center := notify.NewCenter(cfg.NotifyTimeout.Duration)
	tr := transport.New(svc, center,
		transport.WithLogger(cfg.Log),
		transport.WithUserID(cfg.UserID),
	)
	ctrl := controller.New(tr, limit, controller.WithLogger(cfg.Log))

	model := tui.New(ctx, ctrl, center)
	if err := tui.Run(ctx, model, in, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
