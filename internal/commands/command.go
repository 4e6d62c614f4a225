// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log/slog"

	"tasksync/internal/config"
	"tasksync/internal/notify"
	"tasksync/internal/service"
	"tasksync/internal/transport"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsService returns true if the command talks to the task service.
	// Commands like help, version and serve return false.
	NeedsService() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, settings, logger).
	// svc is nil if NeedsService() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int
}

// LogOpener is implemented by commands that log somewhere other than stderr.
// The dispatcher closes the returned closer after Run.
type LogOpener interface {
	OpenLog(cfg *config.Config) (*slog.Logger, io.Closer, error)
}

// newTransport builds a Transport whose notifications are printed to errOut.
// The returned Writer counts them, so callers can tell a failed fetch from an
// empty one.
func newTransport(cfg *config.Config, svc service.Service, errOut io.Writer) (*transport.Transport, *notify.Writer) {
	notes := notify.NewWriter(errOut)
	tr := transport.New(svc, notes,
		transport.WithLogger(cfg.Log),
		transport.WithUserID(cfg.UserID),
	)
	return tr, notes
}
