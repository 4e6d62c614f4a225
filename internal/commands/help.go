package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasksync help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, usageText(DefaultRegistry))
	return exitcode.Success
}

// usageText lists every command in r with its synopsis and aliases.
func usageText(r *Registry) string {
	var b strings.Builder
	b.WriteString("Usage:\n  tasksync [command] [common flags] [args]\n\n")
	b.WriteString("With no command, tasksync opens the interactive task list.\n\n")
	b.WriteString("Commands:\n")

	tw := tabwriter.NewWriter(&b, 0, 4, 3, ' ', 0)
	for _, cmd := range r.All() {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), synopsis)
	}
	tw.Flush()

	b.WriteString(commonFlags)
	return b.String()
}

const commonFlags = `
Common flags:
  --config <dir>   Override config directory
  --api <url>      Override the task collection URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr (ui: to the log file)
`
