package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/fakeapi"
	"tasksync/internal/service"
)

const shutdownTimeout = 5 * time.Second

func init() {
	Register(&ServeCmd{})
}

// ServeCmd runs a local stand-in for the remote task service.
type ServeCmd struct {
	addr string
	seed int
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Serve an in-memory task collection" }
func (c *ServeCmd) Usage() string      { return "tasksync serve [--addr <host:port>] [--seed <n>]" }
func (c *ServeCmd) NeedsService() bool { return false }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "127.0.0.1:3000", "")
	fs.IntVar(&c.seed, "seed", fakeapi.DefaultSeed, "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if c.seed < 0 {
		fmt.Fprintf(errOut, "error: invalid seed: %d\n", c.seed)
		return exitcode.UserError
	}

	logger := cfg.NewLogger(errOut)
	api := fakeapi.New(fakeapi.DefaultPrefix, fakeapi.WithLogger(logger))
	api.Seed(c.seed)

	ln, err := net.Listen("tcp", c.addr)
	if err != nil {
		fmt.Fprintf(errOut, "error: listen %s: %v\n", c.addr, err)
		return exitcode.UserError
	}

	srv := &http.Server{
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	if !cfg.Quiet {
		fmt.Fprintf(out, "serving http://%s%s\n", ln.Addr(), fakeapi.DefaultPrefix)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(errOut, "error: serve: %v\n", err)
			return exitcode.BackendError
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}
	return exitcode.Success
}
