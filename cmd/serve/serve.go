// Package serve implements the serve command.
package serve

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/leak-detector/cmd/root"
	"fjacquet/leak-detector/internal/api"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Start the HTTP API. POST a PDF statement as the multipart field "file"
to /analyze to get its leak report as JSON. GET /health reports liveness.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default: server.address from config)")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	listen := addr
	if listen == "" {
		listen = c.GetConfig().Server.Address
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Serve(ctx, c.NewServer(), listen)
}

// Serve runs server on addr until ctx is done, then shuts it down.
func Serve(ctx context.Context, server *api.Server, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if err := server.Shutdown(); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	root.Log.Info("Server stopped")
	return nil
}
