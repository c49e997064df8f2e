package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/bnema/invscan/internal/adapters/inventory/memserver"
	"github.com/spf13/cobra"
)

const devServerShutdownTimeout = 5 * time.Second

func newDevServerCmd(app *app) *cobra.Command {
	var listen string
	var token string

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run an in-memory inventory server with demo items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			inventory := memserver.New(memserver.Options{Token: token, Now: app.now})
			inventory.Seed()

			listener, err := net.Listen("tcp", listen)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", listen, err)
			}

			server := &http.Server{
				Handler:           inventory.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- server.Serve(listener)
			}()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Inventory dev server listening on http://%s (session %q)\n", listener.Addr(), "demo")
			app.logger.Info("dev server started", "addr", listener.Addr().String(), "auth", token != "")

			select {
			case err := <-serveErr:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), devServerShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown dev server: %w", err)
			}
			app.logger.Info("dev server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8085", "Listen address")
	cmd.Flags().StringVar(&token, "token", "", "Require this Bearer token")

	return cmd
}
