package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/careergraph/internal/cli"
	httpAdapter "github.com/aretw0/careergraph/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the graph, its layouts and live reveal sessions as a JSON API over HTTP.
Each session is one view with its own timers; updates stream over SSE.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadStack(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		addr := st.Config.HTTP.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}
		watch, _ := cmd.Flags().GetBool("watch")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		sessions := st.Sessions()
		server := httpAdapter.NewServer(st.Engine, sessions,
			httpAdapter.WithLogger(st.Logger),
			httpAdapter.WithMetricsHandler(st.Metrics.Handler()),
		)

		if watch {
			go func() {
				err := cli.WatchAndReload(ctx, st.Engine, st.Logger, func(id string) {
					sessions.Reset(st.Engine.Graph(), st.Engine.Layouter())
					server.Streams.Broadcast(httpAdapter.ReloadTopic, id)
				})
				if err != nil {
					st.Logger.Warn("Hot reload disabled", "err", err)
				}
			}()
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			// Streams end with the signal context so Shutdown does not wait on them.
			BaseContext: func(net.Listener) context.Context { return ctx },
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			st.Logger.Info("Starting careergraph server", "addr", srv.Addr, "fingerprint", st.Engine.Fingerprint())
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			st.Logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			timeout := st.Config.HTTP.ShutdownTimeout
			shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			sessions.CloseAll(shutdownCtx)
			if err := srv.Shutdown(shutdownCtx); err != nil {
				st.Logger.Error("Graceful shutdown did not complete", "timeout", timeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			st.Logger.Info("careergraph server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the achievement library on file changes")
}
