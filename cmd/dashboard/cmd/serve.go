package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"wallet-dashboard/internal/web"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve the dashboard pages, the JSON API and the filtered exports.

The server listens on 127.0.0.1:8501 unless --addr or DASHBOARD_ADDR says otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr = addr
		}

		handler, err := web.NewHandler(newDashboard())
		if err != nil {
			return err
		}
		server := web.NewServer(cfg.Addr, web.NewRouter(handler, log))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info().
				Str("addr", cfg.Addr).
				Str("data_dir", cfg.DataDir).
				Bool("cache", cfg.Cache).
				Msg("dashboard server starting")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides DASHBOARD_ADDR)")
}
