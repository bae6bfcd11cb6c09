package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	adapthttp "vibematrix/internal/adapter/http"
)

const shutdownTimeout = 5 * time.Second

func (r *root) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the journal aggregates as read-only JSON",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:7777)")
	cmd.RunE = r.run(func(ctx context.Context, e *env, _ []string) error {
		if addr == "" {
			addr = e.Config.Serve.Addr
		}
		return serve(ctx, e, addr)
	})
	return cmd
}

func serve(ctx context.Context, e *env, addr string) error {
	srv := adapthttp.New(e.Journal, e.Logger).WithHistoryLimit(e.Config.HistoryLimit)
	if e.WatchPath != "" {
		go func() {
			if err := srv.Watch(ctx, e.WatchPath); err != nil {
				e.Logger.Warn("log watcher stopped", zap.Error(err))
			}
		}()
	}

	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			e.Logger.Warn("shutdown", zap.Error(err))
		}
	}()

	e.p.Success("🌐 Serving your vibes on http://%s/api/dashboard", addr)
	e.p.Note("Press CTRL+C to stop.")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
