package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/feedkit/gdata.go/pkg/web"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve searches over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := web.RendererFor(format)
			if err != nil {
				return err
			}
			_, builder, err := a.client()
			if err != nil {
				return err
			}

			handler := web.NewHandler(builder, renderer,
				web.WithLogger(a.log.Logger),
				web.WithCache(a.cfg.CacheTTL),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a, handler)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "response format (json or yaml)")
	return cmd
}

func serve(ctx context.Context, a *app, handler http.Handler) error {
	server := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.log.Logger.Info().Str("listen", a.cfg.Listen).Msg("serving")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.log.Logger.Info().Msg("shutting down")
	return server.Shutdown(shutdownCtx)
}
