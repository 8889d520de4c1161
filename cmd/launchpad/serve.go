package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"launchpad/internal/async"
	serverhttp "launchpad/internal/server/http"
	"launchpad/internal/store"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			a, err := bootstrap(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			events, err := store.NewEventStore(a.cfg.Store.MaxEvents)
			if err != nil {
				return err
			}

			if !opts.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			router := serverhttp.NewRouter(serverhttp.RouterDeps{
				Generator: a.generator,
				Store:     events,
				Breaker:   a.breaker,
				Tracer:    a.tracer,
				Version:   Version,
			}, a.cfg.Server)

			server := &http.Server{
				Addr:              addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			async.Go(a.logger, "serve.listen", func() {
				a.logger.Info("Listening on %s", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			})

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down")
			shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
			defer stop()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
