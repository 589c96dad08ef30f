package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"device_inventory/internal/handlers"
	"device_inventory/internal/server"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.Auth.SigningKey == "" {
		return errors.New("auth.signing_key must be set to serve the API")
	}

	apiHandler := handlers.NewHandler(a.services, a.log, a.metrics)
	srv := server.New(a.cfg.Port, apiHandler.InitRoutes())

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	// idle session reaper
	g.Go(func() error {
		a.services.Reaper.Run(gctx, a.cfg.Session.ReapInterval)
		return nil
	})

	g.Go(func() error {
		a.log.Infow("http_listening", "addr", srv.Addr())
		return srv.Run()
	})

	// graceful shutdown once a signal arrives or the server fails
	g.Go(func() error {
		<-gctx.Done()
		a.log.Infow("shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
