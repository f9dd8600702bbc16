package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atlas/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server, shut down on SIGINT/SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("api bootstrap failed",
			"event", "bootstrap_api_failed",
			"module", "cmd/api",
			"layer", "platform",
			"error", err,
		)
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			slog.Error("api shutdown failed",
				"event", "bootstrap_api_shutdown_failed",
				"module", "cmd/api",
				"layer", "platform",
				"error", err,
			)
		}
	case err := <-errCh:
		if err != nil {
			slog.Error("api server stopped",
				"event", "bootstrap_api_stopped",
				"module", "cmd/api",
				"layer", "platform",
				"error", err,
			)
			os.Exit(1)
		}
	}
}
