package main

import (
	"barcode-scanner/config/setup"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRun(cmd.Context())
		},
	}
}

func serveRun(ctx context.Context) error {
	logger := slog.Default()

	db, err := setup.InitDatabase(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return err
	}

	application := setup.InitApp(db, cfg, logger)

	fiberApp := setup.NewFiberApp(cfg, logger)
	setup.ApplyMiddleware(fiberApp, cfg, logger)
	setup.RegisterRoutes(fiberApp, application)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- fiberApp.Listen(":" + cfg.Port)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
		setup.Shutdown(db, logger)
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	setup.Shutdown(db, logger)
	logger.Info("server stopped")
	return nil
}
