package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thepsychonaut421/financio-recon/internal/api"
	"github.com/thepsychonaut421/financio-recon/internal/application/service"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/config"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/logging"
	"github.com/thepsychonaut421/financio-recon/internal/infrastructure/storage"
)

// RunServe runs the API server until SIGINT/SIGTERM.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := service.NewReconcileService(store, logger, cfg.Reconcile.Workers)

	port := cfg.Server.Port
	if flags.Port != 0 {
		port = flags.Port
	}
	server := api.NewServer(api.Config{
		Port:           port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, svc, store, logger)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
	}()

	// Start server (blocks until shutdown)
	return server.Start()
}
