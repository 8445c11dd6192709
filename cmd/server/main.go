package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/pinstore/internal/config"
	"github.com/JonMunkholm/pinstore/internal/core"
	"github.com/JonMunkholm/pinstore/internal/logging"
	"github.com/JonMunkholm/pinstore/internal/metrics"
	"github.com/JonMunkholm/pinstore/internal/store"
	"github.com/JonMunkholm/pinstore/internal/web"
)

func main() {
	// Load .env file if it exists; real environment variables take precedence.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx := context.Background()

	recordStore, closeStore, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to open record store", "mode", cfg.Storage.Mode, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if !recordStore.Durable() {
		slog.Warn("records are kept in memory only and will be lost on restart", "mode", recordStore.Mode())
	}

	service, err := core.NewService(recordStore)
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(service, metrics.New(), cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting",
		"addr", cfg.Server.Addr(),
		"storage_mode", recordStore.Mode(),
		"durable", recordStore.Durable(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		closeStore()
		os.Exit(1)
	}

	<-done
	slog.Info("server stopped")
}
