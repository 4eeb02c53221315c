package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cashbook/internal/backend"
	"cashbook/internal/cli"
	apphttp "cashbook/internal/http"
	"cashbook/internal/ledger"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("cashbook")
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, cleanup, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open store backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Store cleanup error", "error", err)
		}
	}()

	opts := []ledger.Option{}
	eventsClient := cli.ConnectEvents(logger, cfg)
	if eventsClient != nil {
		defer eventsClient.Close()
		opts = append(opts, ledger.WithPublisher(eventsClient))
	}

	service := ledger.NewService(st, logger, opts...)

	if cfg.AdminPassword != "" {
		hash, err := apphttp.HashPassword(cfg.AdminPassword)
		if err != nil {
			logger.Error("Failed to hash admin password", "error", err)
			os.Exit(1)
		}
		if _, err := service.SeedUser(ctx, cfg.AdminUsername, hash); err != nil {
			logger.Error("Failed to seed admin user", "error", err, "username", cfg.AdminUsername)
			os.Exit(1)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, service, st, cfg.SessionTTL, logger)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting cashbook server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
