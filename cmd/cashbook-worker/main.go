package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"cashbook/internal/backend"
	"cashbook/internal/cli"
	"cashbook/internal/events"
	"cashbook/internal/export"
	"cashbook/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger("cashbook-worker")
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

	eventsClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}
	defer eventsClient.Close()

	var appender export.RowAppender
	if cfg.SheetsExportEnabled() {
		sheets, err := export.NewSheetsAppender(ctx, cfg)
		if err != nil {
			logger.Error("Failed to initialize sheets export", "error", err)
			os.Exit(1)
		}
		appender = sheets
		logger.Info("Exporting to Google Sheets", "sheet", cfg.GoogleSheetName)
	} else {
		appender = export.NewMemoryAppender()
		logger.Warn("No spreadsheet configured, exporting to memory only")
	}

	w := worker.NewExportWorker(eventsClient, st, appender, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.Run(gctx)
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
