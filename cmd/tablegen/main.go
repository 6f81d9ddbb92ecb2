package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"shipping-table-generator/internal/tablegen/app"
	"shipping-table-generator/internal/tablegen/app/config"
)

var logLVL slog.Level = slog.LevelInfo

func init() {
	if _, debug := os.LookupEnv("DEBUG"); debug {
		logLVL = slog.LevelDebug
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, ctxCancel := context.WithCancel(context.Background())
	defer ctxCancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLVL}))

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-signalCh:
			logger.Info("captured closing signal ctrl+C")
			ctxCancel()
		case <-ctx.Done():
		}
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		return err
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", slog.Any("error", err))
		return err
	}

	if cfg.LogLevel == "debug" {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	app, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to build app", slog.Any("error", err))
		return err
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("batch run failed", slog.Any("error", err))
		return err
	}

	return nil
}
