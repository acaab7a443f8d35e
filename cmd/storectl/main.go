package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"

	"store-dashboard/internal/cli"
	"store-dashboard/internal/config"
	"store-dashboard/internal/observability"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	logCfg := config.LoggerConfig{Level: "warn", Format: "text"}
	if cfg, err := config.Load(); err == nil {
		logCfg = cfg.Logger
	}
	slog.SetDefault(observability.NewLogger(logCfg, os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewApp(version).Execute(ctx); err != nil {
		pterm.Error.Println(err)
		stop()
		os.Exit(1)
	}
}
