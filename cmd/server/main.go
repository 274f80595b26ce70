package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

func main() {
	logger := logrus.New()

	if err := config.LoadDotEnv(); err != nil {
		logger.WithError(err).Fatal("failed to load .env")
	}
	if err := config.SetupLogging(logger, mines.Log, session.Log); err != nil {
		logger.WithError(err).Fatal("failed to setup logging")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts, err := app.OptionsFromEnv()
	if err != nil {
		logger.WithError(err).Fatal("failed to read config")
	}

	if err := app.New(logger, opts).Start(ctx); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
	logger.Info("server stopped")
}
