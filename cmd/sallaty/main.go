package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/sallaty-client/internal/app"
	"github.com/angelmondragon/sallaty-client/internal/gateway"
	"github.com/angelmondragon/sallaty-client/internal/notifications"
	"github.com/angelmondragon/sallaty-client/internal/session"
	"github.com/angelmondragon/sallaty-client/internal/shortages"
	"github.com/angelmondragon/sallaty-client/pkg/config"
	"github.com/angelmondragon/sallaty-client/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "sallaty"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "sallaty",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	client, err := gateway.NewClient(cfg.API, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build api client", err)
		os.Exit(1)
	}

	sessionCtrl, err := session.NewController(client, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build session controller", err)
		os.Exit(1)
	}
	repo, err := shortages.NewRepository(client, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build shortage repository", err)
		os.Exit(1)
	}
	notifSvc, err := notifications.NewService(client, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build notification service", err)
		os.Exit(1)
	}

	application, err := app.New(app.Params{
		Logger:        logg,
		Session:       sessionCtrl,
		Shortages:     repo,
		Notifications: notifSvc,
		PollInterval:  cfg.Notifications.UnreadPollInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build application", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "starting sallaty client")

	term := newTerminal(application, client, os.Stdin, os.Stdout)
	if err := term.Run(ctx); err != nil {
		logg.Error(ctx, "terminal loop stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sallaty client shutting down gracefully")
}
