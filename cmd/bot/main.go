package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"homework_notification_bot/internal/app"
	"homework_notification_bot/internal/domain/homework"
	"homework_notification_bot/internal/infra/config"
	idb "homework_notification_bot/internal/infra/database"
	"homework_notification_bot/internal/infra/logger"
	"homework_notification_bot/internal/infra/memstore"
	"homework_notification_bot/internal/infra/practicum"
	"homework_notification_bot/internal/infra/scheduler"
	"homework_notification_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Could not load application configuration: %v", err)
	}

	log, closeLog, err := logger.New(cfg)
	if err != nil {
		logrus.Fatalf("Could not initialize logger: %v", err)
	}
	defer closeLog()

	if !cfg.CheckTokens() {
		log.Fatal("Required environment variables are missing: PRACTICUM_TOKEN, TELEGRAM_TOKEN and TELEGRAM_CHAT_ID must be set")
	}
	log.Infof("Configuration loaded. Environment: %s, RetryPeriod: %s, StateBackend: %s", cfg.Environment, cfg.RetryPeriod, cfg.StateBackend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stateRepo, closeState, err := openStateRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("Could not open state storage: %v", err)
	}
	defer closeState()

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAPIURL, log.WithField("component", "telebot"))
	if err != nil {
		log.Fatalf("Could not create Telegram bot: %v", err)
	}
	notifier := app.NewNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID, cfg.NotifyRatePerSec, log.WithField("component", "notifier"))

	apiClient := practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, cfg.RequestTimeout, log.WithField("component", "practicum"))
	statusService := app.NewStatusServiceImpl(apiClient, notifier, stateRepo, log.WithField("component", "status"), cfg.RetryPeriod)

	runner := scheduler.NewRunner(statusService, log.WithField("component", "scheduler"), cfg.RetryPeriod, cfg.MaxCycles)
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("Poller stopped with error: %v", err)
	}
	log.Info("Application shut down gracefully.")
}

func openStateRepository(ctx context.Context, cfg *config.AppConfig) (homework.StateRepository, func() error, error) {
	switch cfg.StateBackend {
	case config.StateBackendPostgres:
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := idb.NewSQLStateRepository(db, idb.DialectPostgres, cfg.TelegramChatID)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db.Close, nil
	case config.StateBackendSQLite:
		db, err := idb.NewSQLiteConnection(ctx, cfg.StateSQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := idb.NewSQLStateRepository(db, idb.DialectSQLite, cfg.TelegramChatID)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, db.Close, nil
	default:
		return memstore.NewStateRepository(), func() error { return nil }, nil
	}
}
