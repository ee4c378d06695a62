package main

import (
	"context"
	"fmt"
	"io"

	"github.com/akyairhashvil/kamreen/internal/alert"
	"github.com/akyairhashvil/kamreen/internal/config"
	"github.com/akyairhashvil/kamreen/internal/database"
	"github.com/akyairhashvil/kamreen/internal/engine"
	"github.com/akyairhashvil/kamreen/internal/metrics"
	"github.com/akyairhashvil/kamreen/internal/storage"
	"github.com/akyairhashvil/kamreen/internal/storage/bolt"
	"github.com/akyairhashvil/kamreen/internal/storage/file"
	"github.com/akyairhashvil/kamreen/internal/storage/redis"
	"github.com/akyairhashvil/kamreen/internal/util"
	"github.com/rs/zerolog"
)

// app is one wired engine with its storage and alert surface.
type app struct {
	cfg        *config.Config
	logger     zerolog.Logger
	store      storage.Store
	writer     *storage.AsyncWriter
	metrics    *metrics.Metrics
	dispatcher *alert.Dispatcher
	engine     *engine.Engine
}

type appOptions struct {
	Logger zerolog.Logger
	// Bell receives the terminal bell; nil keeps the alert silent.
	Bell io.Writer
}

// newApp opens storage, wires the engine and hydrates it from the saved state.
func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	logger := opts.Logger

	store, err := openStorage(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Debug().
		Str("type", cfg.Storage.Type).
		Str("path", cfg.Storage.Path).
		Msg("storage initialized")

	notifier, err := buildNotifier(cfg.Notify, logger)
	if err != nil {
		util.LogError(logger, "failed to close storage", store.Close())
		return nil, err
	}

	m := metrics.New()
	writer := storage.NewAsyncWriter(store, logger, config.PersistFlushTimeout, func(error) {
		m.IncPersistErrors()
	})

	var bell *alert.BellPlayer
	if opts.Bell != nil {
		bell = alert.NewBellPlayer(opts.Bell, cfg.BellInterval(), cfg.Sound.Muted, logger)
	}
	dispatcher := alert.NewDispatcher(alert.DispatcherOptions{
		Bell:     bell,
		Notifier: notifier,
		Logger:   logger,
	})

	eng := engine.New(engine.Options{
		AlarmInterval:   cfg.AlarmInterval(),
		FilterGrace:     cfg.FilterGrace(),
		FilterThreshold: cfg.Alarm.FilterThreshold,
		Effects:         dispatcher,
		Loader:          store,
		Writer:          writer,
		Metrics:         m,
		Logger:          logger,
	})
	eng.Subscribe(engine.NewTransitionLogger(logger).Observe)

	a := &app{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		writer:     writer,
		metrics:    m,
		dispatcher: dispatcher,
		engine:     eng,
	}
	if err := eng.Hydrate(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return a, nil
}

// Close waits for notifications, flushes the last snapshot and closes storage.
func (a *app) Close() {
	a.dispatcher.Close()
	a.writer.Close()
	util.LogError(a.logger, "failed to close storage", a.store.Close())
}

func openStorage(cfg *config.Config, logger zerolog.Logger) (storage.Store, error) {
	switch cfg.Storage.Type {
	case config.StorageSQLite:
		db, err := database.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.StorageFile:
		return file.New(cfg.Storage.Path, logger), nil
	case config.StorageBolt:
		store, err := bolt.Open(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageRedis:
		store, err := redis.Open(cfg.Storage.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}

// buildNotifier returns the configured remote notifiers, or nil when none are set.
func buildNotifier(cfg config.NotifyConfig, logger zerolog.Logger) (alert.Notifier, error) {
	var notifiers []alert.Notifier
	if cfg.SlackWebhookURL != "" {
		notifiers = append(notifiers, alert.NewSlackNotifier(logger, cfg.SlackWebhookURL))
	}
	webhook, err := alert.NewWebhookNotifier(logger, cfg.WebhookURL, cfg.WebhookTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize webhook notifier: %w", err)
	}
	if webhook != nil {
		notifiers = append(notifiers, webhook)
	}
	if len(notifiers) == 0 {
		return nil, nil
	}
	return alert.NewMultiNotifier(notifiers...), nil
}
