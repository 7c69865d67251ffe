package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tele "gopkg.in/telebot.v3"

	"taxiservice/api"
	"taxiservice/config"
	"taxiservice/pkg/bot"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/notify"
	"taxiservice/service"
	"taxiservice/storage"
	"taxiservice/storage/memory"
	"taxiservice/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stg, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage", logger.Error(err), logger.String("backend", cfg.StorageBackend))
		os.Exit(1)
	}
	defer stg.Close()

	var teleBot *tele.Bot
	notifier := notify.NewNop()
	if cfg.AdminBotToken != "" {
		teleBot, err = bot.NewTelegram(cfg.AdminBotToken, log)
		if err != nil {
			log.Error("failed to init admin bot", logger.Error(err))
			os.Exit(1)
		}
		notifier = notify.NewTelegram(teleBot, cfg.AdminID, log)
	}

	services := service.New(stg, notifier, service.Options{
		SessionTTL: cfg.SessionTTL,
		BcryptCost: cfg.BcryptCost,
	}, log)

	if teleBot != nil {
		adminBot := bot.New(teleBot, cfg.AdminID, services, log)
		go adminBot.Start()
		defer adminBot.Stop()
	}

	engine, err := api.New(api.Options{
		Config:   cfg,
		Services: services,
		Storage:  stg,
		Log:      log,
	})
	if err != nil {
		log.Error("failed to build router", logger.Error(err))
		os.Exit(1)
	}

	srv := api.NewServer(cfg, engine)
	go func() {
		log.Info("🚀 server is listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Error(err))
	}
}

func openStorage(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		log.Warning("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	case config.StorageBackendPostgres:
		pg, err := postgres.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	return nil, errors.New("unknown storage backend " + cfg.StorageBackend)
}
