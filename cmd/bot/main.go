package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kartabot/kartabot/internal/admin"
	"github.com/kartabot/kartabot/internal/bot"
	"github.com/kartabot/kartabot/internal/catalog"
	"github.com/kartabot/kartabot/internal/server"
	"github.com/kartabot/kartabot/internal/state"
	"github.com/kartabot/kartabot/pkg/config"
	"github.com/kartabot/kartabot/pkg/graceful"
	"github.com/kartabot/kartabot/pkg/logger"
	"github.com/kartabot/kartabot/pkg/metrics"
	"github.com/kartabot/kartabot/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Log, cfg.Sentry.Enabled)
	slog.SetDefault(log)

	log.Info("starting card order bot",
		slog.String("env", cfg.AppEnv),
		slog.String("http_port", cfg.Server.Port),
		slog.String("bot_mode", cfg.Bot.Mode),
	)

	if cfg.Sentry.Enabled {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		})
		if err != nil {
			log.Error("failed to initialize sentry", slog.Any("error", err))
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	cat := catalog.New(log)
	if err := cat.LoadFile(cfg.Catalog.Path); err != nil {
		// The bot stays up with an empty catalog and recovers on the next
		// successful reload.
		log.Error("failed to load catalog dataset",
			slog.String("path", cfg.Catalog.Path),
			slog.Any("error", err),
		)
	}
	metrics.SetCatalogSize(cat.Size(), len(cat.Countries()))
	log.Info("catalog loaded",
		slog.Int("offerings", cat.Size()),
		slog.Int("countries", len(cat.Countries())),
	)

	var storage state.Storage = state.NewMemoryStorage()
	var redisClient *redis.Client

	if cfg.Redis.Enabled {
		redisClient, err = redis.New(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				log.Error("error closing redis client", slog.Any("error", cerr))
			}
		}()

		storage = state.NewRedisStorage(redisClient.Client, log)
	}

	var fsm state.StateMachine
	if redisClient != nil {
		fsm = state.NewStateMachine(storage, log, redisClient.Client)
	} else {
		fsm = state.NewStateMachine(storage, log, nil)
	}

	registry := admin.NewRegistry(cfg.Admins.Usernames)
	if registry.Empty() {
		log.Warn("no operator usernames configured, leads will not be delivered")
	}

	b, err := bot.New(*cfg, log, cat, fsm, registry)
	if err != nil {
		log.Error("failed to initialize bot", slog.Any("error", err))
		os.Exit(1)
	}

	srv := server.New(b.Notifier(), cfg.WebApp.Dir, log)
	httpServer := srv.HTTPServer(":" + cfg.Server.Port)
	gracefulServer := graceful.NewServer(log, httpServer, cfg.Server.ShutdownTimeout,
		cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)

	collector := metrics.NewStateCollector(fsm)
	go collector.Run(ctx)

	if cfg.Catalog.Watch {
		watcher := catalog.NewWatcher(cat, cfg.Catalog.Path, log)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Error("catalog watcher stopped", slog.Any("error", err))
			}
		}()
	}

	go b.Start()

	if err := gracefulServer.ListenAndServe(ctx); err != nil {
		log.Error("http server terminated", slog.Any("error", err))
	}

	b.Stop()

	log.Info("card order bot shut down")
}
