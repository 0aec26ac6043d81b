package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/failtrack/internal/api/http"
	"github.com/spec-kit/failtrack/internal/api/http/handlers"
	"github.com/spec-kit/failtrack/internal/auth"
	"github.com/spec-kit/failtrack/internal/config"
	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/events"
	"github.com/spec-kit/failtrack/internal/export"
	"github.com/spec-kit/failtrack/internal/locale"
	"github.com/spec-kit/failtrack/internal/notify"
	"github.com/spec-kit/failtrack/internal/observability"
	"github.com/spec-kit/failtrack/internal/persistence"
	"github.com/spec-kit/failtrack/internal/realtime"
	"github.com/spec-kit/failtrack/internal/repository"
	"github.com/spec-kit/failtrack/internal/service"
	"github.com/spec-kit/failtrack/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	broker := persistence.NewMQTT(cfg.MQTT, logger)
	defer broker.Close()

	metrics := observability.NewMetrics()

	dispatcher := events.NewQueueDispatcher(cfg.Notification.QueueSize, logger)
	dispatcher.OnDrop(func(e events.Event) {
		metrics.RecordDroppedEvent(string(e.Category))
	})

	hub := realtime.NewHub(logger, cfg.Notification.SSEBuffer)
	go hub.Run(ctx)

	relayDone, err := notify.NewRedisRelay(redis.Client, redis.Channel, cfg.App.InstanceID, hub, logger).Start(ctx)
	if err != nil {
		logger.Warn("redis relay not started; stream subscribers only see local changes", zap.Error(err))
	} else {
		logger.Info("redis relay started", zap.String("channel", redis.Channel), zap.String("instance_id", cfg.App.InstanceID))
	}

	sinks := []notify.Sink{
		notify.NewHubSink(hub),
		notify.NewRedisSink(redis.Client, redis.Channel, cfg.App.InstanceID),
	}
	if broker.Enabled() {
		sinks = append(sinks, notify.NewMQTTSink(broker.Client, cfg.MQTT.TopicPrefix))
	}
	notificationService := service.NewNotificationService(dispatcher, logger, metrics, sinks...)
	workerDone := worker.StartNotificationWorker(ctx, dispatcher, notificationService)
	logger.Info("notification sinks ready", zap.Strings("sinks", notificationService.Sinks()))

	months := locale.NewResolver()
	location := cfg.Reports.Location()
	registry := handlers.Registry{}
	for category, categoryCfg := range service.CategoryConfigs(cfg) {
		repo, err := repository.NewTicketRepository(pool, category)
		if err != nil {
			logger.Fatal("failed to build ticket repository", zap.String("category", string(category)), zap.Error(err))
		}
		registry[category] = handlers.CategoryServices{
			Tickets: service.NewTicketService(service.TicketDependencies{
				Config:                 categoryCfg,
				TicketRepo:             repo,
				Dispatcher:             dispatcher,
				Logger:                 logger,
				DescriptionPlaceholder: cfg.Tickets.DescriptionPlaceholder,
			}),
			Reports: service.NewReportService(service.ReportDependencies{
				Config:                categoryCfg,
				TicketRepo:            repo,
				Months:                months,
				Location:              location,
				MissingRefPlaceholder: cfg.Tickets.MissingRefPlaceholder,
			}),
		}
	}
	logger.Info("ticket categories ready", zap.Int("count", len(registry)), zap.Any("categories", domain.Categories))

	var authMiddleware *auth.AuthMiddleware
	if cfg.Auth.Enabled {
		authMiddleware = auth.NewAuthMiddleware(auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes))
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.AllowedOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(registry),
		Reports:        handlers.NewReportsHandler(registry, export.NewXLSXRenderer(location)),
		Lookups:        handlers.NewLookupsHandler(service.NewLookupService(repository.NewLookupRepository(pool))),
		Events:         handlers.NewEventsHandler(hub, 15*time.Second),
		Metrics:        metrics,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	// Stopping the hub first ends open event streams so the server can drain.
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	<-workerDone
	if relayDone != nil {
		<-relayDone
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
