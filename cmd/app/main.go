package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/repairshop-service/internal/api/http"
	"github.com/spec-kit/repairshop-service/internal/api/http/handlers"
	"github.com/spec-kit/repairshop-service/internal/auth"
	"github.com/spec-kit/repairshop-service/internal/backend"
	"github.com/spec-kit/repairshop-service/internal/config"
	"github.com/spec-kit/repairshop-service/internal/events"
	"github.com/spec-kit/repairshop-service/internal/observability"
	"github.com/spec-kit/repairshop-service/internal/offline"
	"github.com/spec-kit/repairshop-service/internal/service"
	"github.com/spec-kit/repairshop-service/internal/storage"
	syncpkg "github.com/spec-kit/repairshop-service/internal/sync"
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

	medium, err := newMedium(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open offline store", zap.Error(err))
	}
	defer medium.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	store := offline.NewStore(medium, logger, cfg.Offline.DefaultTTL())
	queue := offline.NewQueue(store, logger)
	jobCache := offline.NewJobListCache(store)
	customerCache := offline.NewCustomerListCache(store)
	notificationCache := offline.NewNotificationListCache(store)

	backendClient := backend.NewHTTPClient(cfg.Backend, logger)

	notifier := service.NewSyncNotifier(dispatcher, logger, cfg.Notification)
	notifier.RegisterHandlers()

	monitor := syncpkg.NewMonitor(backendClient, cfg.Offline.ProbeInterval(), dispatcher, metrics, logger)
	flusher := syncpkg.NewFlusher(queue, backendClient, dispatcher, metrics, logger, cfg.Offline.FlushInterval())
	go monitor.Run(ctx)
	go flusher.Run(ctx, monitor.Updates())

	jobService := service.NewJobService(service.JobDependencies{
		Backend:    backendClient,
		Cache:      jobCache,
		Queue:      queue,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	customerService := service.NewCustomerService(backendClient, customerCache, dispatcher, metrics, logger)
	notificationService := service.NewNotificationService(backendClient, notificationCache, dispatcher, metrics, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, monitor, medium),
		Jobs:           handlers.NewJobsHandler(jobService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Sync:           handlers.NewSyncHandler(queue, flusher),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newMedium opens the configured persistence medium.
func newMedium(cfg *config.Config, logger *zap.Logger) (pingableMedium, error) {
	switch cfg.Offline.Store {
	case "redis":
		return storage.NewRedisMedium(cfg.Redis, logger), nil
	default:
		return storage.NewSQLiteMedium(cfg.Offline.SQLitePath, logger)
	}
}

// pingableMedium is what main needs from a store: the medium itself
// plus a health probe.
type pingableMedium interface {
	storage.Medium
	Ping(ctx context.Context) error
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
