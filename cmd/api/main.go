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

	httptransport "github.com/hackforge/hackathon-service/internal/api/http"
	"github.com/hackforge/hackathon-service/internal/api/http/handlers"
	"github.com/hackforge/hackathon-service/internal/auth"
	"github.com/hackforge/hackathon-service/internal/config"
	"github.com/hackforge/hackathon-service/internal/events"
	"github.com/hackforge/hackathon-service/internal/notify"
	"github.com/hackforge/hackathon-service/internal/observability"
	"github.com/hackforge/hackathon-service/internal/persistence"
	"github.com/hackforge/hackathon-service/internal/ratelimit"
	"github.com/hackforge/hackathon-service/internal/repository"
	"github.com/hackforge/hackathon-service/internal/service"
	"github.com/hackforge/hackathon-service/internal/storage"
	"github.com/hackforge/hackathon-service/internal/worker"
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

	tracerProvider, shutdownTracer, err := observability.InitTracer(cfg.Tracing, cfg.App.Name, logger)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}

	templates, err := config.LoadStatusTemplates(cfg.Notification.TemplatesFile, cfg.Hacker.Statuses)
	if err != nil {
		logger.Fatal("failed to load status templates", zap.Error(err))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if pg.PoolHandle() == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	artifacts, err := newArtifactStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to init artifact store", zap.Error(err))
	}
	notifier, err := newNotifier(ctx, cfg.Notification, logger)
	if err != nil {
		logger.Fatal("failed to init notifier", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger, metrics))

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	hackerRepo := repository.NewHackerRepository(pool)

	accountService := service.NewAccountService(cfg.Auth, accountRepo)
	hackerService := service.NewHackerService(service.HackerDependencies{
		AccountRepo: accountRepo,
		HackerRepo:  hackerRepo,
		Artifacts:   artifacts,
		Notifier:    notifier,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
		Tracer:      tracerProvider.Tracer("github.com/hackforge/hackathon-service/internal/service"),
	}, cfg.Hacker, service.NotificationSettings{
		From:      cfg.Notification.EmailFrom,
		Templates: templates,
	})
	authMiddleware := auth.NewAuthMiddleware(accountService.TokenManager(), accountRepo)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.App.BodyLimitBytes,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Hackers:        handlers.NewHackerHandler(hackerService, int64(cfg.App.BodyLimitBytes)),
		AuthMiddleware: authMiddleware.Handle,
		Limiter:        ratelimit.NewRedisLimiter(redis.Client, logger),
		RateLimit:      cfg.RateLimit,
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.ShutdownWithTimeout(10 * time.Second)

	tctx, tcancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer tcancel()
	if err := shutdownTracer(tctx); err != nil {
		logger.Warn("tracer shutdown", zap.Error(err))
	}
}

func newArtifactStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (storage.ArtifactStore, error) {
	if cfg.Driver == "memory" {
		logger.Warn("using in-memory artifact store; resumes are lost on restart")
		return storage.NewMemoryStore(), nil
	}
	return storage.NewS3Store(ctx, cfg)
}

func newNotifier(ctx context.Context, cfg config.NotificationConfig, logger *zap.Logger) (notify.Notifier, error) {
	if cfg.Driver == "log" {
		logger.Warn("status emails are logged, not sent")
		return notify.NewLogNotifier(logger), nil
	}
	return notify.NewSESNotifier(ctx, cfg.AWSRegion)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
