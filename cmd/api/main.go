package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tutor-helpdesk/internal/api/http"
	"github.com/spec-kit/tutor-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/tutor-helpdesk/internal/auth"
	"github.com/spec-kit/tutor-helpdesk/internal/config"
	"github.com/spec-kit/tutor-helpdesk/internal/domain"
	"github.com/spec-kit/tutor-helpdesk/internal/events"
	"github.com/spec-kit/tutor-helpdesk/internal/flash"
	"github.com/spec-kit/tutor-helpdesk/internal/observability"
	"github.com/spec-kit/tutor-helpdesk/internal/persistence"
	"github.com/spec-kit/tutor-helpdesk/internal/repository"
	"github.com/spec-kit/tutor-helpdesk/internal/repository/memory"
	"github.com/spec-kit/tutor-helpdesk/internal/service"
	"github.com/spec-kit/tutor-helpdesk/internal/worker"
)

type repositories struct {
	tickets      repository.TicketRepository
	users        repository.UserRepository
	problemTypes repository.ProblemTypeRepository
	messages     repository.MessageRepository
	history      repository.TicketHistoryRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dependencies := map[string]handlers.Pinger{}

	var repos repositories
	if cfg.Postgres.DSN == "" {
		logger.Warn("POSTGRES_DSN not set, using in-memory store")
		repos = memoryRepositories()
	} else {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		repos = postgresRepositories(pg)
		dependencies["postgres"] = pg
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	dependencies["redis"] = redis

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	deps := service.TicketDependencies{
		TicketRepo:      repos.tickets,
		ProblemTypeRepo: repos.problemTypes,
		UserRepo:        repos.users,
		HistoryRepo:     repos.history,
		Dispatcher:      dispatcher,
		Logger:          logger,
		TutorPermission: domain.PermissionLevel(cfg.Auth.TutorPermission),
	}
	ticketService := service.NewTicketService(deps)
	lifecycleService := service.NewLifecycleService(deps)
	broadcastService := service.NewBroadcastService(repos.messages, nil)
	authService := service.NewAuthService(cfg.Auth, repos.users)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.users, cfg.Auth.CookieName, logger)

	if cfg.Digest.Enabled {
		digest := worker.NewDigestWorker(cfg.Digest.Cron, ticketService, logger)
		if err := digest.Start(); err != nil {
			logger.Fatal("failed to schedule queue digest", zap.Error(err))
		}
		defer digest.Stop()
	}

	flashes := handlers.NewFlashResponder(
		flash.NewRedisStore(redis.Client, cfg.Flash.TTL()),
		cfg.Flash.CookieName,
		cfg.Flash.TTL(),
		cfg.Auth.CookieSecure,
		logger,
	)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Helpdesk:        handlers.NewHelpdeskHandler(ticketService, broadcastService, flashes),
		Lifecycle:       handlers.NewLifecycleHandler(lifecycleService, flashes, metrics),
		Auth:            handlers.NewAuthHandler(authService, flashes, cfg.Auth),
		AuthMiddleware:  authMiddleware,
		TutorPermission: domain.PermissionLevel(cfg.Auth.TutorPermission),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func postgresRepositories(pg *persistence.Postgres) repositories {
	pool := pg.PoolHandle()
	return repositories{
		tickets:      repository.NewTicketRepository(pool),
		users:        repository.NewUserRepository(pool),
		problemTypes: repository.NewProblemTypeRepository(pool),
		messages:     repository.NewMessageRepository(pool),
		history:      repository.NewTicketHistoryRepository(pool),
	}
}

func memoryRepositories() repositories {
	store := memory.New()
	return repositories{
		tickets:      store.Tickets(),
		users:        store.Users(),
		problemTypes: store.ProblemTypes(),
		messages:     store.Messages(),
		history:      store.History(),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
