package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/chamados-dashboard/internal/api/http"
	"github.com/spec-kit/chamados-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/chamados-dashboard/internal/auth"
	"github.com/spec-kit/chamados-dashboard/internal/backend"
	"github.com/spec-kit/chamados-dashboard/internal/config"
	"github.com/spec-kit/chamados-dashboard/internal/events"
	"github.com/spec-kit/chamados-dashboard/internal/observability"
	"github.com/spec-kit/chamados-dashboard/internal/persistence"
	"github.com/spec-kit/chamados-dashboard/internal/repository"
	"github.com/spec-kit/chamados-dashboard/internal/service"
	"github.com/spec-kit/chamados-dashboard/internal/store"
	"github.com/spec-kit/chamados-dashboard/internal/toast"
	"github.com/spec-kit/chamados-dashboard/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	var (
		userRepo          repository.UserRepository
		chamadoCollection backend.ChamadoCollection
		clienteCollection backend.ClienteCollection
	)
	if pool != nil {
		userRepo = repository.NewUserRepository(pool)
		chamadoCollection = backend.NewChamadoCollection(repository.NewChamadoRepository(pool), redis.Client, logger)
		clienteCollection = backend.NewClienteCollection(repository.NewClienteRepository(pool), redis.Client, logger)
	} else {
		logger.Warn("running with in-memory backend")
		userRepo = repository.NewMemoryUserRepository()
		chamadoCollection = backend.NewMemoryChamados()
		clienteCollection = backend.NewMemoryClientes()
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: userRepo,
		Logger:   logger,
	})
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger))

	sessionStore := store.NewSessionStore(authService)
	chamadoStore := store.NewChamadoStore(store.ChamadoStoreDeps{
		Session:    sessionStore,
		Collection: chamadoCollection,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	clienteStore := store.NewClienteStore(store.ClienteStoreDeps{
		Session:    sessionStore,
		Collection: clienteCollection,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	sessionStore.Start()
	chamadoStore.Start()
	clienteStore.Start()
	authService.Start()
	defer func() {
		chamadoStore.Stop()
		clienteStore.Stop()
		sessionStore.Stop()
	}()

	notifier := toast.NewNotifier(cfg.Toast.ClearAfter())
	guard := auth.NewGuard(sessionStore)
	authMiddleware := auth.NewMiddleware(authService.Tokens())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:       handlers.NewAuthHandler(authService),
		Abertos:    handlers.NewAbertosHandler(chamadoStore, clienteStore, notifier),
		Concluidos: handlers.NewConcluidosHandler(chamadoStore, clienteStore, notifier),
		Clientes:   handlers.NewClientesHandler(clienteStore, notifier),
		Dashboard:  handlers.NewDashboardHandler(chamadoStore, clienteStore),
		Guard:      guard,
		Middleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
