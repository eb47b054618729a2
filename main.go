// File: hotelsa/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hotelsa/config"
	"hotelsa/cron"
	"hotelsa/database"
	"hotelsa/database/repository"
	hotelRepo "hotelsa/database/repository/hotel"
	"hotelsa/handlers"
	"hotelsa/middleware"
	"hotelsa/routes"
	"hotelsa/screens"
	"hotelsa/services/booking"
	"hotelsa/services/catalog"
	"hotelsa/services/flags"
	"hotelsa/services/identity"
	"hotelsa/services/notification"
	"hotelsa/services/review"
	"hotelsa/services/session"
	"hotelsa/services/user"
	"hotelsa/utils"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	sweepInterval  = time.Minute
	healthInterval = 30 * time.Second
)

// infrastructure is what the selected backend provides to the services.
type infrastructure struct {
	repos      *repository.Repositories
	identities identity.Backend
	flags      flags.Store
	notifier   notification.Enqueuer

	redisClients []*redis.Client
	queue        *asynq.Client
	worker       *asynq.Server
	mongoEnabled bool
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		infra *infrastructure
		err   error
	)
	switch cfg.Backend {
	case config.BackendFirebase:
		infra, err = firebaseInfrastructure(ctx, cfg, logger)
	default:
		infra, err = memoryInfrastructure(logger)
	}
	if err != nil {
		logger.Fatal("main: failed to initialize backend", zap.String("backend", cfg.Backend), zap.Error(err))
	}

	if cfg.Seed || cfg.Backend == config.BackendMemory {
		if err := hotelRepo.Seed(ctx, infra.repos.Hotels); err != nil {
			logger.Fatal("main: failed to seed hotels", zap.Error(err))
		}
		logger.Info("Hotel catalogue seeded", zap.Int("hotels", len(hotelRepo.Catalogue)))
	}

	identities := &identity.DemoBackend{
		Primary: infra.identities,
		Enabled: cfg.DemoModeEnabled,
		Logger:  logger,
	}

	// services.
	catalogService := catalog.NewCatalogService(infra.repos.Hotels, infra.repos.Reviews)
	bookingService := booking.NewBookingService(infra.repos.Hotels, infra.repos.Bookings, infra.notifier, logger)
	reviewService := review.NewReviewService(infra.repos.Hotels, infra.repos.Reviews, logger)
	userService := user.NewUserService(infra.repos.Users, logger)

	registry, err := screens.BuildRegistry(screens.Deps{
		Catalog:         catalogService,
		Bookings:        bookingService,
		Users:           userService,
		DemoModeEnabled: cfg.DemoModeEnabled,
	})
	if err != nil {
		logger.Fatal("main: incomplete screen registry", zap.Error(err))
	}

	sessions := session.NewManager(identities, infra.flags, cfg.SessionIdleTTL, logger)
	go sessions.RunSweeper(ctx, sweepInterval)

	tokens, err := utils.NewSessionTokens(cfg.JWTSecret, cfg.SessionTokenTTL)
	if err != nil {
		logger.Fatal("main: failed to set up session tokens", zap.Error(err))
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set; session tokens will not survive a restart")
	}

	health := utils.NewHealthMonitor(cfg.Backend, infra.redisClients, database.MongoClient)
	go health.Run(ctx, healthInterval)

	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessions,
		Tokens:   tokens,
		Screens:  registry,
		Health:   health,
		Users:    userService,
		Bookings: bookingService,
		Reviews:  reviewService,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("backend", cfg.Backend),
		zap.Bool("demoMode", cfg.DemoModeEnabled))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	sessions.CloseAll()
	infra.close(shutdownCtx, logger)

	logger.Info("main: server stopped gracefully")
}

// memoryInfrastructure runs everything in process: the mock backend.
func memoryInfrastructure(logger *zap.Logger) (*infrastructure, error) {
	repos := repository.NewMemoryRepositories()
	notifService, err := notification.NewDefaultNotificationService(repos.Users, nil, logger)
	if err != nil {
		return nil, err
	}
	return &infrastructure{
		repos:      repos,
		identities: identity.NewMemoryBackend(),
		flags:      flags.NewMemoryStore(),
		notifier:   notification.InlineEnqueuer{Service: notifService},
	}, nil
}

// firebaseInfrastructure connects MongoDB, Redis and Firebase and starts the
// booking confirmation worker.
func firebaseInfrastructure(ctx context.Context, cfg config.Config, logger *zap.Logger) (*infrastructure, error) {
	db, err := database.InitDB(cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		return nil, err
	}
	repos := repository.NewMongoRepositories(db)

	flagsClient, err := utils.NewRedisClient(cfg.RedisFlagsDB)
	if err != nil {
		return nil, err
	}

	identities, push := firebaseIdentity(ctx, cfg, logger)
	notifService, err := notification.NewDefaultNotificationService(repos.Users, push, logger)
	if err != nil {
		return nil, err
	}

	queueOpt := utils.QueueRedisOpt()
	queue := asynq.NewClient(queueOpt)
	worker := cron.InitConfirmationWorker(ctx, queueOpt, notifService, logger)

	return &infrastructure{
		repos:        repos,
		identities:   identities,
		flags:        flags.NewRedisStore(flagsClient),
		notifier:     notification.NewAsynqEnqueuer(queue, logger),
		redisClients: []*redis.Client{flagsClient},
		queue:        queue,
		worker:       worker,
		mongoEnabled: true,
	}, nil
}

// firebaseIdentity connects the Firebase auth and messaging clients. A
// misconfigured project does not stop the server: sessions run signed out
// against an unattached backend.
func firebaseIdentity(ctx context.Context, cfg config.Config, logger *zap.Logger) (*identity.FirebaseBackend, notification.PushSender) {
	app, err := utils.InitFirebase(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Error("main: firebase unavailable, sessions will run signed out", zap.Error(err))
		return identity.NewUnattachedFirebaseBackend(logger), nil
	}
	return attachFirebase(ctx, app, cfg.FirebaseAPIKey, logger)
}

func attachFirebase(ctx context.Context, app *firebase.App, apiKey string, logger *zap.Logger) (*identity.FirebaseBackend, notification.PushSender) {
	identities, err := identity.NewFirebaseBackend(ctx, app, apiKey, logger)
	if err != nil {
		logger.Error("main: firebase auth unavailable, sessions will run signed out", zap.Error(err))
		return identity.NewUnattachedFirebaseBackend(logger), nil
	}
	messagingClient, err := utils.InitMessaging(ctx, app)
	if err != nil {
		logger.Error("main: firebase messaging unavailable, push notifications disabled", zap.Error(err))
		return identities, nil
	}
	return identities, messagingClient
}

func (i *infrastructure) close(ctx context.Context, logger *zap.Logger) {
	if i.worker != nil {
		i.worker.Shutdown()
	}
	if i.queue != nil {
		if err := i.queue.Close(); err != nil {
			logger.Warn("main: failed to close task queue", zap.Error(err))
		}
	}
	for _, c := range i.redisClients {
		if err := c.Close(); err != nil {
			logger.Warn("main: failed to close redis client", zap.Error(err))
		}
	}
	if i.mongoEnabled {
		if err := database.CloseDB(ctx); err != nil {
			logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
		}
	}
}
