package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-studio/adapters/event"
	httpAdapter "github.com/khoahotran/profile-studio/adapters/http"
	"github.com/khoahotran/profile-studio/adapters/persistence"
	"github.com/khoahotran/profile-studio/internal/application/access"
	"github.com/khoahotran/profile-studio/internal/application/service"
	authUC "github.com/khoahotran/profile-studio/internal/application/usecase/auth"
	sessionUC "github.com/khoahotran/profile-studio/internal/application/usecase/session"
	variantUC "github.com/khoahotran/profile-studio/internal/application/usecase/variant"
	"github.com/khoahotran/profile-studio/internal/config"
	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
	"github.com/khoahotran/profile-studio/pkg/metrics"
	"github.com/khoahotran/profile-studio/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Profile Studio API server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.NewTracerProvider(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracer", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown tracer", err)
		}
	}()

	// Database
	dbPool, err := persistence.NewPostgresPool(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// List cache is optional; without Redis every list read goes to Postgres.
	var listCache service.ListCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, list caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			listCache = persistence.NewRedisListCache(redisClient)
		}
	}

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Warn("No Kafka brokers configured, profile events disabled")
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	sessionRepo := persistence.NewPostgresSessionRepo(dbPool, appLogger)
	variantRepo := persistence.NewPostgresVariantRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	guard := access.NewGuard(sessionRepo, variantRepo)

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	createSessionUseCase := sessionUC.NewCreateSessionUseCase(sessionRepo, listCache, publisher, appLogger)
	updateSessionUseCase := sessionUC.NewUpdateSessionUseCase(sessionRepo, guard, listCache, publisher, appLogger)
	listSessionsUseCase := sessionUC.NewListSessionsUseCase(sessionRepo, listCache, cfg.Cache.TTL, appLogger)
	getSessionUseCase := sessionUC.NewGetSessionUseCase(guard)
	variantUseCase := variantUC.NewVariantUseCase(variantRepo, guard, listCache, publisher, cfg.Cache.TTL, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Auth: httpAdapter.NewAuthHandler(loginUseCase),
		Session: httpAdapter.NewSessionHandler(
			createSessionUseCase,
			updateSessionUseCase,
			listSessionsUseCase,
			getSessionUseCase,
		),
		Variant: httpAdapter.NewVariantHandler(variantUseCase),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(handlers, jwtSvc, metrics.NewHTTPMetrics("profile_studio"), appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           otelhttp.NewHandler(router, "profile-studio-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	appLogger.Info("Server exited")
}
