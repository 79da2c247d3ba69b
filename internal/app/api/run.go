package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	userhandler "github.com/clear-solutions/users-api/internal/domains/users/adapters/http/handler"
	usermemory "github.com/clear-solutions/users-api/internal/domains/users/adapters/memory"
	userobs "github.com/clear-solutions/users-api/internal/domains/users/adapters/observability"
	userpostgres "github.com/clear-solutions/users-api/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/clear-solutions/users-api/internal/domains/users/application"
	userports "github.com/clear-solutions/users-api/internal/domains/users/ports"
	"github.com/clear-solutions/users-api/internal/platform/migrations"
	platformobservability "github.com/clear-solutions/users-api/internal/platform/observability"
	platformpostgres "github.com/clear-solutions/users-api/internal/platform/postgres"
)

// Run boots the users HTTP API with observability and repositories wired.
func Run(ctx context.Context) error {
	const serviceName = "users-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	repo, cleanupRepo := buildUserRepository(ctx, logger)
	defer cleanupRepo()

	userService := userobs.New(
		userapp.NewService(repo, cfg.RequiredAge),
		userobs.WithLogger(logger),
		userobs.WithTracer(instruments.Tracer("internal.domains.users.application")),
		userobs.WithMeter(instruments.Meter("internal.domains.users.application")),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(otelgin.Middleware(serviceName))
	userhandler.RegisterRoutes(router, userhandler.NewUserAPI(userService))

	addr := ":" + cfg.Port
	logger.Info("users API listening", slog.String("addr", addr), slog.Int("required_age", cfg.RequiredAge))
	if err := router.Run(addr); err != nil {
		logger.Error("users API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildUserRepository(ctx context.Context, logger *slog.Logger) (userports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return usermemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return usermemory.NewRepository(), func() {}
	}
	logger.Info("user repository configured with postgres")
	return userpostgres.NewRepository(db), cleanup
}
