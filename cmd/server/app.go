package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/coursehub-api/internal/config"
	"github.com/phrazzld/coursehub-api/internal/platform/mongodb"
	"github.com/phrazzld/coursehub-api/internal/service"
	"github.com/phrazzld/coursehub-api/internal/service/auth"
	"github.com/phrazzld/coursehub-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// application holds the shared dependencies and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	client *mongo.Client

	userStore   store.UserStore
	courseStore store.CourseStore

	enrollment service.EnrollmentService
	jwtService auth.JWTService
	hasher     auth.PasswordHasher

	// ping reports store health for /health.
	ping func(ctx context.Context) error
}

// newApplication builds stores and services on top of a connected client and
// makes sure the indexes the stores depend on exist.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, client *mongo.Client) (*application, error) {
	db := client.Database(cfg.Database.Name)
	timeout := cfg.Database.OperationTimeout

	userStore := mongodb.NewUserStore(db, timeout, logger)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure user indexes: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	courseStore := mongodb.NewCourseStore(db, timeout, logger)

	return &application{
		config:      cfg,
		logger:      logger,
		client:      client,
		userStore:   userStore,
		courseStore: courseStore,
		enrollment:  service.NewEnrollmentService(courseStore, userStore, cfg.Courses, logger),
		jwtService:  jwtService,
		hasher:      auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		ping: func(ctx context.Context) error {
			return mongodb.Ping(ctx, client, timeout)
		},
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.client != nil {
		disconnect(app.client, app.logger)
	}
}
