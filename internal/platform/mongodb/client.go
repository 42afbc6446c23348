package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/coursehub-api/internal/config"
	"github.com/phrazzld/coursehub-api/internal/redact"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection   = "users"
	CoursesCollection = "courses"
)

// Connect establishes a client for cfg.URI and verifies it with a ping.
// The caller owns the returned client and must Disconnect it.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.OperationTimeout).
		SetAppName("coursehub-api")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %s", redact.Error(err))
	}

	if err := Ping(ctx, client, cfg.OperationTimeout); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Database connection established", "database", cfg.Name)
	return client, nil
}

// Ping checks that the primary is reachable within timeout.
func Ping(ctx context.Context, client *mongo.Client, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}
	return nil
}

// withTimeout derives a per-operation context. A non-positive timeout only
// inherits cancellation from ctx.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
