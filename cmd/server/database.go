package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/coursehub-api/internal/config"
	"github.com/phrazzld/coursehub-api/internal/platform/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

// setupAppDatabase connects to MongoDB and verifies the connection.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Client, error) {
	client, err := mongodb.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return client, nil
}

func disconnect(client *mongo.Client, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		logger.Error("failed to disconnect from database", "error", err)
	}
}
