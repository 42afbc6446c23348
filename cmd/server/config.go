package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/coursehub-api/internal/config"
)

// loadAppConfig loads and validates configuration from file and environment.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfigSummary logs non-secret configuration once the logger exists.
func logConfigSummary(cfg *config.Config, logger *slog.Logger) {
	logger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Name,
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"cascade_enrollments", cfg.Courses.CascadeEnrollments)
	logger.Debug("Auth configuration",
		"jwt_secret_present", cfg.Auth.JWTSecret != "",
		"admin_usernames", len(cfg.Auth.AdminUsernames))
}
