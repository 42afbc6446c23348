package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix is prepended to every configuration key when read from the environment.
const EnvPrefix = "COURSEHUB"

// legacyEnv maps configuration keys to the unprefixed variable names the
// service has always been deployed with.
var legacyEnv = map[string]string{
	"server.port":     "PORT",
	"database.uri":    "MONGODB_URI",
	"auth.jwt_secret": "JWT_SECRET",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range v.AllKeys() {
		if err := bindEnv(v, key); err != nil {
			return nil, err
		}
	}
	// Keys without defaults are unknown to AllKeys until bound.
	for key := range legacyEnv {
		if err := bindEnv(v, key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks a populated Config against its validation tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.name", "coursehub")
	v.SetDefault("database.operation_timeout", "5s")

	v.SetDefault("auth.token_lifetime_minutes", 24*60)
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("auth.admin_usernames", []string{})

	v.SetDefault("courses.cascade_enrollments", false)
}

// bindEnv binds key to its prefixed variable and, where one exists, to the
// legacy unprefixed name. The prefixed name wins when both are set.
func bindEnv(v *viper.Viper, key string) error {
	names := []string{EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
	if legacy, ok := legacyEnv[key]; ok {
		names = append(names, legacy)
	}
	if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
		return fmt.Errorf("failed to bind environment for %s: %w", key, err)
	}
	return nil
}
