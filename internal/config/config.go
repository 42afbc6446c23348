package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Courses  CoursesConfig  `mapstructure:"courses"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// AllowedOrigins is the CORS origin allow-list. "*" allows any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all document store settings.
type DatabaseConfig struct {
	// URI is a MongoDB connection string (mongodb:// or mongodb+srv://).
	URI  string `mapstructure:"uri"  validate:"required,startswith=mongodb"`
	Name string `mapstructure:"name" validate:"required"`

	// OperationTimeout is applied to every individual store call.
	OperationTimeout time.Duration `mapstructure:"operation_timeout" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=525600"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`

	// AdminUsernames are granted the admin role when they register.
	AdminUsernames []string `mapstructure:"admin_usernames"`
}

// CoursesConfig contains course catalog behaviour switches.
type CoursesConfig struct {
	// CascadeEnrollments removes a deleted course from every user's
	// enrollment set. Off by default: deletion leaves dangling references.
	CascadeEnrollments bool `mapstructure:"cascade_enrollments"`
}

// TokenLifetime returns the configured access token lifetime.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// IsAdminUsername reports whether username is on the admin bootstrap list.
func (c AuthConfig) IsAdminUsername(username string) bool {
	for _, name := range c.AdminUsernames {
		if name == username {
			return true
		}
	}
	return false
}
