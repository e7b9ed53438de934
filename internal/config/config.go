package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings,
// including the startup readiness policy used while waiting for the
// database to accept connections.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`

	// ConnectMaxAttempts bounds the startup readiness probes. With the
	// default base delay of 1s the worst case is ~255s of cumulative backoff.
	ConnectMaxAttempts int `mapstructure:"connect_max_attempts" validate:"required,gte=1,lte=20"`

	// ConnectBackoffBaseSeconds is the delay before the first retry; each
	// subsequent retry doubles it.
	ConnectBackoffBaseSeconds int `mapstructure:"connect_backoff_base_seconds" validate:"required,gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the lifetime of issued access tokens.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost is the bcrypt work factor used when hashing passwords.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}
