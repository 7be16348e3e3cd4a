package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig selects and configures the storage backend.
//
// Driver "postgres" requires DatabaseURL; driver "redis" requires
// RedisAddr; driver "memory" needs nothing and keeps all state
// in-process (demo and test use).
type StorageConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=postgres redis memory"`
	DatabaseURL string `mapstructure:"database_url" validate:"required_if=Driver postgres"`
	RedisAddr   string `mapstructure:"redis_addr" validate:"required_if=Driver redis"`
	RedisDB     int    `mapstructure:"redis_db" validate:"gte=0"`
}
