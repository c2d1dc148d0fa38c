package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DatabaseConfig holds connection settings for the relational store
type DatabaseConfig struct {
	Driver          string // "postgres" or "sqlite"
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // seconds
}

// AuthConfig holds JWT signing settings
type AuthConfig struct {
	JWTSecret          string
	JWTExpirationHours int
}

// Config is the top-level service configuration
type Config struct {
	ServerAddr string
	LogLevel   string
	Database   DatabaseConfig
	Auth       AuthConfig
}

// LoadConfig reads configuration from .env and the environment
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Missing config file is fine; the environment still applies
	_ = viper.ReadInConfig()

	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_DSN", "host=localhost user=mealhut password=mealhut dbname=mealhut port=5432 sslmode=disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", 3600)
	viper.SetDefault("JWT_EXPIRATION_HOURS", 24)

	cfg := &Config{
		ServerAddr: viper.GetString("SERVER_ADDR"),
		LogLevel:   viper.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Driver:          viper.GetString("DB_DRIVER"),
			DSN:             viper.GetString("DB_DSN"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: viper.GetInt("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.Database.Driver)
	}

	return cfg, nil
}
