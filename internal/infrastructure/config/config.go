package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Admin   AdminConfig
	Catalog CatalogConfig
	Log     LogConfig
	OTLP    OTLPConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type StorageConfig struct {
	// Driver is one of bolt, sqlite or memory
	Driver string
	Path   string
}

type AdminConfig struct {
	DefaultPassword string
	// SessionSecret signs the admin session cookie. When empty a random key is
	// generated at startup, so restarting the server signs everyone out.
	SessionSecret string
}

type CatalogConfig struct {
	IDStrategy string
}

type LogConfig struct {
	Level string
	// File enables a rotated JSON log file next to stdout
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type OTLPConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first; variables already set take precedence.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "bolt"),
			Path:   getEnv("STORAGE_PATH", "data/storefront.db"),
		},
		Admin: AdminConfig{
			DefaultPassword: getEnv("ADMIN_DEFAULT_PASSWORD", "SHOP"),
			SessionSecret:   getEnv("SESSION_SECRET", ""),
		},
		Catalog: CatalogConfig{
			IDStrategy: getEnv("PRODUCT_ID_STRATEGY", "timestamp"),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  cast.ToInt(getEnv("LOG_MAX_SIZE_MB", "64")),
			MaxBackups: cast.ToInt(getEnv("LOG_MAX_BACKUPS", "7")),
			MaxAgeDays: cast.ToInt(getEnv("LOG_MAX_AGE_DAYS", "7")),
		},
		OTLP: OTLPConfig{
			Enabled:     cast.ToBool(getEnv("OTEL_ENABLED", "false")),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "storefront"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
