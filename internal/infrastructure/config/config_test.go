package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, "data/storefront.db", cfg.Storage.Path)
	assert.Equal(t, "SHOP", cfg.Admin.DefaultPassword)
	assert.Equal(t, "timestamp", cfg.Catalog.IDStrategy)
	assert.Equal(t, 64, cfg.Log.MaxSizeMB)
	assert.False(t, cfg.OTLP.Enabled)
	assert.Equal(t, "storefront", cfg.OTLP.ServiceName)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_PATH", "/var/lib/storefront/shop.sqlite")
	t.Setenv("ADMIN_DEFAULT_PASSWORD", "letmein")
	t.Setenv("PRODUCT_ID_STRATEGY", "uuid")
	t.Setenv("LOG_MAX_BACKUPS", "3")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/storefront/shop.sqlite", cfg.Storage.Path)
	assert.Equal(t, "letmein", cfg.Admin.DefaultPassword)
	assert.Equal(t, "uuid", cfg.Catalog.IDStrategy)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.True(t, cfg.OTLP.Enabled)
}
