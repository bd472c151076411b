package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"bulk-ingest/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.Equal(t, 50, cfg.Batch.Size)
	assert.Equal(t, 3, cfg.Batch.Attempts)
	assert.Equal(t, 250, cfg.Batch.BackoffMillis)
	assert.Equal(t, 300, cfg.Batch.CooldownMillis)
	assert.Equal(t, 200, cfg.Decode.PreviewLength)
	assert.Equal(t, 1000, cfg.Decode.ProgressEvery)
	assert.Equal(t, "$.json.data", cfg.Decode.EnvelopePath)
	assert.Equal(t, "customers.raw_customers_shopify", cfg.Ingest.CustomersTable)
	assert.Equal(t, "orders.raw_orders_shopify", cfg.Ingest.OrdersTable)
	assert.Equal(t, "database", cfg.Ingest.Output)
	assert.False(t, cfg.Ingest.AggregateColumns)
	assert.Equal(t, 300, cfg.Source.TimeoutSeconds)
	assert.True(t, cfg.Storage.UseSSL)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("BATCH_SIZE", "10")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SOURCE_PATH", "/tmp/export.jsonl")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Batch.Size)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/export.jsonl", cfg.Source.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BATCH_ATTEMPTS=5\nINGEST_LIMIT=25\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("BATCH_ATTEMPTS")
		os.Unsetenv("INGEST_LIMIT")
	})

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Batch.Attempts)
	assert.Equal(t, 25, cfg.Ingest.Limit)
}
