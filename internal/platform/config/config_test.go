package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmonteiro/backoffice/internal/platform/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "contas_pagar.json"), cfg.PayablesPath())
	assert.Equal(t, filepath.Join("data", "contas_receber.json"), cfg.ReceivablesPath())
	assert.Equal(t, filepath.Join("data", "categorias.json"), cfg.CategoriesPath())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "DATA_DIR=/var/lib/backoffice\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o644))

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/backoffice", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join("/var/lib/backoffice", "pedidos.json"), cfg.OrdersPath())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte("LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("BACKOFFICE_LOG_LEVEL", "warn")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}
