package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "en", cfg.Locale)
	assert.NotEmpty(t, cfg.Store.DataDir)
	assert.Equal(t, filepath.Join(cfg.Store.DataDir, "receipts"), cfg.Store.ReceiptDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MIZANIA_BACKEND", "sqlite")
	t.Setenv("MIZANIA_DATA_DIR", "/tmp/mizania-test")
	t.Setenv("MIZANIA_LOCALE", "ar")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/mizania-test", cfg.Store.DataDir)
	assert.Equal(t, "ar", cfg.Locale)
	assert.Equal(t, filepath.Join("/tmp/mizania-test", "mizania.db"), cfg.Store.SQLitePath())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("MIZANIA_BACKEND", "redis")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown locale", func(t *testing.T) {
		t.Setenv("MIZANIA_LOCALE", "fr")
		_, err := Load()
		assert.Error(t, err)
	})
}
