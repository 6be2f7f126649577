package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutEnvFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8765, cfg.Server.Port)
	assert.Equal(t, "Google", cfg.Browser.SearchEngine)
	assert.Empty(t, cfg.Storage.ConnectionString)
	assert.Equal(t, "127.0.0.1:8765", cfg.Address())
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv("NEONSHELL_SERVER_PORT", "9000")
	t.Setenv("NEONSHELL_BROWSER_SEARCH_ENGINE", "Bing")
	t.Setenv("NEONSHELL_STORAGE_DATA_DIR", "/tmp/neon")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "Bing", cfg.Browser.SearchEngine)
	assert.Equal(t, "/tmp/neon", cfg.Storage.DataDir)
}

func TestLoadFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NEONSHELL_SERVER_HOST=0.0.0.0\nNEONSHELL_BROWSER_LOGO_PATH=/opt/logo.png\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("NEONSHELL_SERVER_HOST")
		os.Unsetenv("NEONSHELL_BROWSER_LOGO_PATH")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "/opt/logo.png", cfg.Browser.LogoPath)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("NEONSHELL_SERVER_PORT", "not-a-port")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
