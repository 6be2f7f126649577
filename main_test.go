package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neonshell/logger"
)

// setupRun points run at a temporary data dir and log file.
func setupRun(t *testing.T, dataDir string) string {
	t.Helper()
	dir := t.TempDir()
	logFile := filepath.Join(dir, "neonshell.log")
	t.Setenv("NEONSHELL_LOG_FILE", logFile)
	t.Setenv("NEONSHELL_STORAGE_DATA_DIR", dataDir)
	t.Setenv("NEONSHELL_STORAGE_DB_CONNECTION_STRING", "")

	oldEnv, oldHome, oldServe := envFile, homeOut, serve
	envFile = filepath.Join(dir, "missing.env")
	serve = false
	t.Cleanup(func() { envFile, homeOut, serve = oldEnv, oldHome, oldServe })
	return logFile
}

func TestRunWritesHomePage(t *testing.T) {
	setupRun(t, t.TempDir())
	homeOut = filepath.Join(t.TempDir(), "home.html")

	require.Equal(t, 0, run())

	doc, err := os.ReadFile(homeOut)
	require.NoError(t, err)
	assert.Contains(t, string(doc), `class="card empty"`)
}

func TestRunStoreFailureClosesLogBeforeExit(t *testing.T) {
	notADir := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))
	logFile := setupRun(t, notADir)
	homeOut = filepath.Join(t.TempDir(), "home.html")

	assert.Equal(t, 1, run())
	assert.NoFileExists(t, homeOut)

	logger.Debug.Println("after run")
	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Failed to open the history database")
	assert.NotContains(t, string(content), "after run")
}
