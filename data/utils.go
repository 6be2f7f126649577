package data

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
)

const (
	AppDirName       = "neonshell"
	DatabaseFileName = "browser_history.db"
)

// DataDir is the per-user application data directory: %APPDATA%\neonshell
// on Windows and ~/.neonshell elsewhere.
func DataDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppDirName), nil
		}
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("did not find home dir for db creation: %w", err)
	}
	return filepath.Join(homeDir, "."+AppDirName), nil
}

// DatabasePath creates dir (or the default data dir when dir is empty) and
// returns the database file inside it.
func DatabasePath(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = DataDir()
		if err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create data dir %s: %w", dir, err)
	}
	return filepath.Join(dir, DatabaseFileName), nil
}

// Open picks the PostgreSQL store when a connection string is set and the
// per-user SQLite file otherwise.
func Open(connectionString string, dataDir string) (BrowserRepository, error) {
	if connectionString != "" {
		return OpenPostgres(connectionString)
	}

	path, err := DatabasePath(dataDir)
	if err != nil {
		return nil, err
	}
	return OpenSqlite(path)
}
