package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Browser BrowserConfig
	LogFile string `envconfig:"LOG_FILE"`
}

// ServerConfig holds the companion server configuration.
type ServerConfig struct {
	Host string `envconfig:"HOST" default:"127.0.0.1"`
	Port int    `envconfig:"PORT" default:"8765"`
}

// StorageConfig selects where history and favorites live. An empty
// connection string means the per-user SQLite file.
type StorageConfig struct {
	DataDir          string `envconfig:"DATA_DIR"`
	ConnectionString string `envconfig:"DB_CONNECTION_STRING"`
}

// BrowserConfig holds startup defaults for the shell.
type BrowserConfig struct {
	SearchEngine    string `envconfig:"SEARCH_ENGINE" default:"Google"`
	LogoPath        string `envconfig:"LOGO_PATH"`
	BackgroundImage string `envconfig:"BACKGROUND_IMAGE"`
}

const prefix = "NEONSHELL"

// Load reads an optional .env file and then the environment. Nested
// sections are prefixed, e.g. NEONSHELL_SERVER_PORT or
// NEONSHELL_STORAGE_DB_CONNECTION_STRING.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Address is the listen address of the companion server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
