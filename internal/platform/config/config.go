package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendSupabase Backend = "supabase"
)

type Config struct {
	DataDir string `yaml:"-"`

	Backend         Backend `yaml:"backend" env:"WELLNESS_BACKEND"`
	DBPath          string  `yaml:"db_path" env:"WELLNESS_DB_PATH"`
	SupabaseURL     string  `yaml:"supabase_url" env:"SUPABASE_URL"`
	SupabaseAnonKey string  `yaml:"supabase_anon_key" env:"SUPABASE_ANON_KEY"`
	LogLevel        string  `yaml:"log_level" env:"WELLNESS_LOG_LEVEL"`
	LogPath         string  `yaml:"log_path" env:"WELLNESS_LOG_PATH"`
}

// Load resolves configuration for dataDir. Later sources win:
// defaults, <dataDir>/config.yaml, <dataDir>/.env, process environment.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:  dataDir,
		Backend:  BackendSQLite,
		DBPath:   filepath.Join(dataDir, "wellness.db"),
		LogLevel: "info",
		LogPath:  filepath.Join(dataDir, "wellness.log"),
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config.yaml: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read config.yaml: %w", err)
	}

	// godotenv never overrides variables already present in the environment.
	if err := godotenv.Load(filepath.Join(dataDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("db path is required for the sqlite backend")
		}
	case BackendSupabase:
		if strings.TrimSpace(c.SupabaseURL) == "" || strings.TrimSpace(c.SupabaseAnonKey) == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required for the supabase backend")
		}
	default:
		return fmt.Errorf("unsupported backend %q", string(c.Backend))
	}
	return nil
}

// LocalStorePath is the key-value file used when nobody is signed in.
func (c Config) LocalStorePath() string {
	return filepath.Join(c.DataDir, "local-storage.json")
}

// AuthSessionPath holds the signed-in session between invocations.
func (c Config) AuthSessionPath() string {
	return filepath.Join(c.DataDir, "auth-session.json")
}
