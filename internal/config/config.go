package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the runtime configuration, read from the environment.
type Config struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Port         string        `envconfig:"PORT" default:"8000"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"gf_server.db"`
	DBDebug     bool   `envconfig:"DB_DEBUG" default:"false"`
	Migrations  bool   `envconfig:"MIGRATIONS" default:"false"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	SeedClientID   string `envconfig:"SEED_CLIENT_ID" default:"LOCAL-TEST"`
	SeedClientName string `envconfig:"SEED_CLIENT_NAME" default:"Test Local Client"`
	SeedAPIKey     string `envconfig:"SEED_API_KEY" default:"TESTKEY123"`

	UploadRateLimit int   `envconfig:"UPLOAD_RATE_LIMIT" default:"120"`
	MaxUploadBytes  int64 `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
}

// Load reads envFile (or ./.env when envFile is empty and the file exists)
// and decodes the environment. Variables already set win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.SeedClientID) == "" {
		return errors.New("SEED_CLIENT_ID must not be empty")
	}
	if c.UploadRateLimit <= 0 {
		return fmt.Errorf("UPLOAD_RATE_LIMIT must be positive, got %d", c.UploadRateLimit)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && strings.EqualFold(c.Env, "production")
}

func (c *Config) Addr() string { return ":" + c.Port }
