package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Store struct {
		Driver string `yaml:"driver" env:"QUIZ_STORE_DRIVER"`
	} `yaml:"store"`
	Postgres struct {
		URL string `yaml:"url" env:"QUIZ_POSTGRES_URL"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path" env:"QUIZ_SQLITE_PATH"`
	} `yaml:"sqlite"`
	Redis struct {
		Addr     string `yaml:"addr" env:"QUIZ_REDIS_ADDR"`
		Password string `yaml:"password" env:"QUIZ_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"QUIZ_REDIS_DB"`
		TTL      string `yaml:"ttl" env:"QUIZ_REDIS_TTL"`
	} `yaml:"redis"`
	Leaderboard struct {
		Limit    int    `yaml:"limit" env:"QUIZ_LEADERBOARD_LIMIT"`
		CacheTTL string `yaml:"cache_ttl" env:"QUIZ_LEADERBOARD_CACHE_TTL"`
		Refresh  string `yaml:"refresh" env:"QUIZ_LEADERBOARD_REFRESH"`
	} `yaml:"leaderboard"`
	Quiz struct {
		ShortLength int `yaml:"short_length" env:"QUIZ_SHORT_LENGTH"`
		LongLength  int `yaml:"long_length" env:"QUIZ_LONG_LENGTH"`
	} `yaml:"quiz"`
	Server struct {
		Port string `yaml:"port" env:"PORT"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" env:"QUIZ_LOG_LEVEL"`
		Env   string `yaml:"env" env:"QUIZ_ENV"`
	} `yaml:"log"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	var cfg Config
	cfg.Store.Driver = DriverSQLite
	cfg.SQLite.Path = "quiz_game.db"
	cfg.Redis.TTL = "30m"
	cfg.Leaderboard.Limit = 10
	cfg.Leaderboard.CacheTTL = "30s"
	cfg.Leaderboard.Refresh = "2s"
	cfg.Quiz.ShortLength = 5
	cfg.Quiz.LongLength = 10
	cfg.Server.Port = "8080"
	cfg.Log.Level = "info"
	cfg.Log.Env = "development"
	return cfg
}

// Load builds the configuration from defaults, then a .env file in the working
// directory, then the YAML file at path, then QUIZ_* environment variables.
// Missing files are skipped.
func Load(path string) (Config, error) {
	return load(path, ".env")
}

func load(path, dotenv string) (Config, error) {
	cfg := Defaults()

	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("store driver %q needs postgres.url", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Quiz.ShortLength <= 0 || c.Quiz.LongLength <= 0 {
		return fmt.Errorf("quiz lengths must be positive, got %d and %d", c.Quiz.ShortLength, c.Quiz.LongLength)
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
