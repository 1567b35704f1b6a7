// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"tour-manager/internal/bot"
	"tour-manager/internal/database"
	"tour-manager/pkg/logger"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultNotifyTimeout     = 10 * time.Second
	DefaultNotifyConcurrency = 8
)

type Config struct {
	HTTPAddr string
	Database database.Config
	Log      logger.Config
	Telegram bot.Config
	Notify   Notify
}

// Notify bounds the guide notification fan-out.
type Notify struct {
	Timeout     time.Duration
	Concurrency int
}

// Load reads .env files (if any) and then the process environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	timeout, err := durationEnv("NOTIFY_TIMEOUT", DefaultNotifyTimeout)
	if err != nil {
		return nil, err
	}
	concurrency, err := intEnv("NOTIFY_CONCURRENCY", DefaultNotifyConcurrency)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		Database: database.Config{
			Driver:     getEnv("DB_DRIVER", database.DriverPostgres),
			DSN:        os.Getenv("DATABASE_URL"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   os.Getenv("DB_PASSWORD"),
			DBName:     getEnv("DB_NAME", "tours"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "tours.db"),
		},
		Log: logger.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
		Telegram: bot.Config{
			Token:       os.Getenv("TELEGRAM_BOT_TOKEN"),
			APIEndpoint: os.Getenv("TELEGRAM_API_ENDPOINT"),
			Timeout:     timeout,
		},
		Notify: Notify{
			Timeout:     timeout,
			Concurrency: concurrency,
		},
	}

	switch cfg.Database.Driver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return nil, fmt.Errorf("%w: DB_DRIVER %q", ErrInvalidConfig, cfg.Database.Driver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidConfig, key, raw)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidConfig, key, raw)
	}
	return n, nil
}
