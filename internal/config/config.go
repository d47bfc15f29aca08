package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/calibra/internal/db"
	"github.com/terraincognita07/calibra/internal/security"
)

const (
	minSecretKeyLength = 32
	secretAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	insecureSecretKey  = "change_me_in_production"
)

type Config struct {
	Port            string
	DBDriver        string
	DBPath          string
	DatabaseURL     string
	SecretKey       string
	EphemeralSecret bool
	Location        *time.Location
	DefaultLanguage string
	LogLevel        slog.Level
	LogFormat       string
	TokenTTL        time.Duration
}

// Load reads an optional .env file from the working directory and then
// resolves every setting from the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		DBPath:          getEnv("DB_PATH", filepath.Join("data", "calibra.db")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DefaultLanguage: strings.ToLower(getEnv("DEFAULT_LANGUAGE", "en")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
	}

	var err error
	if cfg.Port, err = resolvePort(); err != nil {
		return Config{}, err
	}
	if cfg.DBDriver, err = resolveDriver(); err != nil {
		return Config{}, err
	}
	if cfg.DBDriver == db.DriverPostgres && cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
	}
	if cfg.SecretKey, cfg.EphemeralSecret, err = resolveSecretKey(); err != nil {
		return Config{}, err
	}
	if cfg.Location, err = time.LoadLocation(getEnv("TZ", "UTC")); err != nil {
		return Config{}, fmt.Errorf("invalid TZ: %w", err)
	}
	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h")); err != nil || cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL %q", os.Getenv("TOKEN_TTL"))
	}
	return cfg, nil
}

// DatabaseTarget is the path or DSN handed to db.Open for the configured driver.
func (cfg Config) DatabaseTarget() string {
	if cfg.DBDriver == db.DriverPostgres {
		return cfg.DatabaseURL
	}
	return cfg.DBPath
}

func (cfg Config) NewLogger(w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveDriver() (string, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", db.DriverSQLite))
	switch driver {
	case db.DriverSQLite, db.DriverPostgres:
		return driver, nil
	default:
		return "", fmt.Errorf("invalid DB_DRIVER %q", driver)
	}
}

// resolveSecretKey returns a random per-process key when SECRET_KEY is unset.
// Tokens signed with it stop validating after a restart.
func resolveSecretKey() (string, bool, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		generated, err := security.RandomString(minSecretKeyLength*2, secretAlphabet)
		if err != nil {
			return "", false, fmt.Errorf("generate secret key: %w", err)
		}
		return generated, true, nil
	}
	if secret == insecureSecretKey {
		return "", false, errors.New("SECRET_KEY uses an insecure placeholder")
	}
	if len(secret) < minSecretKeyLength {
		return "", false, fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, false, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
