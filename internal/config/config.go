package config

import (
	"log/slog"
	"os"
)

const (
	defaultDBPath = "./recipes.db"
	defaultPort   = "8080"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath        string
	Port          string
	MigrationsDir string

	// GeminiAPIKey enables the optional AI analysis feature. The core never
	// depends on it; when absent the feature is reported as disabled.
	GeminiAPIKey string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}

	if cfg.GeminiAPIKey == "" {
		slog.Info("GEMINI_API_KEY no está configurada; el análisis con IA queda deshabilitado")
	}

	return cfg
}

// AIEnabled reports whether the optional AI credential is present.
func (c Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}
