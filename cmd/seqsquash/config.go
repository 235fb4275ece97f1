package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the seqsquash.yaml configuration file.
type Config struct {
	DatabaseURL   string `yaml:"database_url"`
	ModelsDir     string `yaml:"models_dir"`
	MigrationsDir string `yaml:"migrations_dir"`
}

// loadConfig loads configuration from .env, config file, env vars, and CLI
// flags. Precedence: CLI flags > env vars > config file > defaults.
func loadConfig() (*Config, error) {
	// A local .env feeds the environment lookups below; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		ModelsDir:     DefaultModelsDir,
		MigrationsDir: DefaultMigrationsDir,
	}

	// Load config file if it exists
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		// Handle env var interpolation in database_url
		cfg.DatabaseURL = expandEnvVars(cfg.DatabaseURL)
	}

	// Override with env vars
	if envURL := os.Getenv("DATABASE_URL"); envURL != "" {
		cfg.DatabaseURL = envURL
	}
	if envModels := os.Getenv("SEQSQUASH_MODELS_DIR"); envModels != "" {
		cfg.ModelsDir = envModels
	}
	if envMigrations := os.Getenv("SEQSQUASH_MIGRATIONS_DIR"); envMigrations != "" {
		cfg.MigrationsDir = envMigrations
	}

	// Override with CLI flags (highest priority)
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if modelsDir != "" {
		cfg.ModelsDir = modelsDir
	}
	if migrationsDir != "" {
		cfg.MigrationsDir = migrationsDir
	}

	return cfg, nil
}

// expandEnvVars expands ${VAR} patterns in a string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}
