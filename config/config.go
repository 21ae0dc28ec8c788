package config

import (
	"fmt"
	"os"

	"moxie/database"
	"moxie/validator"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string `json:"database_url" validate:"required,dburl"`
	Env         string `json:"env" validate:"required,oneof=development production test"`
	LogLevel    string `json:"log_level" validate:"required,loglevel"`
	Port        string `json:"port" validate:"required,numeric"`
	CORSOrigins string `json:"cors_origins"`
}

// Load reads the configuration from the environment, after loading a .env
// file when there is one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: GetEnv("DATABASE_URL", database.DefaultURL),
		Env:         GetEnv("ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		Port:        GetEnv("PORT", "3000"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "*"),
	}

	if err := validator.New().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
