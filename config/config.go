package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port                string `envconfig:"PORT" default:"3000"`
	Env                 string `envconfig:"ENV" default:"development"`
	DBPath              string `envconfig:"DB_PATH" default:"./data/barcodes.db"`
	LogLevel            string `envconfig:"LOG_LEVEL" default:"info"`
	PageSize            int    `envconfig:"PAGE_SIZE" default:"20"`
	DoNotSaveDuplicates bool   `envconfig:"DO_NOT_SAVE_DUPLICATES" default:"false"`
	CORSOrigins         string `envconfig:"CORS_ORIGINS" default:"*"`
}

var AppConfig *Config

// Load reads .env if present, then the process environment, into AppConfig.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if cfg.PageSize < 1 || cfg.PageSize > 500 {
		return nil, fmt.Errorf("PAGE_SIZE must be between 1 and 500, got %d", cfg.PageSize)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH is required")
	}

	AppConfig = cfg
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
