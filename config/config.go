package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`

	// Server
	Port            int           `mapstructure:"PORT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	// Database
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`

	// JWT
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Puzzles
	PuzzleDir string `mapstructure:"PUZZLE_DIR"`

	// Client sync
	PollInterval time.Duration `mapstructure:"POLL_INTERVAL"`

	// Rewards
	CompletionAward int `mapstructure:"COMPLETION_AWARD"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables take precedence
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("SHUTDOWN_TIMEOUT", time.Second*30)
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("PUZZLE_DIR", "puzzles")
	viper.SetDefault("POLL_INTERVAL", time.Second*5)
	viper.SetDefault("COMPLETION_AWARD", 50)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK if we're using env vars
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate required fields
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return config, nil
}
