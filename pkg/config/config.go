package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// CORS
	CORSAllowOrigins []string

	// Rate limiting, e.g. "100-M" for 100 requests per minute per IP.
	RateLimit string

	// How often the timeline sweep checks for missing audit events.
	TimelineSweepInterval time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("TIMELINE_SWEEP_INTERVAL", "10m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.CORSAllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	sweepIntervalStr := viper.GetString("TIMELINE_SWEEP_INTERVAL")
	sweepInterval, err := time.ParseDuration(sweepIntervalStr)
	if err != nil {
		sweepInterval = 10 * time.Minute
		log.Printf("Warning: Invalid value for TIMELINE_SWEEP_INTERVAL ('%s'). Defaulting to %s.\n", sweepIntervalStr, sweepInterval.String())
	}
	cfg.TimelineSweepInterval = sweepInterval

	return cfg, nil
}
