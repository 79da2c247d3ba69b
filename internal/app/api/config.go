package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultRequiredAge applies when REQUIRED_AGE is not supplied.
const DefaultRequiredAge = 18

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	PostgresDSN string
	RequiredAge int
}

// LoadConfig reads a local .env file if present, then environment variables,
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RequiredAge: DefaultRequiredAge,
	}
	if raw := strings.TrimSpace(os.Getenv("REQUIRED_AGE")); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil || years <= 0 {
			return Config{}, fmt.Errorf("REQUIRED_AGE must be a positive integer")
		}
		cfg.RequiredAge = years
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
