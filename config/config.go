package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port           string
	DataDir        string
	HashingSecret  string
	SendGridAPIKey string
	EmailSender    string
	StripeAPIKey   string
	StripeURL      string
}

// Load reads the .env file if one exists and builds the configuration
// from environment variables, falling back to development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Println("no .env file found, proceeding with environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "8000"),
		DataDir:        getEnv("DATA_DIR", ".data"),
		HashingSecret:  getEnv("HASHING_SECRET", "thisIsASecret"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@pizzeria.local"),
		StripeAPIKey:   getEnv("STRIPE_API_KEY", ""),
		StripeURL:      getEnv("STRIPE_URL", "https://api.stripe.com"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
