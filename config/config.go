package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	PORT           string
	DB_URL         string
	SESSION_SECRET string

	ALLOWED_ORIGINS []string
	STATIC_DIR      string
	IS_PRODUCTION   bool
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	IS_PRODUCTION = os.Getenv("APP_ENV") == "production"

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	SESSION_SECRET = mustEnv("SESSION_SECRET")
	STATIC_DIR = getEnv("STATIC_DIR", "./static")

	// Comma-separated origin whitelist. Empty in production means "no
	// cross-origin callers"; development falls back to the Vite dev server.
	defaultOrigins := "http://localhost:5173"
	if IS_PRODUCTION {
		defaultOrigins = ""
	}
	ALLOWED_ORIGINS = splitOrigins(getEnv("ALLOWED_ORIGINS", defaultOrigins))
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
