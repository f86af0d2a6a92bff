package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string // empty disables the match-history ledger
}

// Load reads .env when present, then the environment.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Addr:        getEnv("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
