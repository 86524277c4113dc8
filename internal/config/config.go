package config

import (
	"os"
	"strconv"
)

type Config struct {
	DatabaseURL        string
	DBDriver           string
	TokenExpireMinutes int
	TokenAlgorithm     string
	TokenSecret        string
	GinMode            string
	Port               string
}

// Load reads configuration from the environment. The defaults are only
// suitable for local development.
func Load() *Config {
	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=todo port=5433 sslmode=disable"),
		DBDriver:           getEnv("DB_DRIVER", "postgres"),
		TokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		TokenAlgorithm:     getEnv("ACCESS_TOKEN_ALGORITHM", "HS256"),
		TokenSecret:        getEnv("ACCESS_TOKEN_SECRET_KEY", "secret"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		Port:               getEnv("PORT", "8000"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
