package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	MongoURI string
	MongoDB  string

	CatalogBaseURL string
	CatalogTimeout time.Duration

	SummaryMaxConcurrent int
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "shop"),

		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "http://localhost:8090"),
		CatalogTimeout: time.Duration(getEnvInt("CATALOG_TIMEOUT_MS", 10000)) * time.Millisecond,

		SummaryMaxConcurrent: getEnvInt("SUMMARY_MAX_CONCURRENT", 10),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
