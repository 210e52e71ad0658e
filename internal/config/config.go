package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	RedisURL       string
	OpenAIKey      string
	OpenAIModel    string
	MetricsPort    string
	WorkerCount    int
	LogLevel       string
	PriceListPath  string
	SKUMappingPath string
	OutputDir      string
	SiteBaseURL    string
	AICacheTTL     time.Duration
}

func Load() *Config {
	// .env at the project root when run from cmd/<tool>
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		WorkerCount:    getEnvInt("WORKER_COUNT", 4),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PriceListPath:  os.Getenv("PRICE_LIST_PATH"),
		SKUMappingPath: getEnv("SKU_MAPPING_PATH", "config/sku_mapping.json"),
		OutputDir:      getEnv("OUTPUT_DIR", "output"),
		SiteBaseURL:    getEnv("SITE_BASE_URL", "https://www.lodes.com"),
		AICacheTTL:     getEnvDuration("AI_CACHE_TTL", 30*24*time.Hour),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n <= 0 {
		return d
	}
	return n
}

func getEnvDuration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil || v <= 0 {
		return d
	}
	return v
}
