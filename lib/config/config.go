package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int

	OpenAIAPIKey string
	OpenAIModel  string

	TMDBAPIKey string
	Region     string
	Language   string

	CORSOrigins []string

	ClassifyTimeout time.Duration
	ProviderTimeout time.Duration

	RateLimitPerMinute int
}

// Load configuration from env. A .env file next to the binary is read first
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnvInt("PORT", 8000),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		TMDBAPIKey:         getEnv("TMDB_API_KEY", "PLACEHOLDER"),
		Region:             getEnv("TMDB_REGION", "DE"),
		Language:           getEnv("TMDB_LANGUAGE", "de-DE"),
		CORSOrigins:        getEnvList("CORS_ORIGINS", "*"),
		ClassifyTimeout:    getEnvDuration("CLASSIFY_TIMEOUT", 8*time.Second),
		ProviderTimeout:    getEnvDuration("PROVIDER_TIMEOUT", 5*time.Second),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	parts := strings.Split(getEnv(key, fallback), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
