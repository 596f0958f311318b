// README: Config loader with env defaults for HTTP, AI provider, quota DB, Redis cache and rate limiting.
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type AIConfig struct {
	Provider  string
	Model     string
	GeminiKey string
	OpenAIKey string
	Timeout   time.Duration
}

type Config struct {
	HTTP struct {
		Addr        string
		RatePerMin  int
		CORSOrigins []string
	}
	DB struct {
		DSN          string
		MonthlyQuota int
	}
	Redis struct {
		Addr     string
		CacheTTL time.Duration
	}
	AI AIConfig
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("ROTEIRO_HTTP_ADDR", ":5000")
	cfg.HTTP.RatePerMin = envOrDefaultInt("ROTEIRO_RATE_PER_MIN", 20)
	cfg.HTTP.CORSOrigins = splitList(envOrDefault("ROTEIRO_CORS_ORIGINS", "*"))
	cfg.DB.DSN = os.Getenv("ROTEIRO_DB_DSN")
	cfg.DB.MonthlyQuota = envOrDefaultInt("ROTEIRO_MONTHLY_QUOTA", 100)
	cfg.Redis.Addr = os.Getenv("ROTEIRO_REDIS_ADDR")
	cfg.Redis.CacheTTL = envOrDefaultDuration("ROTEIRO_CACHE_TTL", 24*time.Hour)
	cfg.AI.Provider = strings.ToLower(envOrDefault("ROTEIRO_AI_PROVIDER", ProviderGemini))
	cfg.AI.Model = os.Getenv("ROTEIRO_AI_MODEL")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.Timeout = envOrDefaultDuration("ROTEIRO_AI_TIMEOUT", 60*time.Second)

	return cfg, cfg.Validate()
}

// Validate checks that the selected AI provider has its API key.
func (c Config) Validate() error {
	switch c.AI.Provider {
	case ProviderGemini:
		if c.AI.GeminiKey == "" {
			return errors.New("GEMINI_API_KEY environment variable not set")
		}
	case ProviderOpenAI:
		if c.AI.OpenAIKey == "" {
			return errors.New("OPENAI_API_KEY environment variable not set")
		}
	default:
		return errors.New("unknown ROTEIRO_AI_PROVIDER: " + c.AI.Provider)
	}
	if c.HTTP.RatePerMin <= 0 {
		return errors.New("ROTEIRO_RATE_PER_MIN must be positive")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
