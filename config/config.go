package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Reference API server
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	FrontendURL string
	RateLimit   int

	// Client
	APIBaseURL       string
	StatePath        string
	StateKey         string
	RequestTimeout   time.Duration
	HydrateResources []string

	LogLevel    string
	Environment string
}

// Load reads the environment. Callers load .env with godotenv first.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:    getEnvDuration("TOKEN_TTL", 24*time.Hour),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		RateLimit:   getEnvInt("RATE_LIMIT", 100),

		APIBaseURL:       getEnv("API_BASE_URL", "http://localhost:8080"),
		StatePath:        getEnv("STATE_PATH", "wealth-sync.db"),
		StateKey:         os.Getenv("STATE_KEY"),
		RequestTimeout:   getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		HydrateResources: getEnvList("HYDRATE_RESOURCES", []string{"profile", "wallets", "transactions"}),

		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

// AllowedOrigins splits FRONTEND_URL on commas.
func (c Config) AllowedOrigins() []string {
	return splitList(c.FrontendURL)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
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

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return splitList(v)
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
