// README: Config loader with env defaults for HTTP, DB, Redis, completion provider, catalog and maps settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

var ErrMissingKey = errors.New("required configuration missing")

type LLMConfig struct {
	Provider       string
	AnthropicKey   string
	Endpoint       string
	Model          string
	MaxTokens      int
	RequestTimeout time.Duration
	MaxAttempts    int
	PauseDelay     time.Duration
	MCPServerURL   string
	MCPServerName  string
	GeminiKey      string
	GeminiModel    string
}

type CatalogConfig struct {
	BaseURL       string
	RPS           float64
	Burst         int
	CacheTTL      time.Duration
	Concurrency   int
	InventoryDays int
}

type Config struct {
	Environment string
	HTTP        struct {
		Addr        string
		CORSOrigins []string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr       string
		SessionTTL time.Duration
	}
	LLM     LLMConfig
	Catalog CatalogConfig
	Maps    struct {
		APIKey string
		Mode   string
	}
}

// Load reads a .env file when present, then the environment. Missing provider
// credentials are reported as ErrMissingKey.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Environment = envOrDefault("TOURPLAN_ENV", "development")
	cfg.HTTP.Addr = envOrDefault("TOURPLAN_HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigins = envList("TOURPLAN_CORS_ORIGINS", []string{"*"})
	cfg.DB.DSN = os.Getenv("TOURPLAN_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TOURPLAN_REDIS_ADDR")
	cfg.Redis.SessionTTL = envOrDefaultDuration("TOURPLAN_SESSION_TTL", 2*time.Hour)

	cfg.LLM = LLMConfig{
		Provider:       strings.ToLower(envOrDefault("TOURPLAN_LLM_PROVIDER", ProviderAnthropic)),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		Endpoint:       envOrDefault("TOURPLAN_LLM_ENDPOINT", "https://api.anthropic.com/v1/messages"),
		Model:          envOrDefault("TOURPLAN_LLM_MODEL", "claude-sonnet-4-20250514"),
		MaxTokens:      envOrDefaultInt("TOURPLAN_LLM_MAX_TOKENS", 10000),
		RequestTimeout: envOrDefaultDuration("TOURPLAN_LLM_TIMEOUT", 5*time.Second),
		MaxAttempts:    envOrDefaultInt("TOURPLAN_LLM_MAX_ATTEMPTS", 5),
		PauseDelay:     envOrDefaultDuration("TOURPLAN_LLM_PAUSE_DELAY", 60*time.Second),
		MCPServerURL:   envOrDefault("TOURPLAN_MCP_SERVER_URL", "https://proud-sparkle-production.up.railway.app/mcp"),
		MCPServerName:  envOrDefault("TOURPLAN_MCP_SERVER_NAME", "headout"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOrDefault("TOURPLAN_GEMINI_MODEL", "gemini-2.0-flash"),
	}

	cfg.Catalog = CatalogConfig{
		BaseURL:       envOrDefault("TOURPLAN_CATALOG_BASE_URL", "https://api-ho.headout.com"),
		RPS:           envOrDefaultFloat("TOURPLAN_CATALOG_RPS", 10),
		Burst:         envOrDefaultInt("TOURPLAN_CATALOG_BURST", 5),
		CacheTTL:      envOrDefaultDuration("TOURPLAN_CATALOG_CACHE_TTL", 5*time.Minute),
		Concurrency:   envOrDefaultInt("TOURPLAN_CATALOG_CONCURRENCY", 8),
		InventoryDays: envOrDefaultInt("TOURPLAN_INVENTORY_DAYS", 7),
	}

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Maps.Mode = envOrDefault("TOURPLAN_TRAVEL_MODE", "walking")

	switch cfg.LLM.Provider {
	case ProviderAnthropic:
		// The relay endpoint may inject its own key, so only a direct call needs one.
		if cfg.LLM.AnthropicKey == "" && strings.Contains(cfg.LLM.Endpoint, "api.anthropic.com") {
			return cfg, fmt.Errorf("%w: ANTHROPIC_API_KEY", ErrMissingKey)
		}
	case ProviderGemini:
		if cfg.LLM.GeminiKey == "" {
			return cfg, fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingKey)
		}
	default:
		return cfg, fmt.Errorf("unknown TOURPLAN_LLM_PROVIDER %q", cfg.LLM.Provider)
	}
	return cfg, nil
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

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

// envOrDefaultDuration accepts Go durations ("90s") or a bare number of seconds.
func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
