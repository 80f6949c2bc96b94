package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Renderer backends
const (
	RendererRod    = "rod"
	RendererStatic = "static"
)

// Artifact store backends
const (
	ArtifactStoreInline = "inline"
	ArtifactStoreAzure  = "azure"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	NavigationTimeout  time.Duration
	MaxRequestBodySize int64
	LogLevel           string

	ViewportWidth  int
	ViewportHeight int

	Renderer         string
	BrowserRemoteURL string
	BrowserStealth   bool

	MaxConcurrentAnalyses int
	CacheTTL              time.Duration
	DatabasePath          string

	ArtifactStore         string
	AzureStorageAccount   string
	AzureStorageKey       string
	AzureStorageContainer string

	OCREnabled  bool
	OCRLanguage string

	RateLimitRPS   float64
	RateLimitBurst int
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 90*time.Second),
		NavigationTimeout:  parseDurationOrDefault("NAVIGATION_TIMEOUT", 30*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 1024*1024), // 1MB
		LogLevel:           strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),

		ViewportWidth:  int(parseIntOrDefault("VIEWPORT_WIDTH", 1920)),
		ViewportHeight: int(parseIntOrDefault("VIEWPORT_HEIGHT", 1080)),

		Renderer:         strings.ToLower(getEnvOrDefault("RENDERER", RendererRod)),
		BrowserRemoteURL: os.Getenv("BROWSER_REMOTE_URL"),
		BrowserStealth:   parseBoolOrDefault("BROWSER_STEALTH", true),

		MaxConcurrentAnalyses: int(parseIntOrDefault("MAX_CONCURRENT_ANALYSES", 4)),
		CacheTTL:              parseDurationOrZero("CACHE_TTL", 10*time.Minute),
		DatabasePath:          getEnvOrDefault("DATABASE_PATH", "data/analyses.db"),

		ArtifactStore:         strings.ToLower(getEnvOrDefault("ARTIFACT_STORE", ArtifactStoreInline)),
		AzureStorageAccount:   os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureStorageKey:       os.Getenv("AZURE_STORAGE_KEY"),
		AzureStorageContainer: getEnvOrDefault("AZURE_STORAGE_CONTAINER", "heatmaps"),

		OCREnabled:  parseBoolOrDefault("OCR_ENABLED", false),
		OCRLanguage: getEnvOrDefault("OCR_LANGUAGE", "eng"),

		RateLimitRPS:   parseFloatOrDefault("RATE_LIMIT_RPS", 2),
		RateLimitBurst: int(parseIntOrDefault("RATE_LIMIT_BURST", 5)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 || c.NavigationTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, navigation=%s)",
			c.RequestTimeout, c.NavigationTimeout)
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive (got %dx%d)", c.ViewportWidth, c.ViewportHeight)
	}
	if c.MaxConcurrentAnalyses <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_ANALYSES must be > 0 (got %d)", c.MaxConcurrentAnalyses)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must be >= 0 (got %s)", c.CacheTTL)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit must be >= 0 (got rps=%g, burst=%d)", c.RateLimitRPS, c.RateLimitBurst)
	}

	switch c.Renderer {
	case RendererRod, RendererStatic:
	default:
		return fmt.Errorf("unsupported RENDERER: %q", c.Renderer)
	}

	switch c.ArtifactStore {
	case ArtifactStoreInline:
	case ArtifactStoreAzure:
		if c.AzureStorageAccount == "" || c.AzureStorageKey == "" {
			return fmt.Errorf("ARTIFACT_STORE=azure requires AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY")
		}
	default:
		return fmt.Errorf("unsupported ARTIFACT_STORE: %q", c.ArtifactStore)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

// parseDurationOrZero accepts 0 as an explicit value, for settings where
// zero turns the feature off.
func parseDurationOrZero(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		value = strings.TrimSpace(value)
		if value == "0" {
			return 0
		}
		if duration, err := time.ParseDuration(value); err == nil && duration >= 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
