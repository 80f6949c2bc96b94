package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "REQUEST_TIMEOUT", "NAVIGATION_TIMEOUT", "MAX_REQUEST_BODY_SIZE",
		"VIEWPORT_WIDTH", "VIEWPORT_HEIGHT", "RENDERER", "BROWSER_STEALTH",
		"MAX_CONCURRENT_ANALYSES", "CACHE_TTL", "ARTIFACT_STORE", "OCR_ENABLED",
		"AZURE_STORAGE_ACCOUNT", "AZURE_STORAGE_KEY", "AZURE_STORAGE_CONTAINER",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("Expected default address, got %s", cfg.ServerAddress())
	}
	if cfg.RequestTimeout != 90*time.Second || cfg.NavigationTimeout != 30*time.Second {
		t.Errorf("Unexpected default timeouts: %s %s", cfg.RequestTimeout, cfg.NavigationTimeout)
	}
	if cfg.ViewportWidth != 1920 || cfg.ViewportHeight != 1080 {
		t.Errorf("Unexpected default viewport %dx%d", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if cfg.Renderer != RendererRod || cfg.ArtifactStore != ArtifactStoreInline {
		t.Errorf("Unexpected default backends: %s %s", cfg.Renderer, cfg.ArtifactStore)
	}
	if !cfg.BrowserStealth || cfg.OCREnabled {
		t.Error("Expected stealth on and OCR off by default")
	}
	if cfg.CacheTTL != 10*time.Minute || cfg.MaxConcurrentAnalyses != 4 {
		t.Errorf("Unexpected defaults: ttl=%s pool=%d", cfg.CacheTTL, cfg.MaxConcurrentAnalyses)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("RENDERER", "STATIC")
	t.Setenv("CACHE_TTL", "0")
	t.Setenv("OCR_ENABLED", "true")
	t.Setenv("BROWSER_STEALTH", "false")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("NAVIGATION_TIMEOUT", "not-a-duration")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Port != "9090" || cfg.Renderer != RendererStatic {
		t.Errorf("Expected overrides, got port=%s renderer=%s", cfg.Port, cfg.Renderer)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("Expected cache disabled, got %s", cfg.CacheTTL)
	}
	if !cfg.OCREnabled || cfg.BrowserStealth {
		t.Error("Expected boolean overrides to apply")
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Errorf("Expected rps 0.5, got %g", cfg.RateLimitRPS)
	}
	if cfg.NavigationTimeout != 30*time.Second {
		t.Errorf("Expected invalid duration to fall back to default, got %s", cfg.NavigationTimeout)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "PORT", "70000"},
		{"port not numeric", "PORT", "http"},
		{"negative body size", "MAX_REQUEST_BODY_SIZE", "-1"},
		{"zero viewport", "VIEWPORT_WIDTH", "0"},
		{"zero pool", "MAX_CONCURRENT_ANALYSES", "0"},
		{"unknown renderer", "RENDERER", "webkit"},
		{"unknown store", "ARTIFACT_STORE", "s3"},
		{"azure without credentials", "ARTIFACT_STORE", "azure"},
		{"negative rate", "RATE_LIMIT_RPS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadFromEnv_Azure(t *testing.T) {
	clearEnv(t)
	t.Setenv("ARTIFACT_STORE", "azure")
	t.Setenv("AZURE_STORAGE_ACCOUNT", "account")
	t.Setenv("AZURE_STORAGE_KEY", "a2V5")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.AzureStorageContainer != "heatmaps" {
		t.Errorf("Expected default container, got %s", cfg.AzureStorageContainer)
	}
}
