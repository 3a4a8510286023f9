package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if len(cfg.Sources) == 0 {
		t.Error("expected at least one default source")
	}
	if cfg.Concurrency() != 4 {
		t.Errorf("default concurrency = %d, want 4", cfg.Concurrency())
	}
	if cfg.MinDirectResults() != 5 {
		t.Errorf("default min direct results = %d, want 5", cfg.MinDirectResults())
	}
	if cfg.QuotaFor("hunter") != 100 {
		t.Errorf("hunter quota = %d, want 100", cfg.QuotaFor("hunter"))
	}
}

func TestDurationsFallBack(t *testing.T) {
	cfg := &Config{}
	if got := cfg.RequestTimeout(); got != 15*time.Second {
		t.Errorf("RequestTimeout default = %v, want 15s", got)
	}
	if got := cfg.ResultCacheTTL(); got != 6*time.Hour {
		t.Errorf("ResultCacheTTL default = %v, want 6h", got)
	}
	if got := cfg.AnalysisCacheTTL(); got != 24*time.Hour {
		t.Errorf("AnalysisCacheTTL default = %v, want 24h", got)
	}

	cfg.Scan.RequestTimeout = "bogus"
	if got := cfg.RequestTimeout(); got != 15*time.Second {
		t.Errorf("invalid duration should fall back, got %v", got)
	}

	cfg.Scan.ResultCacheTTL = "30m"
	if got := cfg.ResultCacheTTL(); got != 30*time.Minute {
		t.Errorf("ResultCacheTTL = %v, want 30m", got)
	}
}

func TestQuotaForUnknownTier(t *testing.T) {
	cfg := &Config{Quotas: map[string]int{"free": 3, "hunter": 50}}
	if got := cfg.QuotaFor("mystery"); got != 3 {
		t.Errorf("unknown tier should use free quota, got %d", got)
	}
	if got := cfg.QuotaFor("hunter"); got != 50 {
		t.Errorf("hunter quota = %d, want 50", got)
	}
}

func TestSourceEnabled(t *testing.T) {
	cfg := &Config{Sources: []Source{
		{Name: "Chrome Web Store", Enabled: true},
		{Name: "Gumroad", Enabled: false},
	}}
	if !cfg.SourceEnabled("Chrome Web Store") {
		t.Error("Chrome Web Store should be enabled")
	}
	if cfg.SourceEnabled("Gumroad") {
		t.Error("Gumroad should be disabled")
	}
	if !cfg.SourceEnabled("Brand New Marketplace") {
		t.Error("unlisted sources should default to enabled")
	}
}

func TestSearchEnabled(t *testing.T) {
	t.Setenv("ASSETHUNTER_SEARCH_KEY", "")
	cfg := &Config{}
	if cfg.SearchEnabled() {
		t.Error("search should be disabled without a key")
	}
	cfg.Search.APIKey = "sk-test"
	if !cfg.SearchEnabled() {
		t.Error("search should be enabled with a config key")
	}

	cfg.Search.APIKey = ""
	t.Setenv("ASSETHUNTER_SEARCH_KEY", "env-key")
	if cfg.SearchKey() != "env-key" {
		t.Errorf("SearchKey = %q, want env-key", cfg.SearchKey())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `scan:
  concurrency: 2
  min_direct_results: 3
quotas:
  free: 1
sources:
  - name: Chrome Web Store
    enabled: false
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Concurrency() != 2 {
		t.Errorf("concurrency = %d, want 2", cfg.Concurrency())
	}
	if cfg.MinDirectResults() != 3 {
		t.Errorf("min direct results = %d, want 3", cfg.MinDirectResults())
	}
	if cfg.SourceEnabled("Chrome Web Store") {
		t.Error("Chrome Web Store should be disabled by the file")
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Sources) == 0 {
		t.Error("expected default sources when config doesn't exist")
	}
}

func TestValidateMissingName(t *testing.T) {
	cfg := &Config{Sources: []Source{{Enabled: true}}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := &Config{AI: &AIConfig{Provider: "bard"}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for unknown AI provider")
	}
}

func TestValidateNegativeQuota(t *testing.T) {
	cfg := &Config{Quotas: map[string]int{"free": -1}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for negative quota")
	}
}
