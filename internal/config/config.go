package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Source enables or disables one marketplace scanner.
type Source struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

// ScanConfig holds the cascade and aggregation knobs. The thresholds are
// configuration, not behavior: the defaults mirror the constants the engine
// shipped with, but nothing downstream assumes the exact numbers.
type ScanConfig struct {
	Concurrency       int    `yaml:"concurrency"`
	MinDirectResults  int    `yaml:"min_direct_results"`
	MinUserCount      int    `yaml:"min_user_count"`
	RequestTimeout    string `yaml:"request_timeout"`
	SupplementTimeout string `yaml:"supplement_timeout"`
	ResultCacheTTL    string `yaml:"result_cache_ttl"`
	ResultCacheMax    int    `yaml:"result_cache_max"`
}

// AnalysisConfig holds the score-cache knobs.
type AnalysisConfig struct {
	CacheTTL string `yaml:"cache_ttl"`
	CacheMax int    `yaml:"cache_max"`
}

// SearchConfig configures the supplementary search-API tier. An empty key
// (after env resolution) feature-gates the tier off.
type SearchConfig struct {
	APIKey string `yaml:"api_key"`
}

// AIConfig configures the text-generation collaborator.
type AIConfig struct {
	Provider string `yaml:"provider"` // "claude" or "openai"
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

type Config struct {
	Scan     ScanConfig     `yaml:"scan"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Quotas   map[string]int `yaml:"quotas"`
	Sources  []Source       `yaml:"sources"`
	Search   SearchConfig   `yaml:"search,omitempty"`
	AI       *AIConfig      `yaml:"ai,omitempty"`
}

func (c *Config) Concurrency() int {
	if c.Scan.Concurrency <= 0 {
		return 4
	}
	return c.Scan.Concurrency
}

func (c *Config) MinDirectResults() int {
	if c.Scan.MinDirectResults <= 0 {
		return 5
	}
	return c.Scan.MinDirectResults
}

func (c *Config) MinUserCount() int {
	if c.Scan.MinUserCount <= 0 {
		return 1000
	}
	return c.Scan.MinUserCount
}

func (c *Config) RequestTimeout() time.Duration {
	return parseDurationOr(c.Scan.RequestTimeout, 15*time.Second)
}

func (c *Config) SupplementTimeout() time.Duration {
	return parseDurationOr(c.Scan.SupplementTimeout, 10*time.Second)
}

func (c *Config) ResultCacheTTL() time.Duration {
	return parseDurationOr(c.Scan.ResultCacheTTL, 6*time.Hour)
}

func (c *Config) ResultCacheMax() int {
	if c.Scan.ResultCacheMax <= 0 {
		return 500
	}
	return c.Scan.ResultCacheMax
}

func (c *Config) AnalysisCacheTTL() time.Duration {
	return parseDurationOr(c.Analysis.CacheTTL, 24*time.Hour)
}

func (c *Config) AnalysisCacheMax() int {
	if c.Analysis.CacheMax <= 0 {
		return 1000
	}
	return c.Analysis.CacheMax
}

// QuotaFor returns the daily scan limit for a caller tier, defaulting to the
// free tier for unknown tiers.
func (c *Config) QuotaFor(tier string) int {
	if n, ok := c.Quotas[tier]; ok && n > 0 {
		return n
	}
	if n, ok := c.Quotas["free"]; ok && n > 0 {
		return n
	}
	return 10
}

// SourceEnabled reports whether a marketplace is enabled. Marketplaces not
// listed in the config are enabled by default so new scanners ship on.
func (c *Config) SourceEnabled(name string) bool {
	for _, s := range c.Sources {
		if s.Name == name {
			return s.Enabled
		}
	}
	return true
}

// SearchKey returns the supplementary search-API key (config or env var).
func (c *Config) SearchKey() string {
	if c.Search.APIKey != "" {
		return c.Search.APIKey
	}
	return os.Getenv("ASSETHUNTER_SEARCH_KEY")
}

// SearchEnabled reports whether the supplement tier of the cascade is
// available.
func (c *Config) SearchEnabled() bool {
	return c.SearchKey() != ""
}

// AIKey returns the resolved collaborator API key (config or env var).
func (c *Config) AIKey() string {
	if c.AI != nil && c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	return os.Getenv("ASSETHUNTER_AI_KEY")
}

// AIEnabled returns true if the text-generation collaborator is configured.
func (c *Config) AIEnabled() bool {
	return c.AI != nil && c.AIKey() != ""
}

func parseDurationOr(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "assethunter", "config.yaml")
}

func StorePath() string {
	return filepath.Join(xdg.CacheHome, "assethunter", "assets.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
	}
	if cfg.AI != nil {
		switch cfg.AI.Provider {
		case "", "claude", "openai":
		default:
			return fmt.Errorf("unknown AI provider: %q (valid: claude, openai)", cfg.AI.Provider)
		}
	}
	for tier, n := range cfg.Quotas {
		if n < 0 {
			return fmt.Errorf("quota for tier %q must be non-negative, got %d", tier, n)
		}
	}
	return nil
}
