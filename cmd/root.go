package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/ai"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/cascade"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/config"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/quota"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/scancache"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/scorer"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/searchapi"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/sources"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagTier    string
	flagCaller  string
	flagScope   string
	flagPlain   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "assethunter <query>",
	Short: "Digital asset acquisition scanner",
	Long: `assethunter scans browser-extension, plugin, and app marketplaces for
abandoned or undervalued digital assets, then scores the acquisition
opportunity on a five-axis radar.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagTier, "tier", "free", "caller tier (free, scout, hunter, syndicate)")
	rootCmd.PersistentFlags().StringVar(&flagCaller, "caller", "local", "caller identity for quota accounting")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log source-level detail to stderr")
	rootCmd.Flags().StringVar(&flagScope, "scope", "all", "marketplace scope for the scan")
	rootCmd.Flags().BoolVar(&flagPlain, "plain", false, "print a table instead of launching the dashboard")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func quotaLimits(cfg *config.Config) map[string]int {
	limits := make(map[string]int)
	for _, tier := range []string{"free", "scout", "hunter", "syndicate"} {
		limits[tier] = cfg.QuotaFor(tier)
	}
	for tier, n := range cfg.Quotas {
		if n > 0 {
			limits[tier] = n
		}
	}
	return limits
}

func newController(cfg *config.Config, log *slog.Logger) *cascade.Controller {
	ctrl := &cascade.Controller{
		Adapters:          sources.All(cfg, log),
		Cache:             scancache.New(cfg.ResultCacheTTL(), cfg.ResultCacheMax()),
		Quota:             quota.NewLedger(quotaLimits(cfg)),
		Concurrency:       cfg.Concurrency(),
		MinDirect:         cfg.MinDirectResults(),
		SupplementTimeout: cfg.SupplementTimeout(),
		Log:               log,
	}
	if cfg.SearchEnabled() {
		ctrl.Search = searchapi.New(cfg.SearchKey(), cfg.SupplementTimeout(), log)
	}
	return ctrl
}

func newScorer(cfg *config.Config, log *slog.Logger) *scorer.Engine {
	eng := &scorer.Engine{
		Cache: scorer.NewCache(cfg.AnalysisCacheTTL(), cfg.AnalysisCacheMax()),
		Log:   log,
	}
	if cfg.AIEnabled() {
		gen, err := ai.New(cfg.AI, cfg.AIKey())
		if err != nil {
			log.Warn("analysis provider unavailable, using baseline scores", "err", err)
		} else {
			eng.Gen = gen
		}
	}
	return eng
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("assethunter %s (commit: %s, built: %s)\n", version, commit, date)
		if r := checkUpdate(); r != nil {
			fmt.Printf("Update available: %s\n", r.LatestVersion)
		}
	},
}
