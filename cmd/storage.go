package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/config"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/store"
)

// Scan results keep their value for a while (a distressed asset stays
// distressed), so the default retention is generous.
const defaultRetention = 90 * 24 * time.Hour

var flagPruneOlderThan string

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old scan results from the local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening asset store: %w", err)
		}
		defer db.Close()

		retention := defaultRetention
		if flagPruneOlderThan != "" {
			d, err := parseSince(flagPruneOlderThan)
			if err != nil {
				return fmt.Errorf("invalid --older-than value: %w", err)
			}
			retention = d
		}

		deleted, err := db.Prune(retention)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}

		if deleted == 0 {
			fmt.Println("Nothing to prune.")
		} else {
			fmt.Printf("Pruned %d asset(s) older than %s.\n", deleted, formatDuration(retention))
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show asset store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.StorePath()
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening asset store: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Store: %s\n", dbPath)
		fmt.Printf("Assets: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

func init() {
	pruneCmd.Flags().StringVar(&flagPruneOlderThan, "older-than", "", "override retention period (e.g. 30d, 720h)")
}

// parseSince accepts Go durations plus a day suffix, since hours are an
// awkward unit for retention windows.
func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func formatDuration(d time.Duration) string {
	if days := int(d.Hours() / 24); days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
