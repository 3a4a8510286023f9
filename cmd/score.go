package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/config"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/render"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/scorer"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score <asset-id-or-name>",
	Short: "Score a previously scanned asset",
	Long: `Look an asset up in the local store by ID or name and print its
acquisition score card. Free-tier callers get the numeric analysis only;
the qualitative narrative stays locked.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening asset store: %w", err)
		}
		defer db.Close()

		target := strings.Join(args, " ")
		rec, err := findAsset(db, target)
		if err != nil {
			return err
		}

		eng := newScorer(cfg, log)
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		a := rec.Asset()
		s := eng.Score(ctx, a)
		if flagTier == "free" {
			s = scorer.Redact(s)
		}
		fmt.Println(render.ScoreCard(a, s))
		return nil
	},
}

func findAsset(db *store.Store, target string) (store.Record, error) {
	records, err := db.GetAssets(store.QueryOpts{Search: target})
	if err != nil {
		return store.Record{}, fmt.Errorf("querying asset store: %w", err)
	}
	for _, r := range records {
		if r.ID == target {
			return r, nil
		}
	}
	if len(records) > 0 {
		return records[0], nil
	}
	return store.Record{}, fmt.Errorf("no stored asset matches %q, run a scan first", target)
}
