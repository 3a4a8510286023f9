package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/cascade"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/config"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/render"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/store"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/tui"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/update"
)

func runScan(cmd *cobra.Command, args []string) error {
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

	query := strings.Join(args, " ")
	ctrl := newController(cfg, log)
	persist := func(out cascade.Outcome) {
		if out.Cached {
			return
		}
		records := make([]store.Record, 0, len(out.Assets))
		now := time.Now()
		for _, a := range out.Assets {
			records = append(records, store.FromAsset(a, out.Query, out.Tier, now))
		}
		if err := db.UpsertAssets(records); err != nil {
			log.Warn("persisting scan results", "err", err)
		}
	}

	if !flagPlain && isatty.IsTerminal(os.Stdout.Fd()) {
		return tui.Run(tui.RunOpts{
			Cascade: ctrl,
			Scorer:  newScorer(cfg, log),
			Query:   query,
			Scope:   flagScope,
			Caller:  flagCaller,
			Tier:    flagTier,
			OnScan:  persist,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	out, err := ctrl.Scan(ctx, query, flagScope, flagCaller, flagTier)
	if err != nil {
		return err
	}
	persist(out)

	ok := 0
	for _, st := range out.Statuses {
		if st.Success {
			ok++
		}
	}
	if len(out.Statuses) > 0 {
		fmt.Println(render.SourceSummary(ok, len(out.Statuses), out.Tier))
	} else {
		fmt.Printf("Results served from the %s tier.\n", out.Tier)
	}
	fmt.Println(render.AssetTable(out.Assets, isatty.IsTerminal(os.Stdout.Fd())))
	return nil
}

func checkUpdate() *update.Result {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return update.Check(ctx, version)
}
