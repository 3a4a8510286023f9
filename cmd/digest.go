package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/config"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/digest"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/store"
)

var (
	flagDigestSince  string
	flagDigestTop    int
	flagDigestStatus string
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Summarize the best stored opportunities",
	Long: `Rank every stored asset by distress signal and print the top
opportunities with their estimated MRR. Useful as a daily deal-flow brief
after a few scans have filled the store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening asset store: %w", err)
		}
		defer db.Close()

		opts := digest.GenerateOpts{
			DB:     db,
			TopN:   flagDigestTop,
			Status: flagDigestStatus,
		}
		if flagDigestSince != "" {
			d, err := parseSince(flagDigestSince)
			if err != nil {
				return fmt.Errorf("invalid --since value: %w", err)
			}
			opts.Since = time.Now().Add(-d)
		}

		d, err := digest.Generate(opts)
		if err != nil {
			return fmt.Errorf("building digest: %w", err)
		}

		fmt.Println(formatDigest(d))
		return nil
	},
}

func init() {
	digestCmd.Flags().StringVar(&flagDigestSince, "since", "", "only consider assets scanned in the window (e.g. 7d, 24h)")
	digestCmd.Flags().IntVar(&flagDigestTop, "top", 5, "number of opportunities to show")
	digestCmd.Flags().StringVar(&flagDigestStatus, "status", "", "restrict to one status (distressed, for_sale, potential)")
}

func formatDigest(d *digest.Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Opportunity digest for %s\n", d.DateLabel)
	fmt.Fprintf(&b, "%d assets in window, %d distressed, %d for sale, $%d/mo estimated MRR in total\n",
		d.Scanned, d.Distressed, d.ForSale, d.TotalMRR)

	if len(d.Cards) == 0 {
		b.WriteString("\nNothing in the store yet. Run a scan first.\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, c := range d.Cards {
		r := c.Record
		fmt.Fprintf(&b, "%d. %s (%s)\n", c.Index, r.Name, r.Marketplace)
		fmt.Fprintf(&b, "   signal %.1f · %d users · est. $%d/mo · %s\n",
			c.Signal, r.UserCount, r.MRRPotential, r.Status)
		if r.URL != "" {
			fmt.Fprintf(&b, "   %s\n", r.URL)
		}
	}
	return b.String()
}
