// Package digest builds the top-opportunity summary from stored scan
// results: the highest-signal assets in a recency window, grouped stats, and
// a headline figure for the total unrealized MRR.
package digest

import (
	"fmt"
	"sort"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/signal"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/store"
)

// Digest holds one generated opportunity summary.
type Digest struct {
	DateLabel  string
	Scanned    int
	Selected   int
	TotalMRR   int
	Distressed int
	ForSale    int
	Cards      []Card
}

// Card is one ranked opportunity in the digest.
type Card struct {
	Record store.Record
	Index  int
	Signal float64
}

// GenerateOpts holds options for the Generate function.
type GenerateOpts struct {
	DB     *store.Store
	Since  time.Time
	TopN   int
	Status string
}

// Generate scores every stored asset in the window and selects the top
// opportunities by distress signal, breaking ties by user count.
func Generate(opts GenerateOpts) (*Digest, error) {
	if opts.TopN <= 0 {
		opts.TopN = 5
	}

	records, err := opts.DB.GetAssets(store.QueryOpts{Since: opts.Since, Status: opts.Status})
	if err != nil {
		return nil, fmt.Errorf("fetching assets: %w", err)
	}

	d := &Digest{
		DateLabel: time.Now().Format("Jan 2"),
		Scanned:   len(records),
	}
	if len(records) == 0 {
		return d, nil
	}

	type scored struct {
		rec store.Record
		sig float64
	}
	all := make([]scored, len(records))
	for i, r := range records {
		all[i] = scored{rec: r, sig: signal.Score(signal.Input{
			Name:        r.Name,
			Description: r.Description,
			DetailsNote: r.Details,
			Marketplace: r.Marketplace,
			UserCount:   r.UserCount,
			MRR:         r.MRRPotential,
		})}
		d.TotalMRR += r.MRRPotential
		switch r.Status {
		case "distressed":
			d.Distressed++
		case "for_sale":
			d.ForSale++
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].sig != all[j].sig {
			return all[i].sig > all[j].sig
		}
		return all[i].rec.UserCount > all[j].rec.UserCount
	})

	if len(all) > opts.TopN {
		all = all[:opts.TopN]
	}
	d.Selected = len(all)

	for i, s := range all {
		d.Cards = append(d.Cards, Card{Record: s.rec, Index: i + 1, Signal: s.sig})
	}
	return d, nil
}
