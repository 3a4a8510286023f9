// Package cascade runs the three-tier scan: direct marketplace scan first,
// search-API supplement when direct results come back thin, curated fallback
// when everything else yields nothing. Results are cached per query so a
// repeat scan inside the window costs neither quota nor network.
package cascade

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/aggregate"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/fallback"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/quota"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/scancache"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/sources"
)

// Result tiers, in cascade order.
const (
	TierCached       = "cached"
	TierDirect       = "direct"
	TierSupplemented = "supplemented"
	TierFallback     = "fallback"
)

// Supplementer is the search-API tier. Nil means no search key is configured
// and the cascade skips straight from direct to fallback.
type Supplementer interface {
	Supplement(ctx context.Context, query string) ([]asset.Asset, error)
}

// Controller owns one scan pipeline.
type Controller struct {
	Adapters          []sources.Adapter
	Cache             *scancache.Cache
	Quota             *quota.Ledger
	Search            Supplementer
	Concurrency       int
	MinDirect         int
	SupplementTimeout time.Duration
	Log               *slog.Logger
}

// Outcome is what one scan produced and how.
type Outcome struct {
	Query    string                   `json:"query"`
	Tier     string                   `json:"tier"`
	Cached   bool                     `json:"cached"`
	Assets   []asset.Asset            `json:"assets"`
	Statuses []aggregate.SourceStatus `json:"sources,omitempty"`
}

// Scan runs the cascade for the query. A cache hit is returned immediately
// and does not consume quota; everything else spends one scan from the
// caller's daily allowance first. The returned error is only ever a quota
// error: source failures degrade through the tiers instead of surfacing.
func (c *Controller) Scan(ctx context.Context, query, scope, caller, tier string) (Outcome, error) {
	log := c.Log
	if log == nil {
		log = slog.Default()
	}

	key := scancache.Key(query, scope)
	if entry, ok := c.Cache.Get(key); ok {
		log.Info("scan cache hit", "query", query, "origin", entry.Tier)
		return Outcome{Query: query, Tier: TierCached, Cached: true, Assets: entry.Assets}, nil
	}

	if err := c.Quota.Consume(caller, tier); err != nil {
		return Outcome{}, err
	}

	direct := aggregate.ScanAll(ctx, scopedAdapters(c.Adapters, scope), query, c.Concurrency, log)
	out := Outcome{Query: query, Statuses: direct.Statuses}

	if len(direct.Assets) >= c.MinDirect {
		out.Tier, out.Assets = TierDirect, direct.Assets
		c.Cache.Put(key, scancache.Entry{Assets: out.Assets, Tier: out.Tier})
		return out, nil
	}

	if c.Search != nil {
		sctx := ctx
		if c.SupplementTimeout > 0 {
			var cancel context.CancelFunc
			sctx, cancel = context.WithTimeout(ctx, c.SupplementTimeout)
			defer cancel()
		}
		supp, err := c.Search.Supplement(sctx, query)
		if err != nil {
			log.Warn("search supplement failed", "query", query, "error", err)
		} else if merged := Dedup(append(direct.Assets, supp...)); len(merged) > 0 {
			sortByUsers(merged)
			out.Tier, out.Assets = TierSupplemented, merged
			c.Cache.Put(key, scancache.Entry{Assets: out.Assets, Tier: out.Tier})
			return out, nil
		}
	}

	log.Info("falling back to curated dataset", "query", query)
	out.Tier, out.Assets = TierFallback, fallback.Assets(query)
	c.Cache.Put(key, scancache.Entry{Assets: out.Assets, Tier: out.Tier})
	return out, nil
}

// scopedAdapters narrows a scan to the marketplaces named in scope, a
// comma-separated list matched case-insensitively against adapter names.
// Empty, "all", or a scope that matches nothing scans everything.
func scopedAdapters(adapters []sources.Adapter, scope string) []sources.Adapter {
	scope = strings.ToLower(strings.TrimSpace(scope))
	if scope == "" || scope == "all" {
		return adapters
	}

	var wanted []string
	for _, part := range strings.Split(scope, ",") {
		if part = strings.TrimSpace(part); part != "" {
			wanted = append(wanted, part)
		}
	}

	var out []sources.Adapter
	for _, a := range adapters {
		name := strings.ToLower(a.Name())
		for _, w := range wanted {
			if strings.Contains(name, w) {
				out = append(out, a)
				break
			}
		}
	}
	if len(out) == 0 {
		return adapters
	}
	return out
}

// Dedup removes duplicate listings, first by URL, then by source type plus
// normalized name, keeping the first occurrence. Input order is preserved, so
// direct-scan entries win over supplement entries for the same listing.
func Dedup(assets []asset.Asset) []asset.Asset {
	seenURL := make(map[string]bool)
	seenName := make(map[string]bool)
	out := assets[:0:0]
	for _, a := range assets {
		if a.URL != "" {
			if seenURL[a.URL] {
				continue
			}
			seenURL[a.URL] = true
		}
		nameKey := string(a.Type) + "|" + strings.ToLower(strings.TrimSpace(a.Name))
		if seenName[nameKey] {
			continue
		}
		seenName[nameKey] = true
		out = append(out, a)
	}
	return out
}

func sortByUsers(assets []asset.Asset) {
	sort.SliceStable(assets, func(i, j int) bool {
		if assets[i].UserCount != assets[j].UserCount {
			return assets[i].UserCount > assets[j].UserCount
		}
		return assets[i].Name < assets[j].Name
	})
}
