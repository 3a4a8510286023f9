package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/signal"
)

// WordPress queries the wordpress.org plugin info API. This is the one
// marketplace with a real JSON search endpoint, including install counts and
// last-updated dates, so staleness filtering happens here rather than being
// guessed from markup.
type WordPress struct {
	*Client
	BaseURL string // test override; empty means the public API
}

func (s *WordPress) Name() string { return "WordPress.org" }

type wpPluginList struct {
	Plugins []wpPlugin `json:"plugins"`
}

type wpPlugin struct {
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	ActiveInstalls   int    `json:"active_installs"`
	Rating           int    `json:"rating"`
	LastUpdated      string `json:"last_updated"`
}

// wpStaleMonths is the minimum age of the last update before a plugin is
// worth surfacing: actively maintained plugins are not acquisition targets.
const wpStaleMonths = 6

func (s *WordPress) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	base := s.BaseURL
	if base == "" {
		base = "https://api.wordpress.org"
	}
	apiURL := base + "/plugins/info/1.2/?action=query_plugins&search=" + url.QueryEscape(query) + "&per_page=20"

	body, err := s.get(ctx, apiURL)
	if err != nil {
		return nil, fmt.Errorf("wordpress.org: %w", err)
	}

	var list wpPluginList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("wordpress.org: parsing response: %w", err)
	}

	var assets []asset.Asset
	for _, p := range list.Plugins {
		lastUpdated := parseWPTime(p.LastUpdated)
		months := monthsSince(lastUpdated)
		if p.ActiveInstalls < s.MinUsers || months < wpStaleMonths {
			continue
		}

		name := p.Name
		if name == "" {
			name = p.Slug
		}

		assets = append(assets, signal.Apply(asset.Asset{
			ID:           "wordpress-" + p.Slug,
			Name:         name,
			Type:         asset.WordPressPlugin,
			Marketplace:  "WordPress.org",
			URL:          fmt.Sprintf("https://wordpress.org/plugins/%s/", p.Slug),
			Description:  truncate(p.ShortDescription, 150),
			UserCount:    p.ActiveInstalls,
			MRRPotential: asset.MRR(asset.WordPressPlugin, p.ActiveInstalls),
			Status:       asset.StatusPotential,
			DetailsNote:  fmt.Sprintf("Last updated %d months ago. %d/100 rating.", months, p.Rating),
		}, months))
		if len(assets) >= 10 {
			break
		}
	}
	return assets, nil
}

// parseWPTime handles the API's "2023-01-02 3:04pm GMT" format, falling back
// to a bare date.
func parseWPTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 3:04pm MST", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
