package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Firefox scans addons.mozilla.org search results.
type Firefox struct {
	*Client
}

func (s *Firefox) Name() string { return "Firefox Add-ons" }

var firefoxAddonPattern = regexp.MustCompile(`(?i)/addon/([a-z0-9-]+)/?['"]`)

func (s *Firefox) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://addons.mozilla.org/en-US/firefox/search/?q=" + url.QueryEscape(query)
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("firefox add-ons: %w", err)
	}
	return parseFirefoxSearch(string(body), s.MinUsers), nil
}

func parseFirefoxSearch(html string, minUsers int) []asset.Asset {
	var assets []asset.Asset
	seen := make(map[string]bool)

	for _, m := range firefoxAddonPattern.FindAllStringSubmatch(html, -1) {
		slug := m[1]
		if seen[slug] || slug == "addon" {
			continue
		}
		seen[slug] = true

		userCount := 3000
		userPattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(slug) + `[\s\S]*?(\d[\d,]*\+?)\s*users?`)
		if um := userPattern.FindStringSubmatch(html); um != nil {
			userCount = extractNumber(um[1])
		}
		if userCount < minUsers {
			continue
		}

		assets = append(assets, asset.Asset{
			ID:           "firefox-" + slug,
			Name:         nameFromSlug(slug),
			Type:         asset.FirefoxAddon,
			Marketplace:  "Firefox Add-ons",
			URL:          fmt.Sprintf("https://addons.mozilla.org/en-US/firefox/addon/%s/", slug),
			Description:  fmt.Sprintf("Firefox add-on with %s+ users.", commaFormat(userCount)),
			UserCount:    userCount,
			MRRPotential: asset.MRR(asset.FirefoxAddon, userCount),
			Status:       asset.StatusPotential,
			DetailsNote:  "Cross-browser opportunity. Check compatibility.",
		})
		if len(assets) >= 8 {
			break
		}
	}
	return assets
}
