package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Chrome scans the Chrome Web Store search page. The store renders listing
// links as /detail/<slug>/<32-char id>; user counts appear near the id in the
// markup when present.
type Chrome struct {
	*Client
}

func (s *Chrome) Name() string { return "Chrome Web Store" }

var chromeDetailPattern = regexp.MustCompile(`(?i)/detail/([^/"]+)/([a-z]{32})`)

func (s *Chrome) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://chromewebstore.google.com/search/" + url.PathEscape(query)
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("chrome web store: %w", err)
	}
	return parseChromeSearch(string(body), query, s.MinUsers), nil
}

func parseChromeSearch(html, query string, minUsers int) []asset.Asset {
	var assets []asset.Asset
	seen := make(map[string]bool)

	for _, m := range chromeDetailPattern.FindAllStringSubmatch(html, -1) {
		slug, extID := m[1], m[2]
		if seen[extID] {
			continue
		}
		seen[extID] = true

		decoded, err := url.PathUnescape(slug)
		if err != nil {
			decoded = slug
		}
		name := truncate(nameFromSlug(decoded), 50)

		userCount := 5000
		userPattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(extID) + `[^>]*>[\s\S]*?(\d[\d,]*\+?)\s*users?`)
		if um := userPattern.FindStringSubmatch(html); um != nil {
			userCount = extractNumber(um[1])
		}
		if userCount < minUsers {
			continue
		}

		assets = append(assets, asset.Asset{
			ID:           "chrome-" + extID,
			Name:         name,
			Type:         asset.ChromeExtension,
			Marketplace:  "Chrome Web Store",
			URL:          fmt.Sprintf("https://chromewebstore.google.com/detail/%s/%s", slug, extID),
			Description:  fmt.Sprintf("Chrome extension with %s+ users. Search: %q", commaFormat(userCount), query),
			UserCount:    userCount,
			MRRPotential: asset.MRR(asset.ChromeExtension, userCount),
			Status:       asset.StatusPotential,
			DetailsNote:  "Extension found via direct scan. Verify last update date manually.",
		})
		if len(assets) >= 10 {
			break
		}
	}
	return assets
}
