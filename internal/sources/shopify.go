package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Shopify scans the Shopify App Store search page. Install counts are not
// public, so the merchant base is estimated from review counts.
type Shopify struct {
	*Client
}

func (s *Shopify) Name() string { return "Shopify App Store" }

var (
	shopifyCardPattern = regexp.MustCompile(`(?i)href="/([a-z0-9-]+)"[^>]*class="[^"]*app-card`)
	shopifyLinkPattern = regexp.MustCompile(`(?i)apps\.shopify\.com/([a-z0-9-]+)['"]`)
)

// reviewsPerMerchant is the review-to-install expansion factor used when a
// marketplace only exposes review counts.
const reviewsPerMerchant = 50

func (s *Shopify) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://apps.shopify.com/search?q=" + url.QueryEscape(query)
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("shopify app store: %w", err)
	}
	return parseShopifySearch(string(body), s.MinUsers), nil
}

func parseShopifySearch(html string, minUsers int) []asset.Asset {
	var assets []asset.Asset
	seen := make(map[string]bool)

	matches := shopifyCardPattern.FindAllStringSubmatch(html, -1)
	matches = append(matches, shopifyLinkPattern.FindAllStringSubmatch(html, -1)...)

	for _, m := range matches {
		slug := m[1]
		if seen[slug] || strings.Contains(slug, "search") || strings.Contains(slug, "collection") {
			continue
		}
		seen[slug] = true

		reviewCount := 50
		reviewPattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(slug) + `[\s\S]*?(\d+)\s*reviews?`)
		if rm := reviewPattern.FindStringSubmatch(html); rm != nil {
			reviewCount = extractNumber(rm[1])
		}
		estimatedUsers := reviewCount * reviewsPerMerchant
		if estimatedUsers < minUsers {
			continue
		}

		assets = append(assets, asset.Asset{
			ID:           "shopify-" + slug,
			Name:         nameFromSlug(slug),
			Type:         asset.ShopifyApp,
			Marketplace:  "Shopify App Store",
			URL:          "https://apps.shopify.com/" + slug,
			Description:  fmt.Sprintf("Shopify app with ~%s merchants.", commaFormat(estimatedUsers)),
			UserCount:    estimatedUsers,
			MRRPotential: asset.MRR(asset.ShopifyApp, estimatedUsers),
			Status:       asset.StatusPotential,
			DetailsNote:  "Merchant base opportunity. Check recent reviews.",
		})
		if len(assets) >= 8 {
			break
		}
	}
	return assets
}
