package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Gumroad scans the Gumroad discover search page for digital products.
type Gumroad struct {
	*Client
}

func (s *Gumroad) Name() string { return "Gumroad" }

var gumroadProductPattern = regexp.MustCompile(`(?i)gumroad\.com/l/([a-zA-Z0-9]+)`)

const gumroadDefaultUsers = 500

func (s *Gumroad) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://discover.gumroad.com/search?query=" + url.QueryEscape(query)
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("gumroad: %w", err)
	}

	var assets []asset.Asset
	seen := make(map[string]bool)
	for _, m := range gumroadProductPattern.FindAllStringSubmatch(string(body), -1) {
		productID := m[1]
		if seen[productID] {
			continue
		}
		seen[productID] = true

		// Sales volume is invisible on search pages; Gumroad products clear a
		// lower bar than install-count marketplaces.
		assets = append(assets, asset.Asset{
			ID:           "gumroad-" + productID,
			Name:         "Gumroad Product " + productID,
			Type:         asset.GumroadProduct,
			Marketplace:  "Gumroad",
			URL:          "https://gumroad.com/l/" + productID,
			Description:  "Digital product on Gumroad.",
			UserCount:    gumroadDefaultUsers,
			MRRPotential: asset.MRR(asset.GumroadProduct, gumroadDefaultUsers),
			Status:       asset.StatusPotential,
			DetailsNote:  "Digital product opportunity. Check sales history.",
		})
		if len(assets) >= 5 {
			break
		}
	}
	return assets, nil
}
