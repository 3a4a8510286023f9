package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Zapier scans the Zapier app directory search page.
type Zapier struct {
	*Client
}

func (s *Zapier) Name() string { return "Zapier" }

var zapierAppPattern = regexp.MustCompile(`(?i)/apps/([a-z0-9-]+)/integrations`)

const zapierDefaultUsers = 8000

func (s *Zapier) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://zapier.com/apps?q=" + url.QueryEscape(query)
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("zapier: %w", err)
	}

	var assets []asset.Asset
	seen := make(map[string]bool)
	for _, m := range zapierAppPattern.FindAllStringSubmatch(string(body), -1) {
		slug := m[1]
		if seen[slug] {
			continue
		}
		seen[slug] = true

		if zapierDefaultUsers < s.MinUsers {
			continue
		}
		assets = append(assets, asset.Asset{
			ID:           "zapier-" + slug,
			Name:         nameFromSlug(slug),
			Type:         asset.ZapierIntegration,
			Marketplace:  "Zapier",
			URL:          fmt.Sprintf("https://zapier.com/apps/%s/integrations", slug),
			Description:  "Zapier integration for automation workflows.",
			UserCount:    zapierDefaultUsers,
			MRRPotential: asset.MRR(asset.ZapierIntegration, zapierDefaultUsers),
			Status:       asset.StatusPotential,
			DetailsNote:  "Automation integration opportunity.",
		})
		if len(assets) >= 5 {
			break
		}
	}
	return assets, nil
}
