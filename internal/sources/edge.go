package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// EdgeAddons scans the Microsoft Edge add-ons search page.
type EdgeAddons struct {
	*Client
}

func (s *EdgeAddons) Name() string { return "Microsoft Store" }

var edgeDetailPattern = regexp.MustCompile(`(?i)/addons/detail/([^/"]+)/([a-z0-9]+)`)

const edgeDefaultUsers = 5000

func (s *EdgeAddons) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://microsoftedge.microsoft.com/addons/search/" + url.PathEscape(query)
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("microsoft store: %w", err)
	}

	var assets []asset.Asset
	seen := make(map[string]bool)
	for _, m := range edgeDetailPattern.FindAllStringSubmatch(string(body), -1) {
		slug, addonID := m[1], m[2]
		if seen[addonID] {
			continue
		}
		seen[addonID] = true

		if edgeDefaultUsers < s.MinUsers {
			continue
		}
		decoded, err := url.PathUnescape(slug)
		if err != nil {
			decoded = slug
		}
		assets = append(assets, asset.Asset{
			ID:           "edge-" + addonID,
			Name:         strings.ReplaceAll(decoded, "-", " "),
			Type:         asset.EdgeExtension,
			Marketplace:  "Microsoft Store",
			URL:          fmt.Sprintf("https://microsoftedge.microsoft.com/addons/detail/%s/%s", slug, addonID),
			Description:  "Microsoft Edge extension.",
			UserCount:    edgeDefaultUsers,
			MRRPotential: asset.MRR(asset.EdgeExtension, edgeDefaultUsers),
			Status:       asset.StatusPotential,
			DetailsNote:  "Edge/Microsoft ecosystem opportunity.",
		})
		if len(assets) >= 5 {
			break
		}
	}
	return assets, nil
}
