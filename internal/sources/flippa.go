package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Flippa scans Flippa search results for businesses already listed for sale.
// These are the only listings whose status is for_sale rather than inferred.
type Flippa struct {
	*Client
}

func (s *Flippa) Name() string { return "Flippa/Acquire" }

var flippaListingPattern = regexp.MustCompile(`flippa\.com/(\d+)`)

const flippaDefaultUsers = 1000

func (s *Flippa) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://flippa.com/search?query=" + url.QueryEscape(query) + "&filter%5Bproperty_type%5D=website"
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("flippa: %w", err)
	}

	var assets []asset.Asset
	seen := make(map[string]bool)
	for _, m := range flippaListingPattern.FindAllStringSubmatch(string(body), -1) {
		listingID := m[1]
		if seen[listingID] {
			continue
		}
		seen[listingID] = true

		assets = append(assets, asset.Asset{
			ID:           "flippa-" + listingID,
			Name:         "Flippa Listing #" + listingID,
			Type:         asset.FlippaListing,
			Marketplace:  "Flippa/Acquire",
			URL:          "https://flippa.com/" + listingID,
			Description:  "Business for sale on Flippa.",
			UserCount:    flippaDefaultUsers,
			MRRPotential: asset.MRR(asset.FlippaListing, flippaDefaultUsers),
			Status:       asset.StatusForSale,
			DetailsNote:  "Active listing. Verify revenue claims.",
		})
		if len(assets) >= 5 {
			break
		}
	}
	return assets, nil
}
