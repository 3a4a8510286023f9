package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Salesforce scans AppExchange keyword search results. The marketplace
// exposes neither names nor install data in the search markup, so listings
// are thin until verified manually.
type Salesforce struct {
	*Client
}

func (s *Salesforce) Name() string { return "Salesforce AppExchange" }

var salesforceListingPattern = regexp.MustCompile(`appxListingDetail\?listingId=([a-zA-Z0-9]+)`)

const salesforceDefaultUsers = 2000

func (s *Salesforce) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://appexchange.salesforce.com/appxSearchKeywordResults?searchKeywords=" + url.QueryEscape(query)
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("salesforce appexchange: %w", err)
	}

	var assets []asset.Asset
	seen := make(map[string]bool)
	for _, m := range salesforceListingPattern.FindAllStringSubmatch(string(body), -1) {
		listingID := m[1]
		if seen[listingID] {
			continue
		}
		seen[listingID] = true

		if salesforceDefaultUsers < s.MinUsers {
			continue
		}
		shortID := listingID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		assets = append(assets, asset.Asset{
			ID:           "salesforce-" + listingID,
			Name:         "Salesforce App " + shortID,
			Type:         asset.SalesforceApp,
			Marketplace:  "Salesforce AppExchange",
			URL:          "https://appexchange.salesforce.com/appxListingDetail?listingId=" + listingID,
			Description:  "Salesforce AppExchange listing.",
			UserCount:    salesforceDefaultUsers,
			MRRPotential: asset.MRR(asset.SalesforceApp, salesforceDefaultUsers),
			Status:       asset.StatusPotential,
			DetailsNote:  "Enterprise opportunity. High-value customer base.",
		})
		if len(assets) >= 5 {
			break
		}
	}
	return assets, nil
}
