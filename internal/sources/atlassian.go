package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Atlassian queries the Atlassian Marketplace REST API for Jira add-ons.
type Atlassian struct {
	*Client
	BaseURL string // test override; empty means the public API
}

func (s *Atlassian) Name() string { return "Atlassian Marketplace" }

type atlassianList struct {
	Embedded struct {
		Addons []atlassianAddon `json:"addons"`
	} `json:"_embedded"`
}

type atlassianAddon struct {
	ID            string `json:"id"`
	Key           string `json:"key"`
	Name          string `json:"name"`
	TagLine       string `json:"tagLine"`
	TotalInstalls int    `json:"totalInstalls"`
}

func (s *Atlassian) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	base := s.BaseURL
	if base == "" {
		base = "https://marketplace.atlassian.com"
	}
	apiURL := base + "/rest/2/addons?application=jira&text=" + url.QueryEscape(query) + "&limit=10"

	body, err := s.get(ctx, apiURL)
	if err != nil {
		return nil, fmt.Errorf("atlassian marketplace: %w", err)
	}

	var list atlassianList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("atlassian marketplace: parsing response: %w", err)
	}

	var assets []asset.Asset
	for _, addon := range list.Embedded.Addons {
		installs := addon.TotalInstalls
		if installs == 0 {
			installs = 1000
		}
		if installs < s.MinUsers {
			continue
		}
		name := addon.Name
		if name == "" {
			name = addon.Key
		}
		assets = append(assets, asset.Asset{
			ID:           "atlassian-" + addon.Key,
			Name:         name,
			Type:         asset.AtlassianAddon,
			Marketplace:  "Atlassian Marketplace",
			URL:          "https://marketplace.atlassian.com/apps/" + addon.ID,
			Description:  truncate(addon.TagLine, 150),
			UserCount:    installs,
			MRRPotential: asset.MRR(asset.AtlassianAddon, installs),
			Status:       asset.StatusPotential,
			DetailsNote:  "Jira/Confluence ecosystem. Dev tool opportunity.",
		})
		if len(assets) >= 6 {
			break
		}
	}
	return assets, nil
}
