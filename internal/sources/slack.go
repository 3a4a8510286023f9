package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Slack scans the Slack App Directory search page. Install counts are hidden,
// so listings carry a fixed estimate and a low marketplace confidence.
type Slack struct {
	*Client
}

func (s *Slack) Name() string { return "Slack App Directory" }

var slackAppPattern = regexp.MustCompile(`/apps/([A-Z0-9]+)-([a-z0-9-]+)`)

const slackDefaultUsers = 5000

func (s *Slack) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://slack.com/apps/search?q=" + url.QueryEscape(query)
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("slack app directory: %w", err)
	}

	var assets []asset.Asset
	seen := make(map[string]bool)
	for _, m := range slackAppPattern.FindAllStringSubmatch(string(body), -1) {
		appID, slug := m[1], m[2]
		if seen[appID] {
			continue
		}
		seen[appID] = true

		if slackDefaultUsers < s.MinUsers {
			continue
		}
		assets = append(assets, asset.Asset{
			ID:           "slack-" + appID,
			Name:         nameFromSlug(slug),
			Type:         asset.SlackApp,
			Marketplace:  "Slack App Directory",
			URL:          fmt.Sprintf("https://slack.com/apps/%s-%s", appID, slug),
			Description:  "Slack app for workspace productivity.",
			UserCount:    slackDefaultUsers,
			MRRPotential: asset.MRR(asset.SlackApp, slackDefaultUsers),
			Status:       asset.StatusPotential,
			DetailsNote:  "B2B pricing opportunity. Check support activity.",
		})
		if len(assets) >= 6 {
			break
		}
	}
	return assets, nil
}
