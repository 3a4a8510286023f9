package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/signal"
)

// AppStore queries the iTunes search API for iOS apps. Apple exposes no
// download counts, so the user base is extrapolated from rating counts; the
// adapter also halves the global user cutoff because rating counts undercount
// installs by an order of magnitude.
type AppStore struct {
	*Client
	BaseURL string // test override; empty means the public API
}

func (s *AppStore) Name() string { return "iOS App Store" }

type itunesResults struct {
	Results []itunesApp `json:"results"`
}

type itunesApp struct {
	TrackID                   int64   `json:"trackId"`
	TrackName                 string  `json:"trackName"`
	TrackViewURL              string  `json:"trackViewUrl"`
	Description               string  `json:"description"`
	UserRatingCount           int     `json:"userRatingCount"`
	AverageUserRating         float64 `json:"averageUserRating"`
	CurrentVersionReleaseDate string  `json:"currentVersionReleaseDate"`
}

// ratingsPerUser expands a rating count to an install estimate.
const ratingsPerUser = 10

func (s *AppStore) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	base := s.BaseURL
	if base == "" {
		base = "https://itunes.apple.com"
	}
	apiURL := base + "/search?term=" + url.QueryEscape(query) + "&entity=software&limit=15"

	body, err := s.get(ctx, apiURL)
	if err != nil {
		return nil, fmt.Errorf("ios app store: %w", err)
	}

	var data itunesResults
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("ios app store: parsing response: %w", err)
	}

	minRatings := s.MinUsers / 2
	var assets []asset.Asset
	for _, app := range data.Results {
		released, _ := time.Parse(time.RFC3339, app.CurrentVersionReleaseDate)
		months := monthsSince(released)
		if app.UserRatingCount < minRatings || months < 6 {
			continue
		}

		name := app.TrackName
		if name == "" {
			name = "Unknown"
		}
		users := app.UserRatingCount * ratingsPerUser

		assets = append(assets, signal.Apply(asset.Asset{
			ID:           fmt.Sprintf("ios-%d", app.TrackID),
			Name:         name,
			Type:         asset.IOSApp,
			Marketplace:  "iOS App Store",
			URL:          app.TrackViewURL,
			Description:  truncate(app.Description, 150),
			UserCount:    users,
			MRRPotential: asset.MRR(asset.IOSApp, users),
			Status:       asset.StatusPotential,
			DetailsNote:  fmt.Sprintf("Last updated %d months ago. %.1f stars.", months, app.AverageUserRating),
		}, months))
		if len(assets) >= 8 {
			break
		}
	}
	return assets, nil
}
