package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// GooglePlay scans the Play Store search page. Download counts are served as
// opaque ranges, so listings carry a fixed estimate.
type GooglePlay struct {
	*Client
}

func (s *GooglePlay) Name() string { return "Google Play Store" }

var playPackagePattern = regexp.MustCompile(`/store/apps/details\?id=([a-zA-Z0-9_.]+)`)

const playDefaultUsers = 10000

func (s *GooglePlay) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	searchURL := "https://play.google.com/store/search?q=" + url.QueryEscape(query) + "&c=apps"
	body, err := s.get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("google play: %w", err)
	}

	var assets []asset.Asset
	seen := make(map[string]bool)
	for _, m := range playPackagePattern.FindAllStringSubmatch(string(body), -1) {
		pkg := m[1]
		if seen[pkg] {
			continue
		}
		seen[pkg] = true

		if playDefaultUsers < s.MinUsers {
			continue
		}
		assets = append(assets, asset.Asset{
			ID:           "android-" + pkg,
			Name:         playAppName(pkg),
			Type:         asset.AndroidApp,
			Marketplace:  "Google Play Store",
			URL:          "https://play.google.com/store/apps/details?id=" + pkg,
			Description:  "Android app on Google Play Store.",
			UserCount:    playDefaultUsers,
			MRRPotential: asset.MRR(asset.AndroidApp, playDefaultUsers),
			Status:       asset.StatusPotential,
			DetailsNote:  "Check last update date and reviews.",
		})
		if len(assets) >= 8 {
			break
		}
	}
	return assets, nil
}

// playAppName derives a display name from the last segment of an Android
// package name, splitting camelCase.
func playAppName(pkg string) string {
	parts := strings.Split(pkg, ".")
	last := parts[len(parts)-1]
	if last == "" {
		return pkg
	}
	var b strings.Builder
	for i, r := range last {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:]
}
