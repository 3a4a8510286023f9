package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// ProductHunt reads the Product Hunt launch feed and keeps entries matching
// the query. Product Hunt has no public search endpoint, but its RSS feed
// covers recent launches, which is where stalled post-launch products show up.
type ProductHunt struct {
	*Client
	FeedURL string
	parser  *gofeed.Parser
}

func NewProductHunt(c *Client) *ProductHunt {
	return &ProductHunt{Client: c, FeedURL: "https://www.producthunt.com/feed", parser: gofeed.NewParser()}
}

func (s *ProductHunt) Name() string { return "Product Hunt" }

const productHuntDefaultUsers = 2000

func (s *ProductHunt) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	feed, err := s.parser.ParseURLWithContext(s.FeedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("product hunt: %w", err)
	}

	q := strings.ToLower(query)
	var assets []asset.Asset
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		if item.Link == "" || seen[item.Link] {
			continue
		}
		haystack := strings.ToLower(item.Title + " " + item.Description)
		if q != "" && !strings.Contains(haystack, q) {
			continue
		}
		seen[item.Link] = true

		assets = append(assets, asset.Asset{
			ID:           "producthunt-" + slugFromLink(item.Link),
			Name:         item.Title,
			Type:         asset.ProductHuntLaunch,
			Marketplace:  "Product Hunt",
			URL:          item.Link,
			Description:  truncate(stripHTML(item.Description), 150),
			UserCount:    productHuntDefaultUsers,
			MRRPotential: asset.MRR(asset.ProductHuntLaunch, productHuntDefaultUsers),
			Status:       asset.StatusPotential,
			DetailsNote:  "Launched but possibly stalled. Check activity.",
		})
		if len(assets) >= 5 {
			break
		}
	}
	return assets, nil
}

func slugFromLink(link string) string {
	link = strings.TrimRight(link, "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
