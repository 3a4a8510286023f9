// Package searchapi is the supplement tier: when the direct scanners come
// back thin, a web search API is queried with site-scoped filters over the
// known marketplaces and the organic results are classified back into assets.
package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/classify"
)

const defaultBaseURL = "https://serpapi.com"

// siteFilters scopes the search to marketplace listing pages.
var siteFilters = []string{
	"chromewebstore.google.com",
	"addons.mozilla.org",
	"apps.shopify.com",
	"wordpress.org/plugins",
	"marketplace.atlassian.com",
	"gumroad.com",
	"flippa.com",
}

// Client talks to the search API. BaseURL is overridable for tests.
type Client struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	Log     *slog.Logger
}

// New builds a search client with the given API key and request timeout.
func New(apiKey string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		HTTP:   &http.Client{Timeout: timeout},
		APIKey: apiKey,
		Log:    log,
	}
}

// OrganicResult is one entry from the search API response.
type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	OrganicResults []OrganicResult `json:"organic_results"`
}

// Search runs one raw query and returns the organic results.
func (c *Client) Search(ctx context.Context, query string) ([]OrganicResult, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	q := url.Values{}
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("num", "20")
	q.Set("api_key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/search.json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search api: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("search api: parsing response: %w", err)
	}
	return sr.OrganicResults, nil
}

// Supplement searches the marketplaces for the query and converts every
// classifiable organic result into an asset. Results whose link matches no
// known marketplace are dropped.
func (c *Client) Supplement(ctx context.Context, query string) ([]asset.Asset, error) {
	scoped := query + " (" + siteClause() + ")"
	results, err := c.Search(ctx, scoped)
	if err != nil {
		return nil, err
	}

	var assets []asset.Asset
	seen := make(map[string]bool)
	for _, r := range results {
		typ, ok := classify.URL(r.Link)
		if !ok || seen[r.Link] {
			continue
		}
		seen[r.Link] = true

		users := snippetUsers(r.Snippet)
		assets = append(assets, asset.Asset{
			ID:           "search-" + linkSlug(r.Link),
			Name:         cleanTitle(r.Title),
			Type:         typ,
			Marketplace:  classify.Label(typ),
			URL:          r.Link,
			Description:  r.Snippet,
			UserCount:    users,
			MRRPotential: asset.MRR(typ, users),
			Status:       asset.StatusPotential,
			DetailsNote:  "Found via search supplement. Usage figures are estimates.",
		})
	}
	c.Log.Debug("search supplement", "query", query, "organic", len(results), "classified", len(assets))
	return assets, nil
}

func siteClause() string {
	parts := make([]string, len(siteFilters))
	for i, s := range siteFilters {
		parts[i] = "site:" + s
	}
	return strings.Join(parts, " OR ")
}

var snippetUserPattern = regexp.MustCompile(`(?i)(\d[\d,]*)\+?\s*(?:users|installs|merchants|customers|downloads)`)

// snippetUsers pulls a usage figure out of the result snippet, defaulting to
// a conservative estimate when the snippet has none.
func snippetUsers(snippet string) int {
	if m := snippetUserPattern.FindStringSubmatch(snippet); m != nil {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil && n > 0 {
			return n
		}
	}
	return 2000
}

// linkSlug derives a stable id suffix from the last meaningful path segment.
func linkSlug(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return "unknown"
	}
	segs := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(segs) == 0 {
		return u.Hostname()
	}
	return segs[len(segs)-1]
}

// cleanTitle strips the " - Marketplace Name" suffix search engines append.
func cleanTitle(title string) string {
	for _, sep := range []string{" - ", " – ", " | "} {
		if i := strings.Index(title, sep); i > 0 {
			return strings.TrimSpace(title[:i])
		}
	}
	return strings.TrimSpace(title)
}
