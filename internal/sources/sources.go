// Package sources implements the per-marketplace scanners. Every adapter
// normalizes whatever its marketplace exposes (HTML, JSON APIs, RSS) into
// asset.Asset records, applies the minimum user-count cutoff, and caps its
// result list. Parse and network failures surface as an error alongside an
// empty list; the aggregator records them and nothing propagates further.
package sources

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/config"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxBody bounds how much of a marketplace response we are willing to read.
const maxBody = 2 << 20

// Adapter is one marketplace scanner. Fetch returns the normalized assets it
// could extract for the query; the error is recorded in the per-source scan
// status and never aborts an aggregation run.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query string) ([]asset.Asset, error)
}

// Client is the shared HTTP/parsing kit the adapters are built on.
type Client struct {
	HTTP     *http.Client
	MinUsers int
	Log      *slog.Logger
}

// NewClient builds the shared adapter client with the configured request
// timeout and user-count cutoff.
func NewClient(cfg *config.Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		HTTP:     &http.Client{Timeout: cfg.RequestTimeout()},
		MinUsers: cfg.MinUserCount(),
		Log:      log,
	}
}

// All returns every marketplace adapter enabled by the config, in registry
// order. The aggregator is generic over the returned slice and never
// special-cases an entry.
func All(cfg *config.Config, log *slog.Logger) []Adapter {
	c := NewClient(cfg, log)
	registry := []Adapter{
		&Chrome{c},
		&Firefox{c},
		&Shopify{c},
		&WordPress{c, ""},
		&Slack{c},
		&Zapier{c},
		&AppStore{c, ""},
		&GooglePlay{c},
		&EdgeAddons{c},
		&Salesforce{c},
		&Atlassian{c, ""},
		&Gumroad{c},
		NewProductHunt(c),
		&Flippa{c},
	}
	enabled := make([]Adapter, 0, len(registry))
	for _, a := range registry {
		if cfg.SourceEnabled(a.Name()) {
			enabled = append(enabled, a)
		}
	}
	return enabled
}

// get performs a GET with the browser user agent and returns the body, or an
// error for transport failures and non-2xx responses.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBody))
}

var numberPattern = regexp.MustCompile(`[\d.]+`)

// extractNumber pulls the first number out of strings like "45,000+ users"
// or "1.2M downloads", honoring k/m suffixes.
func extractNumber(text string) int {
	if text == "" {
		return 0
	}
	clean := strings.ReplaceAll(text, ",", "")
	loc := numberPattern.FindStringIndex(clean)
	if loc == nil {
		return 0
	}
	n, err := strconv.ParseFloat(clean[loc[0]:loc[1]], 64)
	if err != nil {
		return 0
	}
	// Scale only on a suffix glued to the number itself ("45k", "1.2M"),
	// not on a k or m appearing anywhere in the surrounding text.
	if rest := clean[loc[1]:]; rest != "" && (len(rest) == 1 || !isLetter(rest[1])) {
		switch rest[0] {
		case 'k', 'K':
			n *= 1000
		case 'm', 'M':
			n *= 1_000_000
		}
	}
	return int(math.Round(n))
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// nameFromSlug turns "tab-manager-pro" into "Tab Manager Pro".
func nameFromSlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || r == '+'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// truncate clips s to at most n runes, appending an ellipsis when clipped.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// monthsSince returns whole months elapsed since t, or 0 for zero/future times.
func monthsSince(t time.Time) int {
	if t.IsZero() {
		return 0
	}
	months := int(time.Since(t).Hours() / (24 * 30))
	if months < 0 {
		return 0
	}
	return months
}

// commaFormat renders 45000 as "45,000" for description text.
func commaFormat(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
