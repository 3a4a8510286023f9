// Package classify maps marketplace listing URLs to source types. The search
// supplement tier returns bare organic results; classification decides which
// marketplace a link belongs to so the right revenue formula and confidence
// rating apply.
package classify

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// hostRules match on the exact hostname, most specific first.
var hostRules = []struct {
	host string
	path string // required path prefix, empty for any
	typ  asset.SourceType
}{
	{"chromewebstore.google.com", "", asset.ChromeExtension},
	{"chrome.google.com", "/webstore", asset.ChromeExtension},
	{"addons.mozilla.org", "", asset.FirefoxAddon},
	{"apps.shopify.com", "", asset.ShopifyApp},
	{"wordpress.org", "/plugins", asset.WordPressPlugin},
	{"slack.com", "/apps", asset.SlackApp},
	{"apps.apple.com", "", asset.IOSApp},
	{"itunes.apple.com", "", asset.IOSApp},
	{"play.google.com", "", asset.AndroidApp},
	{"microsoftedge.microsoft.com", "", asset.EdgeExtension},
	{"appexchange.salesforce.com", "", asset.SalesforceApp},
	{"marketplace.atlassian.com", "", asset.AtlassianAddon},
}

// domainRules match on the registrable domain so vendor subdomains
// (store.gumroad.com, foo.zapier.com) still classify.
var domainRules = map[string]asset.SourceType{
	"gumroad.com":     asset.GumroadProduct,
	"zapier.com":      asset.ZapierIntegration,
	"producthunt.com": asset.ProductHuntLaunch,
	"flippa.com":      asset.FlippaListing,
	"acquire.com":     asset.FlippaListing,
}

// labels maps each source type to its marketplace display name, matching the
// names the direct adapters report.
var labels = map[asset.SourceType]string{
	asset.ChromeExtension:   "Chrome Web Store",
	asset.FirefoxAddon:      "Firefox Add-ons",
	asset.ShopifyApp:        "Shopify App Store",
	asset.WordPressPlugin:   "WordPress.org",
	asset.SlackApp:          "Slack App Directory",
	asset.ZapierIntegration: "Zapier",
	asset.IOSApp:            "iOS App Store",
	asset.AndroidApp:        "Google Play Store",
	asset.EdgeExtension:     "Microsoft Store",
	asset.SalesforceApp:     "Salesforce AppExchange",
	asset.AtlassianAddon:    "Atlassian Marketplace",
	asset.GumroadProduct:    "Gumroad",
	asset.ProductHuntLaunch: "Product Hunt",
	asset.FlippaListing:     "Flippa/Acquire",
	asset.SaaSProduct:       "Web",
}

// URL classifies a listing URL. The second return is false when the link
// does not belong to any known marketplace.
func URL(raw string) (asset.SourceType, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	host := strings.ToLower(u.Hostname())

	for _, r := range hostRules {
		if host == r.host && (r.path == "" || strings.HasPrefix(u.Path, r.path)) {
			return r.typ, true
		}
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		domain = host
	}
	if t, ok := domainRules[domain]; ok {
		return t, true
	}
	return "", false
}

// Label returns the marketplace display name for a source type.
func Label(t asset.SourceType) string {
	if l, ok := labels[t]; ok {
		return l
	}
	return labels[asset.SaaSProduct]
}
