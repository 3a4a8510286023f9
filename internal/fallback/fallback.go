// Package fallback serves a curated set of representative assets when both
// the direct scan and the search supplement come back empty. A scan never
// returns nothing; the fallback keeps the pipeline demonstrable offline.
package fallback

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// curated is the hand-maintained dataset. Entries are realistic composites of
// listings observed across the marketplaces, not live data.
var curated = []asset.Asset{
	{
		ID: "tab-session-manager", Name: "Tab Session Manager", Type: asset.ChromeExtension,
		Marketplace: "Chrome Web Store", URL: "https://chromewebstore.google.com/detail/tab-session-manager",
		Description: "Save and restore window sessions. 150k users, last updated 14 months ago.",
		UserCount:   150000, MRRPotential: 15000, Status: asset.StatusDistressed,
		DetailsNote: "Developer inactive on support forum since last year.",
	},
	{
		ID: "dark-reader-clone", Name: "Night Shift Reader", Type: asset.ChromeExtension,
		Marketplace: "Chrome Web Store", URL: "https://chromewebstore.google.com/detail/night-shift-reader",
		Description: "Dark mode for every site. 80k users on a freemium model.",
		UserCount:   80000, MRRPotential: 8000, Status: asset.StatusPotential,
		DetailsNote: "No paid tier yet despite donation link in description.",
	},
	{
		ID: "form-autofill-pro", Name: "Form Autofill Pro", Type: asset.FirefoxAddon,
		Marketplace: "Firefox Add-ons", URL: "https://addons.mozilla.org/en-US/firefox/addon/form-autofill-pro/",
		Description: "Smart form filling. 45k users, 4.4 stars.",
		UserCount:   45000, MRRPotential: 4500, Status: asset.StatusPotential,
		DetailsNote: "Cross-browser port is the obvious growth lever.",
	},
	{
		ID: "inventory-sync-plus", Name: "Inventory Sync Plus", Type: asset.ShopifyApp,
		Marketplace: "Shopify App Store", URL: "https://apps.shopify.com/inventory-sync-plus",
		Description: "Multi-store inventory sync. 2,400 merchants at $19/mo.",
		UserCount:   2400, MRRPotential: 480, Status: asset.StatusDistressed,
		DetailsNote: "Recent reviews mention slow support responses.",
	},
	{
		ID: "order-printer-plus", Name: "Order Printer Plus", Type: asset.ShopifyApp,
		Marketplace: "Shopify App Store", URL: "https://apps.shopify.com/order-printer-plus",
		Description: "Custom invoices and packing slips. 5,800 merchants.",
		UserCount:   5800, MRRPotential: 1160, Status: asset.StatusPotential,
		DetailsNote: "Single developer, listed in a founder burnout thread.",
	},
	{
		ID: "wp-table-builder", Name: "WP Table Builder", Type: asset.WordPressPlugin,
		Marketplace: "WordPress.org", URL: "https://wordpress.org/plugins/wp-table-builder/",
		Description: "Drag and drop table plugin. 60k active installs.",
		UserCount:   60000, MRRPotential: 2448, Status: asset.StatusDistressed,
		DetailsNote: "Last updated 16 months ago. Support threads unanswered.",
	},
	{
		ID: "backup-scheduler", Name: "Backup Scheduler", Type: asset.WordPressPlugin,
		Marketplace: "WordPress.org", URL: "https://wordpress.org/plugins/backup-scheduler/",
		Description: "Automated site backups. 30k active installs.",
		UserCount:   30000, MRRPotential: 1224, Status: asset.StatusPotential,
		DetailsNote: "Freemium conversion underpriced against competitors.",
	},
	{
		ID: "standup-bot", Name: "Standup Bot", Type: asset.SlackApp,
		Marketplace: "Slack App Directory", URL: "https://slack.com/apps/standup-bot",
		Description: "Async standups in Slack. 5,000 teams.",
		UserCount:   5000, MRRPotential: 2250, Status: asset.StatusPotential,
		DetailsNote: "B2B pricing power, churn unknown.",
	},
	{
		ID: "invoice-zap", Name: "Invoice Zap", Type: asset.ZapierIntegration,
		Marketplace: "Zapier", URL: "https://zapier.com/apps/invoice-zap/integrations",
		Description: "Invoice automation connector. 8,000 users.",
		UserCount:   8000, MRRPotential: 1600, Status: asset.StatusPotential,
		DetailsNote: "Connector-only product, platform risk is real.",
	},
	{
		ID: "habit-streak", Name: "Habit Streak", Type: asset.IOSApp,
		Marketplace: "iOS App Store", URL: "https://apps.apple.com/app/habit-streak/id000000001",
		Description: "Habit tracker with streaks. 20k ratings, abandoned 13 months.",
		UserCount:   200000, MRRPotential: 6000, Status: asset.StatusDistressed,
		DetailsNote: "Still ranks for habit keywords. ASO moat intact.",
	},
	{
		ID: "time-tracker-droid", Name: "Time Tracker", Type: asset.AndroidApp,
		Marketplace: "Google Play Store", URL: "https://play.google.com/store/apps/details?id=com.example.timetracker",
		Description: "Simple time tracking. 100k+ downloads.",
		UserCount:   100000, MRRPotential: 1000, Status: asset.StatusPotential,
		DetailsNote: "Monetized with ads only. Subscription untested.",
	},
	{
		ID: "sprint-report-pro", Name: "Sprint Report Pro", Type: asset.AtlassianAddon,
		Marketplace: "Atlassian Marketplace", URL: "https://marketplace.atlassian.com/apps/sprint-report-pro",
		Description: "Better Jira sprint reports. 4,000 installs at $20/mo tiers.",
		UserCount:   4000, MRRPotential: 2400, Status: asset.StatusPotential,
		DetailsNote: "High-confidence marketplace, disclosed pricing.",
	},
	{
		ID: "notion-template-kit", Name: "Notion Template Kit", Type: asset.GumroadProduct,
		Marketplace: "Gumroad", URL: "https://gumroad.com/l/notion-template-kit",
		Description: "Productivity template bundle. 3,000 sales.",
		UserCount:   3000, MRRPotential: 9000, Status: asset.StatusPotential,
		DetailsNote: "Creator moved on to a new product line.",
	},
	{
		ID: "screenshot-api", Name: "Screenshot API", Type: asset.FlippaListing,
		Marketplace: "Flippa/Acquire", URL: "https://flippa.com/screenshot-api",
		Description: "Developer screenshot service. $900 MRR, listed for sale.",
		UserCount:   1100, MRRPotential: 900, Status: asset.StatusForSale,
		DetailsNote: "Seller-disclosed financials. Asking 3.2x ARR.",
	},
	{
		ID: "launch-radar", Name: "Launch Radar", Type: asset.ProductHuntLaunch,
		Marketplace: "Product Hunt", URL: "https://www.producthunt.com/posts/launch-radar",
		Description: "Launched 18 months ago, 800 upvotes, gone quiet.",
		UserCount:   2000, MRRPotential: 1200, Status: asset.StatusDistressed,
		DetailsNote: "Domain still live, changelog dead since launch.",
	},
}

// Assets returns the curated set tailored to the query: the rotation order
// and the id suffix both derive from the query hash, so the same query always
// yields the same slice while different queries get distinct ids.
func Assets(query string) []asset.Asset {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(query))))
	seed := h.Sum32()

	offset := int(seed) % len(curated)
	if offset < 0 {
		offset += len(curated)
	}

	out := make([]asset.Asset, len(curated))
	for i := range curated {
		a := curated[(offset+i)%len(curated)]
		a.ID = fmt.Sprintf("%s-%08x", a.ID, seed)
		a.DetailsNote = fmt.Sprintf("Curated example for %q. %s", query, a.DetailsNote)
		out[i] = a
	}
	return out
}

// Size reports how many curated entries exist.
func Size() int { return len(curated) }
