// Package asset defines the normalized marketplace asset record and the
// static revenue/confidence tables shared by the scanners and the scorer.
package asset

import "math"

// SourceType identifies the kind of marketplace listing an asset came from.
type SourceType string

const (
	ChromeExtension   SourceType = "chrome_extension"
	FirefoxAddon      SourceType = "firefox_addon"
	ShopifyApp        SourceType = "shopify_app"
	WordPressPlugin   SourceType = "wordpress_plugin"
	SlackApp          SourceType = "slack_app"
	ZapierIntegration SourceType = "zapier_integration"
	IOSApp            SourceType = "ios_app"
	AndroidApp        SourceType = "android_app"
	EdgeExtension     SourceType = "edge_extension"
	SalesforceApp     SourceType = "salesforce_app"
	AtlassianAddon    SourceType = "atlassian_addon"
	GumroadProduct    SourceType = "gumroad_product"
	ProductHuntLaunch SourceType = "producthunt_launch"
	FlippaListing     SourceType = "flippa_listing"
	SaaSProduct       SourceType = "saas_product"
)

// Status describes the acquisition posture of a listing.
type Status string

const (
	StatusPotential  Status = "potential"
	StatusDistressed Status = "distressed"
	StatusForSale    Status = "for_sale"
)

// Asset is the common shape every source adapter produces. Assets are value
// objects: created once inside an adapter and never mutated afterwards.
type Asset struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         SourceType `json:"type"`
	Marketplace  string     `json:"marketplace"`
	URL          string     `json:"url"`
	Description  string     `json:"description"`
	UserCount    int        `json:"user_count"`
	MRRPotential int        `json:"mrr_potential"`
	Status       Status     `json:"status"`
	DetailsNote  string     `json:"details"`
}

// Formula holds the per-type revenue conversion constants.
type Formula struct {
	ConversionRate float64
	AvgPrice       float64
	Description    string
}

// MRRFormulas maps a source type to its conversion-rate and price-point
// constants. Unknown types fall back to the saas_product row.
var MRRFormulas = map[SourceType]Formula{
	ChromeExtension:   {0.02, 5, "2% conversion at $5/mo"},
	FirefoxAddon:      {0.02, 5, "2% conversion at $5/mo"},
	ShopifyApp:        {0.02, 10, "2% conversion at $10/mo"},
	WordPressPlugin:   {0.01, 4.08, "1% conversion at $49/yr"},
	SlackApp:          {0.03, 15, "3% conversion at $15/mo (B2B)"},
	ZapierIntegration: {0.02, 10, "2% conversion at $10/mo"},
	IOSApp:            {0.01, 3, "1% conversion at $3/mo (estimate)"},
	AndroidApp:        {0.005, 2, "0.5% conversion at $2/mo"},
	EdgeExtension:     {0.02, 5, "2% conversion at $5/mo"},
	SalesforceApp:     {0.05, 50, "5% conversion at $50/mo (enterprise)"},
	AtlassianAddon:    {0.03, 20, "3% conversion at $20/mo"},
	GumroadProduct:    {0.10, 30, "10% repeat at $30/mo avg"},
	ProductHuntLaunch: {0.03, 20, "3% conversion at $20/mo"},
	FlippaListing:     {0.05, 30, "5% conversion at $30/mo (motivated seller)"},
	SaaSProduct:       {0.03, 20, "3% conversion at $20/mo"},
}

// FormulaFor returns the revenue formula for a source type, defaulting to
// the generic SaaS row for unknown types.
func FormulaFor(t SourceType) Formula {
	if f, ok := MRRFormulas[t]; ok {
		return f
	}
	return MRRFormulas[SaaSProduct]
}

// MRR estimates monthly recurring revenue for a user base of the given type,
// rounded to the nearest dollar.
func MRR(t SourceType, userCount int) int {
	f := FormulaFor(t)
	return int(math.Round(float64(userCount) * f.ConversionRate * f.AvgPrice))
}

// ConfidenceLevel rates how trustworthy a marketplace's usage and revenue
// signals are.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Confidence pairs a level with a human-readable reason.
type Confidence struct {
	Level  ConfidenceLevel `json:"level"`
	Reason string          `json:"reason"`
}

// MarketplaceConfidence is the static per-marketplace trust table. It is a
// judgment about the data source, not about any particular asset, so it is
// never produced by the text-generation collaborator.
var MarketplaceConfidence = map[string]Confidence{
	"Shopify App Store":      {ConfidenceHigh, "Pricing publicly visible, install counts accurate"},
	"Atlassian Marketplace":  {ConfidenceHigh, "Pricing API available, install data reliable"},
	"Flippa/Acquire":         {ConfidenceHigh, "Seller-disclosed MRR, verified financials available"},
	"Gumroad":                {ConfidenceMedium, "Sales counts partially visible, pricing known"},
	"Chrome Web Store":       {ConfidenceMedium, "User counts accurate, revenue estimated from benchmarks"},
	"Firefox Add-ons":        {ConfidenceMedium, "User counts accurate, revenue estimated from benchmarks"},
	"WordPress.org":          {ConfidenceMedium, "Install counts accurate, freemium revenue estimated"},
	"Microsoft Store":        {ConfidenceMedium, "User counts available, revenue estimated"},
	"Google Play Store":      {ConfidenceLow, "Download ranges only, revenue requires paid APIs"},
	"Slack App Directory":    {ConfidenceLow, "Install counts often hidden, B2B pricing varies"},
	"Zapier":                 {ConfidenceLow, "Usage metrics limited, connector revenue varies"},
	"Product Hunt":           {ConfidenceLow, "Upvotes only, no revenue/usage data"},
	"Salesforce AppExchange": {ConfidenceLow, "No public API, enterprise pricing opaque"},
	"iOS App Store":          {ConfidenceLow, "No free download/revenue API, distress signals only"},
}

// ConfidenceFor looks up a marketplace's confidence rating, defaulting to
// low for marketplaces not in the table.
func ConfidenceFor(marketplace string) Confidence {
	if c, ok := MarketplaceConfidence[marketplace]; ok {
		return c
	}
	return Confidence{ConfidenceLow, "Unknown marketplace"}
}
