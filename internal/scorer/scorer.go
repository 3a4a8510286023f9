// Package scorer turns one normalized asset into its opportunity metrics:
// the five-axis radar, MRR and valuation ranges, and a marketplace confidence
// rating. The numeric half is pure table arithmetic and always succeeds; the
// qualitative half comes from a text-generation provider and degrades to
// neutral defaults when that provider fails or returns garbage.
package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/ai"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Radar is the five-axis 1-10 opportunity rating. TechnicalRisk is inverted:
// lower is better.
type Radar struct {
	Distress        int `json:"distress"`
	MonetizationGap int `json:"monetization_gap"`
	TechnicalRisk   int `json:"technical_risk"`
	MarketPosition  int `json:"market_position"`
	FlipPotential   int `json:"flip_potential"`
}

// MRRRange is the estimated monthly recurring revenue band.
type MRRRange struct {
	Low  int `json:"low"`
	Mid  int `json:"mid"`
	High int `json:"high"`
}

// Valuation is the acquisition price band, annualized MRR at 3x to 5x.
type Valuation struct {
	Low      int    `json:"low"`
	High     int    `json:"high"`
	Multiple string `json:"multiple"`
}

// Qualitative is the free-text half of an analysis. Locked marks a redacted
// bundle served to callers without the full entitlement.
type Qualitative struct {
	Narrative     string   `json:"narrative"`
	Outreach      string   `json:"outreach"`
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
	Locked        bool     `json:"locked,omitempty"`
}

// Score is the complete analysis for one asset. Every numeric field derives
// deterministically from the asset facts and the static tables; only
// Qualitative varies with the provider outcome.
type Score struct {
	AssetID      string           `json:"asset_id"`
	Radar        Radar            `json:"radar"`
	OverallScore int              `json:"overall_score"`
	MRRRange     MRRRange         `json:"mrr_range"`
	Valuation    Valuation        `json:"valuation_range"`
	Confidence   asset.Confidence `json:"confidence"`
	Qualitative  Qualitative      `json:"qualitative"`
	Degraded     bool             `json:"degraded,omitempty"`
}

const valuationMultiple = "3-5x ARR"

const unavailableNarrative = "analysis temporarily unavailable"

// Engine computes scores. Gen may be nil; scoring then always takes the
// degraded path. Cache may be nil to disable analysis caching.
type Engine struct {
	Gen   ai.Generator
	Cache *Cache
	Log   *slog.Logger
}

// Score analyzes one asset. It never returns an error: provider failures
// produce a neutral radar and a placeholder narrative instead.
func (e *Engine) Score(ctx context.Context, a asset.Asset) Score {
	log := e.Log
	if log == nil {
		log = slog.Default()
	}

	key := CacheKey(a)
	if e.Cache != nil {
		if s, ok := e.Cache.Get(key); ok {
			log.Debug("analysis cache hit", "asset", a.ID)
			return s
		}
	}

	s := Baseline(a)

	if e.Gen == nil {
		s.Degraded = true
	} else if radar, qual, err := e.generate(ctx, a, s); err != nil {
		log.Warn("qualitative analysis failed, using neutral defaults", "asset", a.ID, "error", err)
		s.Degraded = true
	} else {
		s.Radar = radar
		s.Qualitative = qual
	}
	s.OverallScore = Overall(s.Radar)

	// Only full results are worth pinning for the TTL window. A degraded
	// score came from a transient provider failure; the next request should
	// retry the provider instead of serving placeholders for 24 hours.
	if e.Cache != nil && !s.Degraded {
		e.Cache.Put(key, s)
	}
	return s
}

// Baseline computes the deterministic part of a score: revenue and valuation
// bands from the static tables, confidence from the marketplace table, and
// the neutral radar. It is pure and never fails.
func Baseline(a asset.Asset) Score {
	f := asset.FormulaFor(a.Type)
	mid := int(math.Round(float64(a.UserCount) * f.ConversionRate * f.AvgPrice))
	low := int(math.Round(float64(mid) * 0.5))
	high := mid * 2

	return Score{
		AssetID:  a.ID,
		Radar:    Radar{5, 5, 5, 5, 5},
		MRRRange: MRRRange{Low: low, Mid: mid, High: high},
		Valuation: Valuation{
			Low:      low * 12 * 3,
			High:     high * 12 * 5,
			Multiple: valuationMultiple,
		},
		Confidence: asset.ConfidenceFor(a.Marketplace),
		Qualitative: Qualitative{
			Narrative: unavailableNarrative,
			Outreach:  unavailableNarrative,
		},
	}
}

// Overall folds a radar into the 0-100 composite. TechnicalRisk counts
// inverted so that low risk raises the score.
func Overall(r Radar) int {
	sum := r.Distress + r.MonetizationGap + (10 - r.TechnicalRisk) + r.MarketPosition + r.FlipPotential
	return int(math.Round(float64(sum) / 50 * 100))
}

// Clamp forces a raw radar value into [1,10], rounding fractional input.
func Clamp(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

// Redact strips the qualitative bundle for callers without the full
// entitlement, leaving the numeric fields untouched.
func Redact(s Score) Score {
	s.Qualitative = Qualitative{
		Narrative: "Upgrade to unlock the full analysis.",
		Outreach:  "Upgrade to unlock the outreach template.",
		Locked:    true,
	}
	return s
}

// providerAnalysis is the JSON schema requested from the provider. Radar
// values arrive as float64 because models return 7.8 as readily as 8.
type providerAnalysis struct {
	Distress        float64  `json:"distress"`
	MonetizationGap float64  `json:"monetization_gap"`
	TechnicalRisk   float64  `json:"technical_risk"`
	MarketPosition  float64  `json:"market_position"`
	FlipPotential   float64  `json:"flip_potential"`
	Narrative       string   `json:"narrative"`
	Outreach        string   `json:"outreach"`
	Risks           []string `json:"risks"`
	Opportunities   []string `json:"opportunities"`
}

const analysisPrompt = `You are an analyst evaluating small software assets for acquisition.

Asset facts:
- Name: %s
- Marketplace: %s (%s)
- Users: %d
- Estimated MRR potential: $%d/mo (range $%d-$%d)
- Status: %s
- Notes: %s

Rate the asset on five axes, each an integer from 1 to 10:
- distress: how neglected or abandoned the asset appears (10 = clearly abandoned)
- monetization_gap: unrealized revenue relative to the user base (10 = huge gap)
- technical_risk: effort and risk of taking over the codebase (1 = trivial)
- market_position: strength of ranking, reviews, and keywords (10 = dominant)
- flip_potential: likelihood of a profitable resale within 12 months (10 = near certain)

Respond with ONLY a JSON object, no prose and no markdown fences:
{"distress":0,"monetization_gap":0,"technical_risk":0,"market_position":0,"flip_potential":0,"narrative":"2-3 sentence acquisition thesis","outreach":"short first-contact message to the owner","risks":["..."],"opportunities":["..."]}`

func (e *Engine) generate(ctx context.Context, a asset.Asset, base Score) (Radar, Qualitative, error) {
	prompt := fmt.Sprintf(analysisPrompt,
		a.Name, a.Marketplace, a.Type, a.UserCount,
		base.MRRRange.Mid, base.MRRRange.Low, base.MRRRange.High,
		a.Status, a.DetailsNote)

	text, err := e.Gen.Generate(ctx, prompt)
	if err != nil {
		return Radar{}, Qualitative{}, err
	}

	var pa providerAnalysis
	if err := json.Unmarshal([]byte(ai.StripFences(text)), &pa); err != nil {
		return Radar{}, Qualitative{}, fmt.Errorf("malformed analysis response: %w", err)
	}
	if pa.Distress == 0 && pa.MonetizationGap == 0 && pa.TechnicalRisk == 0 &&
		pa.MarketPosition == 0 && pa.FlipPotential == 0 {
		return Radar{}, Qualitative{}, fmt.Errorf("analysis response missing radar values")
	}

	radar := Radar{
		Distress:        Clamp(pa.Distress),
		MonetizationGap: Clamp(pa.MonetizationGap),
		TechnicalRisk:   Clamp(pa.TechnicalRisk),
		MarketPosition:  Clamp(pa.MarketPosition),
		FlipPotential:   Clamp(pa.FlipPotential),
	}
	qual := Qualitative{
		Narrative:     strings.TrimSpace(pa.Narrative),
		Outreach:      strings.TrimSpace(pa.Outreach),
		Risks:         pa.Risks,
		Opportunities: pa.Opportunities,
	}
	if qual.Narrative == "" {
		qual.Narrative = unavailableNarrative
	}
	if qual.Outreach == "" {
		qual.Outreach = unavailableNarrative
	}
	return radar, qual, nil
}
