// Package signal scores how distressed a listing looks from its text and
// usage facts alone. It backs the status heuristics: adapters know hard facts
// (update dates), this package reads the softer signals.
package signal

import (
	"math"
	"strings"
	"unicode"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

// Input holds the data needed to score one listing.
type Input struct {
	Name        string
	Description string
	DetailsNote string
	Marketplace string
	UserCount   int
	MRR         int
	StaleMonths int
}

// Breakdown shows how each component contributed to the final score.
type Breakdown struct {
	Staleness       float64
	AbandonmentText float64
	MonetizationGap float64
	Final           float64
}

const (
	weightStaleness = 0.45
	weightText      = 0.30
	weightGap       = 0.25

	// DistressThreshold is the score at or above which a listing is treated
	// as distressed rather than merely potential.
	DistressThreshold = 6.0

	// StaleDistressMonths is the hard fact version of the same call: a year
	// without an update marks a listing distressed regardless of its text.
	StaleDistressMonths = 12
)

// Score computes a distress score (0.0-10.0) for a listing.
func Score(input Input) float64 {
	return ScoreWithBreakdown(input).Final
}

// ScoreWithBreakdown computes a distress score with component details.
func ScoreWithBreakdown(input Input) Breakdown {
	b := Breakdown{
		Staleness:       stalenessScore(input.StaleMonths),
		AbandonmentText: textScore(input.Description + " " + input.DetailsNote),
		MonetizationGap: gapScore(input.UserCount, input.MRR),
	}
	raw := b.Staleness*weightStaleness +
		b.AbandonmentText*weightText +
		b.MonetizationGap*weightGap
	b.Final = math.Round(raw*100) / 10 // scale to 0.0-10.0
	return b
}

// Apply upgrades an asset's status to distressed when it has gone a year
// without an update or when its softer signals clear the threshold. Assets
// already marked for_sale are left alone.
func Apply(a asset.Asset, staleMonths int) asset.Asset {
	if a.Status == asset.StatusForSale {
		return a
	}
	if staleMonths >= StaleDistressMonths {
		a.Status = asset.StatusDistressed
		return a
	}
	score := Score(Input{
		Name:        a.Name,
		Description: a.Description,
		DetailsNote: a.DetailsNote,
		Marketplace: a.Marketplace,
		UserCount:   a.UserCount,
		MRR:         a.MRRPotential,
		StaleMonths: staleMonths,
	})
	if score >= DistressThreshold {
		a.Status = asset.StatusDistressed
	}
	return a
}

// stalenessScore ramps from 0 at 6 months to 1.0 at 18+ months without an
// update.
func stalenessScore(months int) float64 {
	if months <= 6 {
		return 0.0
	}
	if months >= 18 {
		return 1.0
	}
	return float64(months-6) / 12
}

// abandonmentKeywords are high-signal terms for a neglected or departing
// owner.
var abandonmentKeywords = map[string]bool{
	"abandoned": true, "unmaintained": true, "deprecated": true,
	"inactive": true, "discontinued": true, "stale": true,
	"unanswered": true, "unresponsive": true, "neglected": true,
	"burnout": true, "selling": true, "sale": true, "acquire": true,
	"sunset": true, "archived": true, "dead": true,
}

// textScore returns the density of abandonment keywords (0.0-1.0).
func textScore(text string) float64 {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return 0.0
	}
	hits := 0
	for _, w := range words {
		if abandonmentKeywords[w] {
			hits++
		}
	}
	// Two hits in a short description already says plenty.
	density := float64(hits) / float64(len(words)) * 20
	if density > 1.0 {
		return 1.0
	}
	return density
}

// gapScore rates unrealized revenue: a big user base with near-zero MRR
// potential realized is the classic monetization gap.
func gapScore(users, mrr int) float64 {
	if users < 1000 {
		return 0.0
	}
	if mrr <= 0 {
		return 1.0
	}
	perUser := float64(mrr) / float64(users)
	switch {
	case perUser < 0.02:
		return 1.0
	case perUser < 0.10:
		return 0.6
	default:
		return 0.2
	}
}
