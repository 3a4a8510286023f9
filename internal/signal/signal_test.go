package signal

import (
	"testing"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

func TestScoreAbandonedListing(t *testing.T) {
	input := Input{
		Name:        "WP Table Builder",
		Description: "Drag and drop table plugin, now unmaintained.",
		DetailsNote: "Support threads unanswered. Developer inactive.",
		UserCount:   60000,
		MRR:         0,
		StaleMonths: 18,
	}

	score := Score(input)
	if score < DistressThreshold {
		t.Errorf("expected distressed score for abandoned listing, got %.1f", score)
	}
	if score > 10.0 {
		t.Errorf("score should not exceed 10.0, got %.1f", score)
	}
}

func TestScoreHealthyListing(t *testing.T) {
	input := Input{
		Name:        "Order Printer Plus",
		Description: "Actively developed invoicing app with weekly releases.",
		UserCount:   5800,
		MRR:         1160,
		StaleMonths: 1,
	}

	score := Score(input)
	if score >= DistressThreshold {
		t.Errorf("expected low score for maintained listing, got %.1f", score)
	}
}

func TestStalenessRamp(t *testing.T) {
	if got := stalenessScore(3); got != 0.0 {
		t.Errorf("3 months = %.2f, want 0", got)
	}
	if got := stalenessScore(12); got != 0.5 {
		t.Errorf("12 months = %.2f, want 0.5", got)
	}
	if got := stalenessScore(24); got != 1.0 {
		t.Errorf("24 months = %.2f, want 1.0", got)
	}
}

func TestTextScoreEmpty(t *testing.T) {
	if got := textScore(""); got != 0.0 {
		t.Errorf("empty text = %.2f, want 0", got)
	}
}

func TestGapScore(t *testing.T) {
	if got := gapScore(500, 0); got != 0.0 {
		t.Errorf("tiny user base should not register a gap, got %.2f", got)
	}
	if got := gapScore(100000, 0); got != 1.0 {
		t.Errorf("zero MRR on 100k users = %.2f, want 1.0", got)
	}
	if got := gapScore(10000, 5000); got != 0.2 {
		t.Errorf("well-monetized = %.2f, want 0.2", got)
	}
}

func TestApplyUpgradesStatus(t *testing.T) {
	a := asset.Asset{
		Name:        "Ghost Plugin",
		Description: "abandoned unmaintained plugin, support dead",
		UserCount:   50000,
		Status:      asset.StatusPotential,
	}
	got := Apply(a, 20)
	if got.Status != asset.StatusDistressed {
		t.Errorf("status = %q, want distressed", got.Status)
	}
}

func TestApplyHardStalenessRule(t *testing.T) {
	// Neutral text that triggers no keyword signal: a year without an update
	// is distressing on its own.
	a := asset.Asset{
		Name:         "Quiet Plugin",
		Description:  "Build forms.",
		UserCount:    30000,
		MRRPotential: 1224,
		Status:       asset.StatusPotential,
	}
	if got := Apply(a, 14); got.Status != asset.StatusDistressed {
		t.Errorf("14 months stale: status = %q, want distressed", got.Status)
	}
	if got := Apply(a, 8); got.Status != asset.StatusPotential {
		t.Errorf("8 months stale, neutral text: status = %q, want potential", got.Status)
	}
}

func TestApplyLeavesForSaleAlone(t *testing.T) {
	a := asset.Asset{Name: "Listed", Status: asset.StatusForSale, UserCount: 100000}
	if got := Apply(a, 24); got.Status != asset.StatusForSale {
		t.Errorf("for_sale status should never change, got %q", got.Status)
	}
}

func TestApplyKeepsHealthyPotential(t *testing.T) {
	a := asset.Asset{
		Name:         "Fresh App",
		Description:  "Actively maintained, frequent releases.",
		UserCount:    5000,
		MRRPotential: 1500,
		Status:       asset.StatusPotential,
	}
	if got := Apply(a, 1); got.Status != asset.StatusPotential {
		t.Errorf("status = %q, want potential", got.Status)
	}
}
