package scorer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

type stubGen struct {
	responses []string
	err       error
	calls     int
}

func (s *stubGen) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	r := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return r, nil
}

type flakyGen struct {
	failures int
	response string
	calls    int
}

func (f *flakyGen) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return "", errors.New("timeout")
	}
	return f.response, nil
}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chromeAsset(users int) asset.Asset {
	return asset.Asset{
		ID: "chrome-test", Name: "Tab Manager Pro", Type: asset.ChromeExtension,
		Marketplace: "Chrome Web Store", UserCount: users, Status: asset.StatusPotential,
	}
}

const goodResponse = `{"distress":8,"monetization_gap":9,"technical_risk":3,"market_position":7,"flip_potential":8,"narrative":"Solid asset.","outreach":"Hi there.","risks":["churn"],"opportunities":["pricing"]}`

func TestBaselineNumbers(t *testing.T) {
	s := Baseline(chromeAsset(100000))

	// 100000 x 0.02 x 5
	if s.MRRRange.Mid != 10000 {
		t.Errorf("mid = %d, want 10000", s.MRRRange.Mid)
	}
	if s.MRRRange.Low != 5000 || s.MRRRange.High != 20000 {
		t.Errorf("range = %+v, want 5000/20000", s.MRRRange)
	}
	if s.Valuation.Low != 5000*12*3 {
		t.Errorf("valuation low = %d, want %d", s.Valuation.Low, 5000*12*3)
	}
	if s.Valuation.High != 20000*12*5 {
		t.Errorf("valuation high = %d, want %d", s.Valuation.High, 20000*12*5)
	}
	if s.Valuation.Multiple != "3-5x ARR" {
		t.Errorf("multiple = %q", s.Valuation.Multiple)
	}
	if s.Confidence.Level != asset.ConfidenceMedium {
		t.Errorf("confidence = %+v, want medium for Chrome Web Store", s.Confidence)
	}
}

func TestBaselineUnknownMarketplace(t *testing.T) {
	a := chromeAsset(1000)
	a.Marketplace = "Obscure Store"
	s := Baseline(a)
	if s.Confidence.Level != asset.ConfidenceLow {
		t.Errorf("unknown marketplace should score low confidence, got %+v", s.Confidence)
	}
}

func TestOverallFormula(t *testing.T) {
	r := Radar{Distress: 8, MonetizationGap: 9, TechnicalRisk: 3, MarketPosition: 7, FlipPotential: 8}
	if got := Overall(r); got != 78 {
		t.Errorf("overall = %d, want 78", got)
	}
	if got := Overall(Radar{5, 5, 5, 5, 5}); got != 50 {
		t.Errorf("neutral overall = %d, want 50", got)
	}
	if got := Overall(Radar{10, 10, 1, 10, 10}); got != 98 {
		t.Errorf("best case overall = %d, want 98", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{15, 10},
		{-3, 1},
		{7.8, 8},
		{0.2, 1},
		{1, 1},
		{10, 10},
		{5.4, 5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScoreUsesProviderRadar(t *testing.T) {
	e := &Engine{Gen: &stubGen{responses: []string{goodResponse}}, Log: discardLog()}
	s := e.Score(context.Background(), chromeAsset(100000))

	if s.OverallScore != 78 {
		t.Errorf("overall = %d, want 78", s.OverallScore)
	}
	if s.Degraded {
		t.Error("successful analysis should not be degraded")
	}
	if s.Qualitative.Narrative != "Solid asset." {
		t.Errorf("narrative = %q", s.Qualitative.Narrative)
	}
	if len(s.Qualitative.Risks) != 1 || len(s.Qualitative.Opportunities) != 1 {
		t.Errorf("qualitative lists lost: %+v", s.Qualitative)
	}
}

func TestScoreClampsOutOfRangeRadar(t *testing.T) {
	resp := `{"distress":15,"monetization_gap":-3,"technical_risk":7.8,"market_position":7,"flip_potential":8,"narrative":"x","outreach":"y"}`
	e := &Engine{Gen: &stubGen{responses: []string{resp}}, Log: discardLog()}
	s := e.Score(context.Background(), chromeAsset(50000))

	if s.Radar.Distress != 10 {
		t.Errorf("distress = %d, want 10", s.Radar.Distress)
	}
	if s.Radar.MonetizationGap != 1 {
		t.Errorf("monetization gap = %d, want 1", s.Radar.MonetizationGap)
	}
	if s.Radar.TechnicalRisk != 8 {
		t.Errorf("technical risk = %d, want 8", s.Radar.TechnicalRisk)
	}
}

func TestScoreDegradesOnProviderFailure(t *testing.T) {
	e := &Engine{Gen: &stubGen{err: errors.New("timeout")}, Log: discardLog()}
	s := e.Score(context.Background(), chromeAsset(100000))

	if !s.Degraded {
		t.Error("provider failure should mark the score degraded")
	}
	if s.Radar != (Radar{5, 5, 5, 5, 5}) {
		t.Errorf("radar = %+v, want all 5s", s.Radar)
	}
	if s.OverallScore != 50 {
		t.Errorf("overall = %d, want 50", s.OverallScore)
	}
	if s.MRRRange.Mid != 10000 {
		t.Errorf("mid = %d, want 10000 regardless of provider outcome", s.MRRRange.Mid)
	}
	if s.Qualitative.Narrative != "analysis temporarily unavailable" {
		t.Errorf("narrative = %q, want placeholder", s.Qualitative.Narrative)
	}
}

func TestScoreDegradesOnMalformedResponse(t *testing.T) {
	for name, resp := range map[string]string{
		"prose":        "I think this asset looks great!",
		"empty object": "{}",
		"fenced prose": "```json\nnot even json\n```",
	} {
		e := &Engine{Gen: &stubGen{responses: []string{resp}}, Log: discardLog()}
		s := e.Score(context.Background(), chromeAsset(1000))
		if !s.Degraded {
			t.Errorf("%s: expected degraded score", name)
		}
		if s.OverallScore != 50 {
			t.Errorf("%s: overall = %d, want 50", name, s.OverallScore)
		}
	}
}

func TestScoreAcceptsFencedJSON(t *testing.T) {
	e := &Engine{Gen: &stubGen{responses: []string{"```json\n" + goodResponse + "\n```"}}, Log: discardLog()}
	s := e.Score(context.Background(), chromeAsset(1000))
	if s.Degraded {
		t.Error("fenced JSON should parse")
	}
	if s.OverallScore != 78 {
		t.Errorf("overall = %d, want 78", s.OverallScore)
	}
}

func TestScoreNumericFieldsStableAcrossProviderVariance(t *testing.T) {
	other := `{"distress":2,"monetization_gap":3,"technical_risk":9,"market_position":2,"flip_potential":1,"narrative":"different","outreach":"different"}`
	gen := &stubGen{responses: []string{goodResponse, other}}
	e := &Engine{Gen: gen, Log: discardLog()}

	first := e.Score(context.Background(), chromeAsset(100000))
	second := e.Score(context.Background(), chromeAsset(100000))

	if first.MRRRange != second.MRRRange {
		t.Errorf("mrr range varied: %+v vs %+v", first.MRRRange, second.MRRRange)
	}
	if first.Valuation != second.Valuation {
		t.Errorf("valuation varied: %+v vs %+v", first.Valuation, second.Valuation)
	}
	if first.Confidence != second.Confidence {
		t.Errorf("confidence varied: %+v vs %+v", first.Confidence, second.Confidence)
	}
}

func TestScoreCacheConsistency(t *testing.T) {
	other := `{"distress":1,"monetization_gap":1,"technical_risk":10,"market_position":1,"flip_potential":1,"narrative":"n","outreach":"o"}`
	gen := &stubGen{responses: []string{goodResponse, other}}
	e := &Engine{Gen: gen, Cache: NewCache(24*time.Hour, 1000), Log: discardLog()}

	first := e.Score(context.Background(), chromeAsset(100000))
	second := e.Score(context.Background(), chromeAsset(100000))

	if gen.calls != 1 {
		t.Errorf("provider called %d times, want 1 (second hit cached)", gen.calls)
	}
	if first.OverallScore != second.OverallScore {
		t.Errorf("cached score diverged: %d vs %d", first.OverallScore, second.OverallScore)
	}
}

func TestScoreRetriesProviderAfterDegradedResult(t *testing.T) {
	gen := &flakyGen{failures: 1, response: goodResponse}
	e := &Engine{Gen: gen, Cache: NewCache(24*time.Hour, 1000), Log: discardLog()}

	first := e.Score(context.Background(), chromeAsset(100000))
	if !first.Degraded {
		t.Fatal("expected first score degraded while provider is down")
	}

	// A degraded result must not occupy the cache: the next request retries
	// the provider and gets the full analysis.
	second := e.Score(context.Background(), chromeAsset(100000))
	if gen.calls != 2 {
		t.Fatalf("provider called %d times, want 2 (degraded result cached?)", gen.calls)
	}
	if second.Degraded {
		t.Error("second score still degraded after provider recovered")
	}
	if second.OverallScore != 78 {
		t.Errorf("overall = %d, want 78", second.OverallScore)
	}

	// The recovered result is cached as usual.
	third := e.Score(context.Background(), chromeAsset(100000))
	if gen.calls != 2 {
		t.Errorf("provider called %d times after recovery, want 2", gen.calls)
	}
	if third.OverallScore != 78 {
		t.Errorf("cached overall = %d, want 78", third.OverallScore)
	}
}

func TestRedact(t *testing.T) {
	e := &Engine{Gen: &stubGen{responses: []string{goodResponse}}, Log: discardLog()}
	s := Redact(e.Score(context.Background(), chromeAsset(100000)))

	if !s.Qualitative.Locked {
		t.Error("redacted bundle should be marked locked")
	}
	if s.Qualitative.Narrative == "Solid asset." {
		t.Error("narrative not redacted")
	}
	if s.OverallScore != 78 || s.MRRRange.Mid != 10000 {
		t.Error("numeric fields must survive redaction")
	}
	if len(s.Qualitative.Risks) != 0 {
		t.Error("risk list not redacted")
	}
}
