package cascade

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/quota"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/scancache"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/sources"
)

type stubAdapter struct {
	name   string
	assets []asset.Asset
	err    error
	calls  int
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Fetch(ctx context.Context, query string) ([]asset.Asset, error) {
	s.calls++
	return s.assets, s.err
}

type stubSearch struct {
	assets []asset.Asset
	err    error
	calls  int
}

func (s *stubSearch) Supplement(ctx context.Context, query string) ([]asset.Asset, error) {
	s.calls++
	return s.assets, s.err
}

func mkAssets(ids ...string) []asset.Asset {
	out := make([]asset.Asset, len(ids))
	for i, id := range ids {
		out[i] = asset.Asset{ID: id, Name: id, Type: asset.ChromeExtension, URL: "https://example.com/" + id, UserCount: (i + 1) * 1000}
	}
	return out
}

func newController(adapters []sources.Adapter, search Supplementer) *Controller {
	return &Controller{
		Adapters:          adapters,
		Cache:             scancache.New(6*time.Hour, 100),
		Quota:             quota.NewLedger(map[string]int{"free": 10}),
		Search:            search,
		Concurrency:       4,
		MinDirect:         5,
		SupplementTimeout: time.Second,
		Log:               slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestScanDirectTier(t *testing.T) {
	ad := &stubAdapter{name: "rich", assets: mkAssets("a", "b", "c", "d", "e", "f")}
	search := &stubSearch{}
	c := newController([]sources.Adapter{ad}, search)

	out, err := c.Scan(context.Background(), "query", "all", "alice", "free")
	if err != nil {
		t.Fatal(err)
	}
	if out.Tier != TierDirect {
		t.Errorf("tier = %q, want direct", out.Tier)
	}
	if len(out.Assets) != 6 {
		t.Errorf("assets = %d, want 6", len(out.Assets))
	}
	if search.calls != 0 {
		t.Error("supplement should not run when direct meets the threshold")
	}
	if out.Cached {
		t.Error("first scan should not be marked cached")
	}
}

func TestScanSupplementTier(t *testing.T) {
	ad := &stubAdapter{name: "thin", assets: mkAssets("a", "b")}
	search := &stubSearch{assets: mkAssets("x", "y", "z")}
	c := newController([]sources.Adapter{ad}, search)

	out, err := c.Scan(context.Background(), "query", "all", "alice", "free")
	if err != nil {
		t.Fatal(err)
	}
	if out.Tier != TierSupplemented {
		t.Errorf("tier = %q, want supplemented", out.Tier)
	}
	if len(out.Assets) != 5 {
		t.Errorf("merged assets = %d, want 5", len(out.Assets))
	}
	if search.calls != 1 {
		t.Errorf("supplement calls = %d, want 1", search.calls)
	}
}

func TestScanFallbackTier(t *testing.T) {
	ad := &stubAdapter{name: "down", err: errors.New("unreachable")}
	search := &stubSearch{err: errors.New("quota exceeded upstream")}
	c := newController([]sources.Adapter{ad}, search)

	out, err := c.Scan(context.Background(), "query", "all", "alice", "free")
	if err != nil {
		t.Fatal(err)
	}
	if out.Tier != TierFallback {
		t.Errorf("tier = %q, want fallback", out.Tier)
	}
	if len(out.Assets) == 0 {
		t.Error("fallback must never return an empty set")
	}
	if len(out.Statuses) != 1 || out.Statuses[0].Success {
		t.Errorf("source failure not recorded: %+v", out.Statuses)
	}
}

func TestScanThinDirectWithoutSearchFallsBack(t *testing.T) {
	ad := &stubAdapter{name: "thin", assets: mkAssets("a", "b")}
	c := newController([]sources.Adapter{ad}, nil)

	out, err := c.Scan(context.Background(), "query", "all", "alice", "free")
	if err != nil {
		t.Fatal(err)
	}
	if out.Tier != TierFallback {
		t.Errorf("tier = %q, want fallback when below threshold with no search key", out.Tier)
	}
	if len(out.Assets) == 0 {
		t.Error("fallback assets missing")
	}
}

func TestScanCacheHitSkipsWorkAndQuota(t *testing.T) {
	ad := &stubAdapter{name: "rich", assets: mkAssets("a", "b", "c", "d", "e")}
	c := newController([]sources.Adapter{ad}, nil)
	c.Quota = quota.NewLedger(map[string]int{"free": 1})

	first, err := c.Scan(context.Background(), "Query", "all", "alice", "free")
	if err != nil {
		t.Fatal(err)
	}

	// Allowance is spent, but the repeat hits the cache before the gate.
	second, err := c.Scan(context.Background(), "  query ", "all", "alice", "free")
	if err != nil {
		t.Fatalf("cached scan should bypass quota: %v", err)
	}
	if !second.Cached {
		t.Error("second scan should be served from cache")
	}
	if second.Tier != TierCached {
		t.Errorf("cached tier = %q, want cached", second.Tier)
	}
	if first.Tier != TierDirect {
		t.Errorf("first tier = %q, want direct", first.Tier)
	}
	if ad.calls != 1 {
		t.Errorf("adapter ran %d times, want 1", ad.calls)
	}
	if len(second.Assets) != len(first.Assets) {
		t.Errorf("cached assets = %d, want %d", len(second.Assets), len(first.Assets))
	}
}

func TestScanQuotaExhausted(t *testing.T) {
	ad := &stubAdapter{name: "rich", assets: mkAssets("a")}
	c := newController([]sources.Adapter{ad}, nil)
	c.Quota = quota.NewLedger(map[string]int{"free": 1})

	if _, err := c.Scan(context.Background(), "first", "all", "alice", "free"); err != nil {
		t.Fatal(err)
	}

	_, err := c.Scan(context.Background(), "second", "all", "alice", "free")
	var le *quota.LimitError
	if !errors.As(err, &le) {
		t.Fatalf("expected LimitError, got %v", err)
	}
	if ad.calls != 1 {
		t.Errorf("rejected scan should not touch the sources, calls = %d", ad.calls)
	}
}

func TestScanMergesAcrossSources(t *testing.T) {
	chrome := &stubAdapter{name: "chrome", assets: []asset.Asset{
		{ID: "c1", Name: "C1", URL: "https://c/1", UserCount: 50000},
		{ID: "c2", Name: "C2", URL: "https://c/2", UserCount: 8000},
		{ID: "c3", Name: "C3", URL: "https://c/3", UserCount: 1200},
	}}
	shopify := &stubAdapter{name: "shopify", assets: []asset.Asset{
		{ID: "s1", Name: "S1", URL: "https://s/1", UserCount: 20000},
		{ID: "s2", Name: "S2", URL: "https://s/2", UserCount: 3000},
	}}
	var down []sources.Adapter
	for i := 0; i < 12; i++ {
		down = append(down, &stubAdapter{name: "down", err: errors.New("blocked")})
	}
	c := newController(append([]sources.Adapter{chrome, shopify}, down...), nil)

	out, err := c.Scan(context.Background(), "query", "all", "alice", "free")
	if err != nil {
		t.Fatal(err)
	}
	if out.Tier != TierDirect {
		t.Errorf("tier = %q, want direct", out.Tier)
	}
	want := []int{50000, 20000, 8000, 3000, 1200}
	if len(out.Assets) != len(want) {
		t.Fatalf("assets = %d, want %d", len(out.Assets), len(want))
	}
	for i, w := range want {
		if out.Assets[i].UserCount != w {
			t.Errorf("asset %d user count = %d, want %d", i, out.Assets[i].UserCount, w)
		}
	}
	failed := 0
	for _, st := range out.Statuses {
		if !st.Success {
			failed++
		}
	}
	if failed != 12 {
		t.Errorf("failed statuses = %d, want 12", failed)
	}
}

func TestDedup(t *testing.T) {
	in := []asset.Asset{
		{ID: "1", Name: "Tab Manager", Type: asset.ChromeExtension, URL: "https://a/1"},
		{ID: "2", Name: "Tab Manager", Type: asset.ChromeExtension, URL: "https://a/other"},
		{ID: "3", Name: "tab manager ", Type: asset.FirefoxAddon, URL: "https://b/1"},
		{ID: "4", Name: "Dup URL", Type: asset.ShopifyApp, URL: "https://a/1"},
	}
	out := Dedup(in)
	if len(out) != 2 {
		t.Fatalf("dedup kept %d, want 2", len(out))
	}
	if out[0].ID != "1" || out[1].ID != "3" {
		t.Errorf("wrong survivors: %s, %s", out[0].ID, out[1].ID)
	}
}

func TestScopedAdapters(t *testing.T) {
	adapters := []sources.Adapter{
		&stubAdapter{name: "Chrome Web Store"},
		&stubAdapter{name: "Shopify App Store"},
		&stubAdapter{name: "WordPress.org"},
	}

	all := scopedAdapters(adapters, "all")
	if len(all) != 3 {
		t.Errorf("scope all kept %d adapters, want 3", len(all))
	}

	narrowed := scopedAdapters(adapters, "chrome, shopify")
	if len(narrowed) != 2 {
		t.Fatalf("narrowed scope kept %d adapters, want 2", len(narrowed))
	}
	if narrowed[0].Name() != "Chrome Web Store" || narrowed[1].Name() != "Shopify App Store" {
		t.Errorf("wrong adapters: %s, %s", narrowed[0].Name(), narrowed[1].Name())
	}

	// An unknown scope falls back to the full set rather than an empty scan.
	unknown := scopedAdapters(adapters, "nosuchplace")
	if len(unknown) != 3 {
		t.Errorf("unknown scope kept %d adapters, want 3", len(unknown))
	}
}
