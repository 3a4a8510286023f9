package digest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/store"
)

func testDB(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *store.Store) {
	t.Helper()
	now := time.Now()
	records := []store.Record{
		{ID: "a", Name: "Abandoned Plugin", Description: "unmaintained, support unanswered", Details: "abandoned", SourceType: "wordpress_plugin", Marketplace: "WordPress.org", URL: "https://a", UserCount: 60000, MRRPotential: 0, Status: "distressed", ScannedAt: now.Add(-time.Hour)},
		{ID: "b", Name: "Healthy App", Description: "weekly releases, active support", SourceType: "shopify_app", Marketplace: "Shopify App Store", URL: "https://b", UserCount: 5000, MRRPotential: 1000, Status: "potential", ScannedAt: now.Add(-time.Hour)},
		{ID: "c", Name: "Listed SaaS", Description: "for sale, motivated seller", SourceType: "flippa_listing", Marketplace: "Flippa/Acquire", URL: "https://c", UserCount: 1100, MRRPotential: 900, Status: "for_sale", ScannedAt: now.Add(-time.Hour)},
	}
	if err := db.UpsertAssets(records); err != nil {
		t.Fatalf("seeding: %v", err)
	}
}

func TestGenerateRanksByDistressSignal(t *testing.T) {
	db := testDB(t)
	seed(t, db)

	d, err := Generate(GenerateOpts{DB: db, Since: time.Now().Add(-24 * time.Hour), TopN: 2})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if d.Scanned != 3 {
		t.Errorf("scanned = %d, want 3", d.Scanned)
	}
	if d.Selected != 2 {
		t.Errorf("selected = %d, want 2", d.Selected)
	}
	if d.Cards[0].Record.ID != "a" {
		t.Errorf("top card = %s, want the abandoned plugin", d.Cards[0].Record.ID)
	}
	if d.TotalMRR != 1900 {
		t.Errorf("total mrr = %d, want 1900", d.TotalMRR)
	}
	if d.Distressed != 1 || d.ForSale != 1 {
		t.Errorf("status counts = %d distressed / %d for sale", d.Distressed, d.ForSale)
	}
}

func TestGenerateEmptyStore(t *testing.T) {
	db := testDB(t)

	d, err := Generate(GenerateOpts{DB: db, Since: time.Now().Add(-24 * time.Hour)})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if d.Scanned != 0 || len(d.Cards) != 0 {
		t.Errorf("expected empty digest, got %+v", d)
	}
}

func TestGenerateStatusFilter(t *testing.T) {
	db := testDB(t)
	seed(t, db)

	d, err := Generate(GenerateOpts{DB: db, Since: time.Now().Add(-24 * time.Hour), Status: "for_sale"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if d.Scanned != 1 || d.Cards[0].Record.ID != "c" {
		t.Errorf("status filter wrong: %+v", d)
	}
}
