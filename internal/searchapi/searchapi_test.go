package searchapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

func testClient(baseURL string) *Client {
	c := New("test-key", 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.BaseURL = baseURL
	return c
}

func TestSupplementClassifiesResults(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Errorf("api key not forwarded")
		}
		io.WriteString(w, `{"organic_results":[
			{"title":"Inventory Sync Plus - Shopify App Store","link":"https://apps.shopify.com/inventory-sync-plus","snippet":"Sync stock. 1,200 merchants trust it."},
			{"title":"Form Builder Lite – WordPress plugin","link":"https://wordpress.org/plugins/form-builder-lite/","snippet":"Build forms fast."},
			{"title":"Random blog post","link":"https://example.com/blog/inventory","snippet":"Thoughts on stock."},
			{"title":"Dup","link":"https://apps.shopify.com/inventory-sync-plus","snippet":"dup"}
		]}`)
	}))
	defer srv.Close()

	assets, err := testClient(srv.URL).Supplement(context.Background(), "inventory tools")
	if err != nil {
		t.Fatalf("Supplement: %v", err)
	}
	if !strings.Contains(gotQuery, "inventory tools") || !strings.Contains(gotQuery, "site:apps.shopify.com") {
		t.Errorf("query not site-scoped: %q", gotQuery)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 classified assets, got %d", len(assets))
	}

	shopify := assets[0]
	if shopify.Type != asset.ShopifyApp {
		t.Errorf("type = %s, want shopify_app", shopify.Type)
	}
	if shopify.Name != "Inventory Sync Plus" {
		t.Errorf("title suffix not stripped: %q", shopify.Name)
	}
	if shopify.UserCount != 1200 {
		t.Errorf("snippet users = %d, want 1200", shopify.UserCount)
	}
	if shopify.Marketplace != "Shopify App Store" {
		t.Errorf("marketplace = %q", shopify.Marketplace)
	}

	wp := assets[1]
	if wp.Type != asset.WordPressPlugin {
		t.Errorf("type = %s, want wordpress_plugin", wp.Type)
	}
	if wp.UserCount != 2000 {
		t.Errorf("default users = %d, want 2000", wp.UserCount)
	}
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).Search(context.Background(), "q"); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestSnippetUsers(t *testing.T) {
	tests := []struct {
		snippet string
		want    int
	}{
		{"Used by 45,000+ users worldwide", 45000},
		{"1,200 merchants trust it", 1200},
		{"no numbers here", 2000},
		{"", 2000},
	}
	for _, tt := range tests {
		if got := snippetUsers(tt.snippet); got != tt.want {
			t.Errorf("snippetUsers(%q) = %d, want %d", tt.snippet, got, tt.want)
		}
	}
}

func TestLinkSlug(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://apps.shopify.com/inventory-sync-plus", "inventory-sync-plus"},
		{"https://wordpress.org/plugins/form-builder/", "form-builder"},
		{"https://flippa.com", "flippa.com"},
	}
	for _, tt := range tests {
		if got := linkSlug(tt.link); got != tt.want {
			t.Errorf("linkSlug(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}
