package tui

import (
	"strings"
	"testing"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"a long asset name here", 10, "a long ..."},
		{"abc", 0, ""},
		{"abcd", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.s, tt.n); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestCompactCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{500, "500"},
		{45000, "45.0k"},
		{1500000, "1.5M"},
	}
	for _, tt := range tests {
		if got := compactCount(tt.n); got != tt.want {
			t.Errorf("compactCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRenderListEmpty(t *testing.T) {
	out := renderList(nil, 0, 10, 40)
	if !strings.Contains(out, "No assets") {
		t.Errorf("empty list output: %q", out)
	}
}

func TestRenderListScrollsToCursor(t *testing.T) {
	var assets []asset.Asset
	for i := 0; i < 20; i++ {
		assets = append(assets, asset.Asset{
			Name:        "Asset " + string(rune('A'+i)),
			Marketplace: "Chrome Web Store",
			Status:      asset.StatusPotential,
		})
	}

	// Only ~3 items fit in 9 rows; cursor at the end must be visible.
	out := renderList(assets, 19, 9, 40)
	if !strings.Contains(out, "Asset T") {
		t.Error("cursor item not visible after scroll")
	}
	if strings.Contains(out, "Asset A") {
		t.Error("scrolled-out item still rendered")
	}
}
