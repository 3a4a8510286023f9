package tui

import (
	"fmt"
	"strings"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
)

func renderListItem(a asset.Asset, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(a.Name, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(a.Name, width-4))
	}

	meta := "  " + itemMetaStyle.Render(a.Marketplace) +
		" " + itemMetaStyle.Render(fmt.Sprintf("· %s users", compactCount(a.UserCount))) +
		" " + statusStyle(string(a.Status)).Render("· "+string(a.Status))

	return title + "\n" + meta
}

func renderList(assets []asset.Asset, cursor, height, width int) string {
	if len(assets) == 0 {
		return "\n  No assets found"
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(assets) {
		end = len(assets)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(assets[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func compactCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1000:
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
