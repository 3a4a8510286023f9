// Package render formats scan and score output for the terminal: a result
// table for asset lists and a styled card for one asset's analysis.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/asset"
	"github.com/PalmTreeDream/Asset-hunter-sub000/internal/scorer"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	distressedSt = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	forSaleSt    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// AssetTable renders the scan result list. Colors degrade automatically when
// stdout is not a terminal; alignment does not.
func AssetTable(assets []asset.Asset, color bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Name", "Marketplace", "Users", "MRR Est", "Status"})

	for i, a := range assets {
		status := string(a.Status)
		if color {
			switch a.Status {
			case asset.StatusDistressed:
				status = distressedSt.Render(status)
			case asset.StatusForSale:
				status = forSaleSt.Render(status)
			}
		}
		tw.AppendRow(table.Row{
			i + 1,
			truncate(a.Name, 36),
			a.Marketplace,
			humanCount(a.UserCount),
			"$" + humanCount(a.MRRPotential) + "/mo",
			status,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}

// ScoreCard renders one analysis as a bordered card.
func ScoreCard(a asset.Asset, s scorer.Score) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(a.Name))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(a.Marketplace))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Overall %d/100", s.OverallScore)
	if s.Degraded {
		b.WriteString(labelStyle.Render("  (neutral: analysis unavailable)"))
	}
	b.WriteString("\n\n")

	axes := []struct {
		label string
		value int
	}{
		{"Distress", s.Radar.Distress},
		{"Monetization gap", s.Radar.MonetizationGap},
		{"Technical risk", s.Radar.TechnicalRisk},
		{"Market position", s.Radar.MarketPosition},
		{"Flip potential", s.Radar.FlipPotential},
	}
	for _, ax := range axes {
		fmt.Fprintf(&b, "%-18s %s %2d/10\n", ax.label, bar(ax.value), ax.value)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "MRR range   $%s - $%s (mid $%s)\n",
		humanCount(s.MRRRange.Low), humanCount(s.MRRRange.High), humanCount(s.MRRRange.Mid))
	fmt.Fprintf(&b, "Valuation   $%s - $%s (%s)\n",
		humanCount(s.Valuation.Low), humanCount(s.Valuation.High), s.Valuation.Multiple)
	fmt.Fprintf(&b, "Confidence  %s: %s\n", s.Confidence.Level, s.Confidence.Reason)

	if s.Qualitative.Locked {
		b.WriteString("\n" + labelStyle.Render(s.Qualitative.Narrative))
	} else if s.Qualitative.Narrative != "" {
		b.WriteString("\n" + s.Qualitative.Narrative)
		for _, r := range s.Qualitative.Risks {
			b.WriteString("\n  - risk: " + r)
		}
		for _, o := range s.Qualitative.Opportunities {
			b.WriteString("\n  - opportunity: " + o)
		}
	}

	return cardStyle.Render(b.String())
}

// SourceSummary renders the per-source status line for a scan.
func SourceSummary(ok, total int, tier string) string {
	return fmt.Sprintf("%d/%d sources responded (tier: %s)", ok, total, tier)
}

func bar(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	return strings.Repeat("█", v) + strings.Repeat("░", 10-v)
}

func humanCount(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
