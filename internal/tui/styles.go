package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorActiveBdr = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorWarn      = lipgloss.AdaptiveColor{Light: "#D9534F", Dark: "#FF6B6B"}
	colorSale      = lipgloss.AdaptiveColor{Light: "#C77C00", Dark: "#FFB454"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerTierStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	listPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	listPaneActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorActiveBdr)

	detailPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	itemMetaStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	statusDistressedStyle = lipgloss.NewStyle().Foreground(colorWarn)
	statusForSaleStyle    = lipgloss.NewStyle().Foreground(colorSale)
	statusPotentialStyle  = lipgloss.NewStyle().Foreground(colorGreen)

	spinnerStyle = lipgloss.NewStyle().Foreground(colorAccent)

	helpStyle = lipgloss.NewStyle().Foreground(colorDim).PaddingLeft(1)

	errStyle = lipgloss.NewStyle().Foreground(colorWarn).PaddingLeft(1)
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "distressed":
		return statusDistressedStyle
	case "for_sale":
		return statusForSaleStyle
	default:
		return statusPotentialStyle
	}
}
