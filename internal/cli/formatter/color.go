package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tdee/internal/contract"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SourceBadge labels where a TDEE value came from.
func SourceBadge(src contract.TDEESource) string {
	switch src {
	case contract.SourceAdaptive:
		return StyleGreen.Render("● adaptive")
	case contract.SourceInitial:
		return StyleYellow.Render("○ initial estimate")
	default:
		return StyleDim.Render("○ default")
	}
}

// TrendStyle colors a weekly weight trend green when it moves in the same
// direction as the configured rate and yellow when it moves against it.
func TrendStyle(trend, rate float64) lipgloss.Style {
	switch {
	case trend == 0 || rate == 0:
		return StyleFg
	case (trend > 0) == (rate > 0):
		return StyleGreen
	default:
		return StyleYellow
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warning renders one warning line.
func Warning(text string) string {
	return StyleYellow.Render("  WARNING: " + text)
}
