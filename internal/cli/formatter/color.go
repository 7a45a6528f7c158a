package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/charmbracelet/lipgloss"
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

// Predefined lipgloss styles.
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

// PhaseColor returns the style used for a session phase.
func PhaseColor(p domain.Phase) lipgloss.Style {
	switch p {
	case domain.PhaseStudying:
		return StyleGreen
	case domain.PhaseBreaking:
		return StyleBlue
	case domain.PhasePaused:
		return StyleYellow
	case domain.PhaseFinished:
		return StylePurple
	default:
		return StyleDim
	}
}

// PhasePill returns a colored phase indicator such as "● STUDYING".
func PhasePill(p domain.Phase) string {
	mark := "●"
	switch p {
	case domain.PhasePaused:
		mark = "॥"
	case domain.PhaseFinished:
		mark = "✔"
	case domain.PhaseIdle:
		mark = "○"
	}
	return PhaseColor(p).Render(mark + " " + strings.ToUpper(string(p)))
}

// SpeciesBadge renders a species display name in green.
func SpeciesBadge(s domain.Species) string {
	return StyleGreen.Render(s.DisplayName())
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
