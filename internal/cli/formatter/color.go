package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/carewise/internal/domain"
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

// PhaseColor returns the style for a treatment phase.
func PhaseColor(phase domain.TreatmentPhase) lipgloss.Style {
	switch phase {
	case domain.PhaseOngoing:
		return StyleGreen
	case domain.PhaseStartsToday:
		return StyleYellow
	case domain.PhaseFuture:
		return StyleBlue
	default:
		return StyleDim
	}
}

// PhaseIndicator returns a colored phase marker such as "● ONGOING".
func PhaseIndicator(phase domain.TreatmentPhase) string {
	switch phase {
	case domain.PhaseOngoing:
		return StyleGreen.Render("● ONGOING")
	case domain.PhaseStartsToday:
		return StyleYellow.Render("◐ STARTS TODAY")
	case domain.PhaseFuture:
		return StyleBlue.Render("○ UPCOMING")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// RoleBadge renders a role label, purple for patient-facing roles and blue
// for carer-facing ones.
func RoleBadge(role domain.Role) string {
	switch role {
	case domain.RolePatientAdvice, domain.RolePatientQuestion:
		return StylePurple.Render(role.Label())
	case domain.RoleCarerAdvice, domain.RoleCarerQuestion, domain.RoleSpecificAdvice:
		return StyleBlue.Render(role.Label())
	default:
		return StyleGreen.Render(role.Label())
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
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

// Success and Failure color a status line by outcome.
func Success(text string) string { return StyleGreen.Render(text) }
func Failure(text string) string { return StyleRed.Render(text) }
