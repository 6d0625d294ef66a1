// Package output provides styled terminal rendering helpers for adpulse.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for healthy metrics and improvements.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for critical findings and regressions.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for caution indicators.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for healthy values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleError is used for critical values.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleWarning is used for cautionary values.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)

	// StyleLabel is used for field names in rendered key/value lines.
	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(24)

	// StyleValue is used for field values in rendered key/value lines.
	StyleValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0e0e0"))
)

// noColor tracks whether color output is disabled.
var noColor bool

func init() {
	// Piped output gets plain text without anyone asking.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		SetNoColor(true)
	}
}

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(24)
		StyleValue = plain
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// Section renders a section header.
func Section(title string) string {
	return StyleHeader.Render("== " + title + " ==")
}

// StylePriority renders a priority label in its severity color.
func StylePriority(priority string) string {
	label := "[" + priority + "]"
	switch priority {
	case "critical":
		return StyleError.Render(label)
	case "warning":
		return StyleWarning.Render(label)
	default:
		return StyleMuted.Render(label)
	}
}
