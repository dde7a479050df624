package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/SuyashParmar/network-auditor/internal/audit"
)

// NoColor returns true if colored output should be disabled.
// Respects the NO_COLOR environment variable (https://no-color.org/).
func NoColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// Color definitions for consistent styling across the CLI.
var (
	ColorSuccess = lipgloss.Color("#2ECC71") // green
	ColorWarning = lipgloss.Color("#F39C12") // orange
	ColorError   = lipgloss.Color("#E74C3C") // red
	ColorInfo    = lipgloss.Color("#3498DB") // blue
	ColorAccent  = lipgloss.Color("#9B59B6") // purple
)

// Style presets for headings.
var (
	StyleBold  = lipgloss.NewStyle().Bold(true)
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

// severityStyles is indexed by audit.Severity; its length is tied to the
// enumeration so adding a severity without a style fails to compile.
var severityStyles = [audit.NumSeverities]lipgloss.Style{
	audit.SeverityHigh:   lipgloss.NewStyle().Bold(true).Foreground(ColorError),
	audit.SeverityMedium: lipgloss.NewStyle().Foreground(ColorWarning),
	audit.SeverityLow:    lipgloss.NewStyle().Foreground(ColorInfo),
	audit.SeverityInfo:   lipgloss.NewStyle().Foreground(ColorSuccess),
}

// SeverityStyle returns the display style for s. Unknown values get an
// unstyled style.
func SeverityStyle(s audit.Severity) lipgloss.Style {
	if !s.Valid() {
		return lipgloss.NewStyle()
	}
	return severityStyles[s]
}

// FormatFinding renders a finding as a single "[SEVERITY] message" console
// line, coloured by severity unless NO_COLOR is set.
func FormatFinding(f audit.Finding) string {
	line := "[" + f.Severity.String() + "] " + f.Message
	if NoColor() {
		return line
	}
	return SeverityStyle(f.Severity).Render(line)
}

// plainStyles returns logger styles with colors removed for NO_COLOR mode.
func plainStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level := range styles.Levels {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(strings.ToUpper(level.String())).
			MaxWidth(4)
	}
	styles.Key = lipgloss.NewStyle()
	styles.Value = lipgloss.NewStyle()
	return styles
}
