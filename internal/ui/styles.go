package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// --- UI Styles ---
var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#8942E1"))
	subtitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AC4BA")).Italic(true)
	subtleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	dividerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	focusStyle      = lipgloss.NewStyle().Bold(true)
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8942E1"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3AC4BA"))
	hoverStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFAB78"))

	// markers for the status line
	symbolSelection = fgSymbol("#FFAB78", "S")
	symbolViewport  = fgSymbol("#3AC4BA", "V")
	symbolCursor    = fgSymbol("#8942E1", "+")
)

const (
	colGeneWidth  = 16
	colValueWidth = 20
	colQWidth     = 12
)

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "Gene", Width: colGeneWidth},
		{Title: "Enrichment Sample 1", Width: colValueWidth},
		{Title: "Enrichment Sample 2", Width: colValueWidth},
		{Title: "Q Value", Width: colQWidth},
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#8942E1")).
		Bold(false)
	return s
}

func fgSymbol(col, ch string) string {
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Render(ch)
	const reset = "\x1b[0m"
	return strings.TrimSuffix(s, reset) + "\x1b[39m"
}

// renderFooter creates a consistent footer across all views
// statusLine: optional status information (shown in subtleStyle)
// helpLines: help text lines (shown in helpStyle)
func renderFooter(statusLine string, helpLines ...string) string {
	var b strings.Builder

	if statusLine != "" {
		b.WriteString(subtleStyle.Render(statusLine) + "\n")
	}

	for _, line := range helpLines {
		b.WriteString(helpStyle.Render(line) + "\n")
	}

	// Remove trailing newline
	result := b.String()
	return strings.TrimSuffix(result, "\n")
}
