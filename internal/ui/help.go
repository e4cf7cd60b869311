package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	line := func(keys, desc string) {
		help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render(keys), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render("lookforjob Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	line("type", "Edit the focused filter; results update after a short pause")
	line("tab/shift+tab", "Move between Keyword, Location, Company and the results")
	line("esc, enter", "Jump to the results")
	line("/", "Back to the keyword filter")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Results"))
	help.WriteString("\n")
	line("↑/↓, j/k", "Move the cursor")
	line("PgUp/PgDn", "Move a screen at a time")
	line("g/G", "Go to top/bottom")
	line("enter", "Show the posting in a pager")
	line("r", "Run the search again")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Pages"))
	help.WriteString("\n")
	line("n, →", "Next page")
	line("p, ←", "Previous page")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Changing any filter starts again from page 1"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	line("?", "Show this help")
	help.WriteString(fmt.Sprintf("  %s%s", keyStyle.Render("q, ctrl+c"), descStyle.Render("Quit")))

	return help.String()
}
