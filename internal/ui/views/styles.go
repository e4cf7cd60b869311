package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Dim          lipgloss.Style
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Input        lipgloss.Style
	Status       lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Scroll       lipgloss.Style
	Position     lipgloss.Style
	Company      lipgloss.Style
	Location     lipgloss.Style
	Salary       lipgloss.Style
	Ago          lipgloss.Style
	SelectionBg  lipgloss.Style
	Pager        lipgloss.Style
	PagerOff     lipgloss.Style
	Error        lipgloss.Style
	Searching    lipgloss.Style
	Count        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim:          lipgloss.NewStyle().Faint(true),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(10),
		LabelFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Width(10),
		Input:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Position:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		Company:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // blue
		Location:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Salary:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Ago:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Pager:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		PagerOff:    lipgloss.NewStyle().Faint(true),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Searching:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Count:       lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
	}
}
