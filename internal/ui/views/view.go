package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"lookforjob/internal/listing"
)

// EmptyMessage is shown when a search resolved with no postings
const EmptyMessage = "No job postings found."

// InputView is one rendered filter input
type InputView struct {
	Label   string
	View    string
	Focused bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Inputs         []InputView
	ListFocused    bool
	Listing        listing.View
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	Spinner        string
	HelpView       string
	StatusMessage  string
}

// Renderer handles all view rendering
type Renderer struct {
	styles    *Styles
	jobRender *JobRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:    styles,
		jobRender: NewJobRenderer(styles),
	}
}

// Jobs returns the job renderer, shared with the detail pager
func (r *Renderer) Jobs() *JobRenderer {
	return r.jobRender
}

// ChromeLines is the number of rows the renderer uses around the result list
func ChromeLines(inputs int) int {
	// padding(2) + title(2) + inputs + status(2) + pagination(2) + help(2)
	return 10 + inputs
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	for _, in := range state.Inputs {
		label := r.styles.Label.Render(in.Label)
		if in.Focused {
			label = r.styles.LabelFocused.Render(in.Label)
		}
		content.WriteString(label)
		content.WriteString(r.styles.Input.Render(in.View))
		content.WriteString("\n")
	}

	content.WriteString(r.styles.Status.Render(r.renderStatus(state)))
	content.WriteString("\n")

	content.WriteString(r.renderList(state))

	if footer := r.renderPagination(state.Listing); footer != "" {
		content.WriteString("\n\n")
		content.WriteString(footer)
	}

	if state.HelpView != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if padding := availableLines - currentLines - 1; padding > 0 {
			content.WriteString(strings.Repeat("\n", padding))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderTitle builds the title line with the search indicator right-aligned
func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("lookforjob")
	if !state.Listing.Searching {
		return logo
	}

	indicator := r.styles.Searching.Render(strings.TrimSpace(state.Spinner + " Searching..."))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + indicator
}

func (r *Renderer) renderStatus(state ViewState) string {
	v := state.Listing
	if v.Err != "" {
		return r.styles.Error.Render(v.Err)
	}
	if state.StatusMessage != "" {
		return state.StatusMessage
	}
	if v.InitialLoad {
		return "Loading job postings..."
	}

	noun := "jobs"
	if v.Total == 1 {
		noun = "job"
	}
	return fmt.Sprintf("%s %s found", r.styles.Count.Render(humanize.Comma(int64(v.Total))), noun)
}

func (r *Renderer) renderList(state ViewState) string {
	jobs := state.Listing.Jobs
	if len(jobs) == 0 {
		if state.Listing.InitialLoad || state.Listing.Loading {
			return ""
		}
		return r.styles.Dim.Render(EmptyMessage)
	}

	height := state.ViewportHeight
	if height <= 0 {
		height = len(jobs)
	}
	start := state.ViewportOffset
	if start < 0 || start >= len(jobs) {
		start = 0
	}
	end := start + height
	if end > len(jobs) {
		end = len(jobs)
	}

	width := state.Width - 4
	lines := make([]string, 0, end-start+2)
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, r.jobRender.RenderJob(jobs[i], state.ListFocused && i == state.SelectedIndex, width))
	}
	if end < len(jobs) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(jobs)-end)))
	}
	return strings.Join(lines, "\n")
}

// renderPagination shows "Page X of Y" with prev/next hints, only for multi-page results
func (r *Renderer) renderPagination(v listing.View) string {
	if v.LastPage <= 1 {
		return ""
	}

	prev := r.styles.PagerOff.Render("‹ prev")
	if v.HasPrev() {
		prev = r.styles.Pager.Render("‹ prev")
	}
	next := r.styles.PagerOff.Render("next ›")
	if v.HasNext() {
		next = r.styles.Pager.Render("next ›")
	}
	return fmt.Sprintf("%s   %s   %s", prev, PageLabel(v.Page, v.LastPage), next)
}

// PageLabel formats the pagination footer text
func PageLabel(page, lastPage int) string {
	return fmt.Sprintf("Page %d of %d", page, lastPage)
}
