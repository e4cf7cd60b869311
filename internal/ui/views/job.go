package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lookforjob/internal/domain"
)

// JobRenderer handles rendering of job posting rows
type JobRenderer struct {
	styles *Styles
}

// NewJobRenderer creates a new job renderer
func NewJobRenderer(styles *Styles) *JobRenderer {
	return &JobRenderer{styles: styles}
}

// RenderJob renders one posting as a single list row
func (r *JobRenderer) RenderJob(job domain.JobPosting, isSelected bool, width int) string {
	pos, company, loc, salary, ago := r.styles.Position, r.styles.Company, r.styles.Location, r.styles.Salary, r.styles.Ago
	if isSelected {
		bg := r.styles.SelectionBg.GetBackground()
		pos = pos.Background(bg)
		company = company.Background(bg)
		loc = loc.Background(bg)
		salary = salary.Background(bg)
		ago = ago.Background(bg)
	}

	cursor := "  "
	if isSelected {
		cursor = "> "
	}

	parts := []string{cursor + pos.Render(orDash(job.Position))}
	if job.Company != "" {
		parts = append(parts, company.Render(job.Company))
	}
	if job.Location != "" {
		parts = append(parts, loc.Render(job.Location))
	}
	if job.Salary != "" {
		parts = append(parts, salary.Render(job.Salary))
	}
	if job.AgoTime != "" {
		parts = append(parts, ago.Render(job.AgoTime))
	}

	line := strings.Join(parts, "  ")
	if width > 0 && lipgloss.Width(line) > width {
		line = truncate(line, width)
	}
	return line
}

// DetailContent renders a posting for the pager
func (r *JobRenderer) DetailContent(job domain.JobPosting) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(orDash(job.Position)))
	b.WriteString("\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", r.styles.Label.Render(label), value))
	}
	row("Company", job.Company)
	row("Location", job.Location)
	row("Salary", job.Salary)
	row("Posted", strings.TrimSpace(strings.Join(nonEmpty(job.Date, parenthesize(job.AgoTime)), " ")))
	row("Keyword", job.Keyword)
	row("Apply at", job.JobURL)
	row("Logo", job.CompanyLogo)

	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render(fmt.Sprintf("  job #%d  (q to return)", job.ID)))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func parenthesize(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// truncate cuts a styled line to a visible width
func truncate(line string, width int) string {
	if width <= 1 {
		return ""
	}
	return lipgloss.NewStyle().MaxWidth(width-1).Render(line) + "…"
}
