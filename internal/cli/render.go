package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/clockwise/internal/report"
)

// Color palette
var (
	colorPrimary = lipgloss.Color("#6C63FF")
	colorMuted   = lipgloss.Color("#666666")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorError   = lipgloss.Color("#E74C3C")
	colorSubtle  = lipgloss.Color("#414868")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	workedStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	overtimeStyle = lipgloss.NewStyle().
			Foreground(colorError)
)

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

// renderDayWise renders a day-wise report as a bar chart of daily
// totals followed by a per-task table.
func renderDayWise(title string, entries []report.DayWiseEntry) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(renderDayChart(entries))
	b.WriteString("\n")
	b.WriteString(renderDayTable(entries))
	return b.String()
}

// renderDayChart draws worked hours per day.
func renderDayChart(entries []report.DayWiseEntry) string {
	if len(entries) == 0 {
		return ""
	}
	width := 4 * len(entries)
	if width < 24 {
		width = 24
	}
	if width > 96 {
		width = 96
	}
	bc := barchart.New(width, 10)

	var bars []barchart.BarData
	for _, e := range entries {
		label := e.Date[5:] // MM-DD
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if e.Time == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  e.Date,
				Value: float64(e.Time) / 3600.0,
				Style: style,
			}},
		})
	}

	bc.PushAll(bars)
	bc.Draw()
	return bc.View()
}

func renderDayTable(entries []report.DayWiseEntry) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-11s %10s  %s",
		"Date", "Status", "Total", "Tasks")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 60)))

	for _, e := range entries {
		status := mutedStyle.Render(fmt.Sprintf("%-11s", e.Status))
		if e.Status == report.StatusWorked {
			status = workedStyle.Render(fmt.Sprintf("%-11s", e.Status))
		}
		rows = append(rows, fmt.Sprintf("  %-12s %s %10s", e.Date, status, formatSeconds(e.Time)))
		for _, t := range e.Tasks {
			line := fmt.Sprintf("      · %-28s %10s", truncate(t.Title, 28), formatSeconds(t.Time))
			if t.Overtime > 0 {
				line += overtimeStyle.Render(fmt.Sprintf("  overtime %s", formatSeconds(t.Overtime)))
			}
			if t.SavedTime > 0 {
				line += workedStyle.Render(fmt.Sprintf("  saved %s", formatSeconds(t.SavedTime)))
			}
			rows = append(rows, line)
		}
	}
	return strings.Join(rows, "\n") + "\n"
}

func renderProjects(projects []report.ProjectWithTasks) string {
	if len(projects) == 0 {
		return mutedStyle.Render("  no projects") + "\n"
	}
	var rows []string
	for _, p := range projects {
		rows = append(rows, titleStyle.Render(p.Name))
		for _, t := range p.Tasks {
			line := fmt.Sprintf("  %-30s %10s", truncate(t.Title, 30), formatSeconds(t.Time))
			if t.EstimatedTime > 0 {
				line += mutedStyle.Render(fmt.Sprintf("  est %s", formatSeconds(t.EstimatedTime)))
			}
			rows = append(rows, line)
		}
	}
	return strings.Join(rows, "\n") + "\n"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
