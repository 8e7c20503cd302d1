package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pennywise/internal/api"
	"pennywise/internal/nav"
	"pennywise/internal/report"
)

func (m model) updateChartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.nav.Back()
		return m, nil
	case "tab":
		// Mirror of the entry toggle: direct view switch, stack untouched.
		m.nav.SetView(nav.ViewEntry)
		return m, nil
	case "1":
		m.chartMode = report.ModeDay
		return m, m.startReportFetch()
	case "2":
		m.chartMode = report.ModeMonth
		return m, m.startReportFetch()
	case "3":
		m.chartMode = report.ModeYear
		return m, m.startReportFetch()
	case "t":
		m.chartType = m.chartType.Toggle()
		return m, m.startReportFetch()
	case "left", "h":
		m.chartDate = report.StepDate(m.chartMode, m.chartDate, -1, m.loc)
		return m, m.startReportFetch()
	case "right", "l":
		m.chartDate = report.StepDate(m.chartMode, m.chartDate, +1, m.loc)
		return m, m.startReportFetch()
	case "r":
		return m, m.startReportFetch()
	case "m":
		m.menuOpen = true
		m.menuCursor = 0
		m.menuNote = ""
		return m, nil
	}
	return m, nil
}

func chartDateLabel(mode report.Mode, date time.Time, loc *time.Location) string {
	local := date.In(loc)
	switch mode {
	case report.ModeDay:
		return local.Format("Mon 2 Jan 2006")
	case report.ModeMonth:
		return local.Format("January 2006")
	default:
		return local.Format("2006")
	}
}

func (m model) renderChartScreen(width int) string {
	typeLabel := incomeStyle.Render("income")
	if m.chartType == api.Expense {
		typeLabel = expenseStyle.Render("expense")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("breakdown") + "  " + typeLabel + "\n\n")

	modes := []struct {
		key  string
		mode report.Mode
		name string
	}{
		{"1", report.ModeDay, "day"},
		{"2", report.ModeMonth, "month"},
		{"3", report.ModeYear, "year"},
	}
	parts := make([]string, 0, len(modes))
	for _, opt := range modes {
		label := opt.key + ":" + opt.name
		if opt.mode == m.chartMode {
			label = selectedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	b.WriteString(strings.Join(parts, "  ") + "\n")
	b.WriteString("‹ " + chartDateLabel(m.chartMode, m.chartDate, m.loc) + " ›\n\n")

	switch {
	case m.chartLoading:
		b.WriteString("loading...\n")
	case m.chartErr != "":
		b.WriteString(errStyle.Render(m.chartErr) + "\n")
	case len(m.chartItems) == 0:
		b.WriteString(hintStyle.Render("nothing recorded in this window") + "\n")
	default:
		barWidth := max(10, min(40, width-34))
		for _, item := range m.chartItems {
			pct, _ := item.Percent.Float64()
			filled := int(pct * float64(barWidth) / 100)
			if filled > barWidth {
				filled = barWidth
			}
			bar := barStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", barWidth-filled)
			b.WriteString(fmt.Sprintf("%-14s %s %5.1f%%  %s\n",
				item.Category, bar, pct, money(item.Total)))
		}
	}

	b.WriteString("\n" + hintStyle.Render("1/2/3 mode · ←/→ step · t type · tab entry · esc back · q quit"))
	return b.String()
}
