package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *model) openCalendar(date string) {
	cursor, err := time.ParseInLocation("2006-01-02", date, m.loc)
	if err != nil {
		now := time.Now().In(m.loc)
		cursor = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, m.loc)
	}
	m.calendarCursor = cursor
	m.calendarOpen = true
}

func (m model) updateCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.calendarOpen = false
		return m, nil
	case "left":
		m.calendarCursor = m.calendarCursor.AddDate(0, 0, -1)
		return m, nil
	case "right":
		m.calendarCursor = m.calendarCursor.AddDate(0, 0, 1)
		return m, nil
	case "up":
		m.calendarCursor = m.calendarCursor.AddDate(0, 0, -7)
		return m, nil
	case "down":
		m.calendarCursor = m.calendarCursor.AddDate(0, 0, 7)
		return m, nil
	case "shift+left":
		m.calendarCursor = shiftByMonths(m.calendarCursor, -1, m.loc)
		return m, nil
	case "shift+right":
		m.calendarCursor = shiftByMonths(m.calendarCursor, 1, m.loc)
		return m, nil
	case "shift+up":
		m.calendarCursor = m.calendarCursor.AddDate(-1, 0, 0)
		return m, nil
	case "shift+down":
		m.calendarCursor = m.calendarCursor.AddDate(1, 0, 0)
		return m, nil
	case "enter":
		selected := m.calendarCursor.Format("2006-01-02")
		switch m.calendarTarget {
		case calendarTargetEntry:
			m.entry.EntryDate = selected
		case calendarTargetEdit:
			if m.edit != nil {
				if err := m.edit.SetDate(selected, time.Now(), m.loc); err != nil {
					m.editErr = err.Error()
				}
			}
		}
		m.calendarOpen = false
		return m, nil
	}
	return m, nil
}

// shiftByMonths moves by whole months, clamping the day so the 31st never
// spills into the month after next.
func shiftByMonths(t time.Time, months int, loc *time.Location) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, months, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := min(t.Day(), lastDay)
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
}

func (m model) renderCalendar() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#87CEEB")).
		Padding(1, 2)

	cursor := m.calendarCursor
	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, m.loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var b strings.Builder
	b.WriteString(titleStyle.Render(first.Format("January 2006")) + "\n\n")
	b.WriteString(hintStyle.Render("Mo Tu We Th Fr Sa Su") + "\n")

	// Monday-first column for the 1st.
	col := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("   ", col))
	for day := 1; day <= daysInMonth; day++ {
		cell := fmt.Sprintf("%2d", day)
		if day == cursor.Day() {
			cell = selectedStyle.Render(cell)
		}
		b.WriteString(cell + " ")
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	b.WriteString("\n" + hintStyle.Render("arrows day/week · shift+←/→ month · shift+↑/↓ year · enter pick · esc close"))
	return box.Render(b.String())
}
