package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pennywise/internal/api"
	"pennywise/internal/nav"
	"pennywise/internal/report"
)

func (m model) addTransactionCmd(tx api.NewTransaction) tea.Cmd {
	return func() tea.Msg {
		err := m.store.AddTransaction(context.Background(), tx)
		return mutationDoneMsg{op: opQuickAdd, err: err}
	}
}

// startReportFetch tags the request with a fresh sequence number for its
// mode/date/type key so a response superseded by later navigation is dropped
// instead of overwriting newer data.
func (m *model) startReportFetch() tea.Cmd {
	key := report.Key(m.chartMode, m.chartDate, m.chartType, m.loc)
	seq := m.reports.Begin(key)
	m.chartKey = key
	m.chartLoading = true
	reports := m.reports
	mode, date, typ, loc := m.chartMode, m.chartDate, m.chartType, m.loc
	return func() tea.Msg {
		items, err := reports.Fetch(context.Background(), mode, date, typ, loc)
		return reportMsg{key: key, seq: seq, items: items, err: err}
	}
}

func (m model) updateEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.noteEditing {
		switch msg.String() {
		case "enter", "esc":
			m.noteEditing = false
			m.noteInput.Blur()
			m.entry.Note = strings.TrimSpace(m.noteInput.Value())
			return m, nil
		}
		var cmd tea.Cmd
		m.noteInput, cmd = m.noteInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.nav.Back()
		return m, nil
	case "tab":
		// Direct toggle to the chart: no stack entry is recorded, so esc
		// from the chart follows whatever stack already existed.
		m.nav.SetView(nav.ViewChart)
		m.chartDate = time.Now().In(m.loc)
		return m, m.startReportFetch()
	case "t":
		m.activeType = m.activeType.Toggle()
		m.categoryPage = 0
		m.categoryIdx = 0
		m.clampCursors()
		return m, nil
	case "n":
		m.noteEditing = true
		m.noteInput.SetValue(m.entry.Note)
		m.noteInput.Focus()
		return m, nil
	case "d":
		m.calendarTarget = calendarTargetEntry
		m.openCalendar(m.entry.EntryDate)
		return m, nil
	case "h":
		m.nav.Push(nav.ViewHistory)
		m.historyAnchor = time.Now().In(m.loc)
		m.historyCursor = 0
		m.historyOptionsOpen = false
		return m, nil
	case "g":
		m.nav.Push(nav.ViewCategories)
		m.catCursor = 0
		m.catErr = ""
		return m, nil
	case "m":
		m.menuOpen = true
		m.menuCursor = 0
		m.menuNote = ""
		return m, nil
	case "r":
		m.loading = true
		return m, m.refreshCmd()
	case "backspace":
		if len(m.entry.Amount) > 0 {
			m.entry.Amount = m.entry.Amount[:len(m.entry.Amount)-1]
		}
		return m, nil
	case "left":
		if m.categoryPage > 0 {
			m.categoryPage--
			m.categoryIdx = 0
		}
		return m, nil
	case "right":
		all := m.snap.CategoriesOfType(m.activeType)
		if (m.categoryPage+1)*categoryPageSize < len(all) {
			m.categoryPage++
			m.categoryIdx = 0
		}
		return m, nil
	case "up":
		if m.categoryIdx > 0 {
			m.categoryIdx--
		}
		return m, nil
	case "down":
		page := m.pageCategories(m.snap.CategoriesOfType(m.activeType))
		if m.categoryIdx < len(page)-1 {
			m.categoryIdx++
		}
		return m, nil
	case "enter":
		page := m.pageCategories(m.snap.CategoriesOfType(m.activeType))
		if m.categoryIdx >= len(page) {
			return m, nil
		}
		now := time.Now().In(m.loc)
		tx, submit := m.entry.SelectCategory(page[m.categoryIdx].ID, now, m.loc)
		if !submit {
			return m, nil
		}
		return m, m.addTransactionCmd(tx)
	}

	if msg.Type == tea.KeyRunes {
		for _, ch := range msg.Runes {
			switch {
			case ch >= '0' && ch <= '9':
				m.entry.Amount += string(ch)
			case ch == '.' && !strings.Contains(m.entry.Amount, "."):
				m.entry.Amount += "."
			}
		}
	}
	return m, nil
}

func (m model) renderEntryScreen(width int) string {
	now := time.Now().In(m.loc)

	amount := m.entry.Amount
	if amount == "" {
		amount = "0"
	}
	typeLabel := incomeStyle.Render("income")
	if m.activeType == api.Expense {
		typeLabel = expenseStyle.Render("expense")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("pennywise") + "  " + typeLabel + "\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("$ "+amount) + "\n")
	b.WriteString("date: " + m.entry.EntryDate + "\n")
	if m.noteEditing {
		b.WriteString(m.noteInput.View() + "\n")
	} else if m.entry.Note != "" {
		b.WriteString("note: " + m.entry.Note + "\n")
	}
	b.WriteString("\n")

	all := m.snap.CategoriesOfType(m.activeType)
	page := m.pageCategories(all)
	if len(page) == 0 {
		b.WriteString(hintStyle.Render("no categories yet, press g to manage") + "\n")
	}
	for i, cat := range page {
		marker := "  "
		name := cat.Name
		if i == m.categoryIdx {
			marker = "> "
			name = selectedStyle.Render(name)
		}
		selected := ""
		if cat.ID == m.entry.CategoryID {
			selected = " *"
		}
		b.WriteString(marker + name + selected + "\n")
	}
	if len(all) > categoryPageSize {
		pages := (len(all) + categoryPageSize - 1) / categoryPageSize
		b.WriteString(hintStyle.Render(fmt.Sprintf("page %d/%d", m.categoryPage+1, pages)) + "\n")
	}
	b.WriteString("\n")

	today := m.snap.DayTransactions(m.activeType, now, m.loc)
	b.WriteString(fmt.Sprintf("today: %s\n", money(m.snap.DayTotal(m.activeType, now, m.loc))))
	for i, tx := range today {
		if i >= 5 {
			b.WriteString(hintStyle.Render(fmt.Sprintf("  ... %d more", len(today)-i)) + "\n")
			break
		}
		b.WriteString(fmt.Sprintf("  %s  %-16s %s\n",
			tx.CreatedAt.In(m.loc).Format("15:04"),
			m.snap.CategoryName(tx.CategoryID),
			money(tx.Amount)))
	}

	if m.loading {
		b.WriteString("\nloading...\n")
	}
	if m.storeErr != "" {
		b.WriteString("\n" + errStyle.Render(m.storeErr) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("type amount · enter add · t type · n note · d date · tab chart · h history · g categories · m menu · r refresh · q quit"))
	return b.String()
}
