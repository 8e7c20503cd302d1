package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"pennywise/internal/api"
	"pennywise/internal/form"
	"pennywise/internal/ledger"
	"pennywise/internal/nav"
)

func (m model) updateHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now().In(m.loc)

	if m.historyOptionsOpen {
		options := ledger.HistoryMonthOptions(now, m.loc)
		switch msg.String() {
		case "esc", "o":
			m.historyOptionsOpen = false
			return m, nil
		case "up", "k":
			if m.historyOptionIdx > 0 {
				m.historyOptionIdx--
			}
			return m, nil
		case "down", "j":
			if m.historyOptionIdx < len(options)-1 {
				m.historyOptionIdx++
			}
			return m, nil
		case "enter":
			m.historyAnchor = options[m.historyOptionIdx]
			m.historyOptionsOpen = false
			m.historyCursor = 0
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.nav.Back()
		return m, nil
	case "left", "h":
		if anchor, ok := ledger.PrevHistoryMonth(m.historyAnchor, now, m.loc); ok {
			m.historyAnchor = anchor
			m.historyCursor = 0
		}
		return m, nil
	case "right", "l":
		if anchor, ok := ledger.NextHistoryMonth(m.historyAnchor, now, m.loc); ok {
			m.historyAnchor = anchor
			m.historyCursor = 0
		}
		return m, nil
	case "o":
		m.historyOptionsOpen = true
		m.historyOptionIdx = m.historyOptionIndex(now)
		return m, nil
	case "t":
		m.activeType = m.activeType.Toggle()
		m.historyCursor = 0
		return m, nil
	case "up", "k":
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil
	case "down", "j":
		rows := m.snap.MonthTransactions(m.activeType, m.historyAnchor, m.loc)
		if m.historyCursor < len(rows)-1 {
			m.historyCursor++
		}
		return m, nil
	case "r":
		m.loading = true
		return m, m.refreshCmd()
	case "enter":
		rows := m.snap.MonthTransactions(m.activeType, m.historyAnchor, m.loc)
		if m.historyCursor >= len(rows) {
			return m, nil
		}
		m.edit = form.NewEditDraft(rows[m.historyCursor])
		m.editAmount.SetValue(rows[m.historyCursor].Amount.String())
		m.editNote.SetValue(rows[m.historyCursor].Note)
		m.editFocus = editFocusAmount
		m.editCatIdx = m.editCategoryIndex()
		m.editErr = ""
		m.syncEditFocus()
		m.nav.Push(nav.ViewEdit)
		return m, nil
	}
	return m, nil
}

func (m model) historyOptionIndex(now time.Time) int {
	for i, opt := range ledger.HistoryMonthOptions(now, m.loc) {
		if ledger.SameMonth(opt, m.historyAnchor, m.loc) {
			return i
		}
	}
	return 0
}

func (m model) renderHistoryScreen(width int) string {
	typeLabel := incomeStyle.Render("income")
	if m.activeType == api.Expense {
		typeLabel = expenseStyle.Render("expense")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("history") + "  " + typeLabel + "\n\n")
	b.WriteString("‹ " + m.historyAnchor.In(m.loc).Format("January 2006") + " ›\n\n")

	if m.historyOptionsOpen {
		now := time.Now().In(m.loc)
		for i, opt := range ledger.HistoryMonthOptions(now, m.loc) {
			marker := "  "
			label := opt.Format("January 2006")
			if i == m.historyOptionIdx {
				marker = "> "
				label = selectedStyle.Render(label)
			}
			b.WriteString(marker + label + "\n")
		}
		b.WriteString("\n" + hintStyle.Render("enter pick month · esc close"))
		return b.String()
	}

	rows := m.snap.MonthTransactions(m.activeType, m.historyAnchor, m.loc)
	if len(rows) == 0 {
		b.WriteString(hintStyle.Render("no transactions this month") + "\n")
	}
	total := decimalZeroSum(rows)
	for i, tx := range rows {
		marker := "  "
		line := fmt.Sprintf("%s  %-16s %8s  %s",
			tx.CreatedAt.In(m.loc).Format("02 Jan 15:04"),
			m.snap.CategoryName(tx.CategoryID),
			money(tx.Amount),
			tx.Note)
		if i == m.historyCursor {
			marker = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	if len(rows) > 0 {
		b.WriteString("\ntotal: " + total + "\n")
	}

	if m.loading {
		b.WriteString("\nloading...\n")
	}
	if m.storeErr != "" {
		b.WriteString("\n" + errStyle.Render(m.storeErr) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("←/→ month · o months · enter edit · t type · r refresh · esc back"))
	return b.String()
}

func decimalZeroSum(rows []api.Transaction) string {
	sum := decimal.Zero
	for _, tx := range rows {
		sum = sum.Add(tx.Amount)
	}
	return money(sum)
}
