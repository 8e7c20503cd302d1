package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pennywise/internal/export"
)

var menuItems = []string{"refresh", "export csv", "logout", "close"}

func (m model) exportCmd() tea.Cmd {
	return func() tea.Msg {
		path := export.Save(context.Background(), m.client, ".", time.Now(), m.loc, m.log)
		return exportDoneMsg{path: path}
	}
}

func (m model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: m.session.Logout()}
	}
}

func (m model) updateMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "m", "q":
		m.menuOpen = false
		return m, nil
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
		return m, nil
	case "down", "j":
		if m.menuCursor < len(menuItems)-1 {
			m.menuCursor++
		}
		return m, nil
	case "enter":
		switch menuItems[m.menuCursor] {
		case "refresh":
			m.loading = true
			m.menuNote = ""
			return m, m.refreshCmd()
		case "export csv":
			m.menuNote = "exporting..."
			return m, m.exportCmd()
		case "logout":
			return m, m.logoutCmd()
		case "close":
			m.menuOpen = false
			return m, nil
		}
	}
	return m, nil
}

func (m model) renderMenu(width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FFD479")).
		Padding(1, 2)

	var b strings.Builder
	b.WriteString(titleStyle.Render("menu") + "\n\n")
	if m.snap.Balance != nil {
		b.WriteString("income:  " + money(m.snap.Balance.Income) + "\n")
		b.WriteString("expense: " + money(m.snap.Balance.Expense) + "\n")
		b.WriteString("net:     " + money(m.snap.Balance.Net) + "\n\n")
	}
	if user := m.session.User(); user != nil {
		b.WriteString(hintStyle.Render(user.Email) + "\n\n")
	}
	for i, item := range menuItems {
		marker := "  "
		if i == m.menuCursor {
			marker = "> "
			item = selectedStyle.Render(item)
		}
		b.WriteString(marker + item + "\n")
	}
	if m.menuNote != "" {
		b.WriteString("\n" + hintStyle.Render(m.menuNote) + "\n")
	}
	return box.Render(b.String())
}
