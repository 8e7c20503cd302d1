package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		err := m.session.Login(context.Background(), email, password)
		return loginDoneMsg{err: err}
	}
}

func (m model) updateLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		// Text inputs own printable runes on this screen.
	case "tab", "shift+tab", "up", "down":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.loginEmail.Blur()
			m.loginPass.Focus()
		} else {
			m.loginFocus = 0
			m.loginPass.Blur()
			m.loginEmail.Focus()
		}
		return m, nil
	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.loginEmail.Blur()
			m.loginPass.Focus()
			return m, nil
		}
		email := strings.TrimSpace(m.loginEmail.Value())
		password := m.loginPass.Value()
		if email == "" || password == "" {
			m.loginErr = "Enter email and password."
			return m, nil
		}
		if m.loggingIn {
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.loginEmail, cmd = m.loginEmail.Update(msg)
	} else {
		m.loginPass, cmd = m.loginPass.Update(msg)
	}
	return m, cmd
}

func (m model) renderLoginScreen(width int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7BC275")).Render("pennywise")
	lines := []string{
		title,
		"",
		"sign in",
		"",
		m.loginEmail.View(),
		m.loginPass.View(),
		"",
	}
	if m.loggingIn {
		lines = append(lines, "signing in...")
	}
	if m.loginErr != "" {
		lines = append(lines, errStyle.Render(m.loginErr))
	}
	lines = append(lines, "", hintStyle.Render("tab switch field · enter submit · ctrl+c quit"))
	return strings.Join(lines, "\n")
}
