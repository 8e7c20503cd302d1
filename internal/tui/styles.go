package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7BC275"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD479"))
	incomeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BC275"))
	expenseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F47A60"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
