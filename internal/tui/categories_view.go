package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pennywise/internal/api"
	"pennywise/internal/nav"
)

func (m model) createCategoryCmd(name string, typ api.CategoryType) tea.Cmd {
	return func() tea.Msg {
		err := m.store.CreateCategory(context.Background(), name, typ)
		return mutationDoneMsg{op: opCategoryCreate, err: err}
	}
}

func (m model) updateCategoryCmd(id int64, name string, typ api.CategoryType) tea.Cmd {
	return func() tea.Msg {
		err := m.store.UpdateCategory(context.Background(), id, name, typ)
		return mutationDoneMsg{op: opCategoryUpdate, err: err}
	}
}

func (m model) deleteCategoryCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.store.DeleteCategory(context.Background(), id)
		return mutationDoneMsg{op: opCategoryDelete, err: err}
	}
}

func (m model) updateCategoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cats := m.snap.CategoriesOfType(m.activeType)
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.nav.Back()
		return m, nil
	case "t":
		m.activeType = m.activeType.Toggle()
		m.catCursor = 0
		return m, nil
	case "up", "k":
		if m.catCursor > 0 {
			m.catCursor--
		}
		return m, nil
	case "down", "j":
		if m.catCursor < len(cats)-1 {
			m.catCursor++
		}
		return m, nil
	case "a":
		m.catEditing = nil
		m.catNameInput.SetValue("")
		m.catNameInput.Focus()
		m.catType = m.activeType
		m.catErr = ""
		m.nav.Push(nav.ViewCreateCategory)
		return m, nil
	case "enter":
		if m.catCursor >= len(cats) {
			return m, nil
		}
		cat := cats[m.catCursor]
		m.catEditing = &cat
		m.catNameInput.SetValue(cat.Name)
		m.catNameInput.Focus()
		m.catType = cat.Type
		m.catErr = ""
		m.nav.Push(nav.ViewEditCategory)
		return m, nil
	case "x":
		if m.catCursor >= len(cats) {
			return m, nil
		}
		return m, m.deleteCategoryCmd(cats[m.catCursor].ID)
	case "r":
		m.loading = true
		return m, m.refreshCmd()
	}
	return m, nil
}

func (m model) renderCategoriesScreen(width int) string {
	typeLabel := incomeStyle.Render("income")
	if m.activeType == api.Expense {
		typeLabel = expenseStyle.Render("expense")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("categories") + "  " + typeLabel + "\n\n")

	cats := m.snap.CategoriesOfType(m.activeType)
	if len(cats) == 0 {
		b.WriteString(hintStyle.Render("none yet, press a to add") + "\n")
	}
	for i, cat := range cats {
		marker := "  "
		name := cat.Name
		if i == m.catCursor {
			marker = "> "
			name = selectedStyle.Render(name)
		}
		b.WriteString(marker + name + "\n")
	}

	if m.loading {
		b.WriteString("\nloading...\n")
	}
	if m.storeErr != "" {
		b.WriteString("\n" + errStyle.Render(m.storeErr) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("a add · enter edit · x delete · t type · esc back"))
	return b.String()
}

func (m model) updateCategoryFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.catEditing = nil
		m.catNameInput.SetValue("")
		m.catNameInput.Blur()
		m.nav.Back()
		return m, nil
	case "left", "right", "tab":
		m.catType = m.catType.Toggle()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.catNameInput.Value())
		if name == "" {
			m.catErr = "Name is required."
			return m, nil
		}
		m.catErr = ""
		if m.nav.Current() == nav.ViewEditCategory && m.catEditing != nil {
			return m, m.updateCategoryCmd(m.catEditing.ID, name, m.catType)
		}
		return m, m.createCategoryCmd(name, m.catType)
	}

	var cmd tea.Cmd
	m.catNameInput, cmd = m.catNameInput.Update(msg)
	return m, cmd
}

func (m model) renderCategoryFormScreen(width int) string {
	heading := "new category"
	if m.nav.Current() == nav.ViewEditCategory {
		heading = "edit category"
	}
	typeLabel := incomeStyle.Render("income")
	if m.catType == api.Expense {
		typeLabel = expenseStyle.Render("expense")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading) + "\n\n")
	b.WriteString(m.catNameInput.View() + "\n")
	b.WriteString("type: ‹ " + typeLabel + " ›\n")

	if m.catErr != "" {
		b.WriteString("\n" + errStyle.Render(m.catErr) + "\n")
	}
	if m.storeErr != "" {
		b.WriteString("\n" + errStyle.Render(m.storeErr) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("←/→ type · enter save · esc back"))
	return b.String()
}
