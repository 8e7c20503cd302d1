package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"pennywise/internal/api"
)

const (
	editFocusAmount = iota
	editFocusNote
	editFocusDate
	editFocusCategory
	editFocusSave
	editFocusDelete
	editFocusCount
)

func (m model) saveTransactionCmd(id int64, patch api.TransactionPatch) tea.Cmd {
	return func() tea.Msg {
		err := m.store.UpdateTransaction(context.Background(), id, patch)
		return mutationDoneMsg{op: opEditSave, err: err}
	}
}

func (m model) deleteTransactionCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.store.DeleteTransaction(context.Background(), id)
		return mutationDoneMsg{op: opEditDelete, err: err}
	}
}

func (m model) editCategoryIndex() int {
	if m.edit == nil {
		return 0
	}
	choices := m.edit.CategoryChoices(m.snap.Categories)
	current := m.edit.Merged().CategoryID
	for i, cat := range choices {
		if cat.ID == current {
			return i
		}
	}
	return 0
}

func (m *model) syncEditFocus() {
	m.editAmount.Blur()
	m.editNote.Blur()
	switch m.editFocus {
	case editFocusAmount:
		m.editAmount.Focus()
	case editFocusNote:
		m.editNote.Focus()
	}
}

// stageEditInputs copies the text inputs into the draft, recording only
// fields that differ from the original so the update stays partial.
func (m *model) stageEditInputs() error {
	raw := strings.TrimSpace(m.editAmount.Value())
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	if !amount.Equal(m.edit.Original.Amount) {
		m.edit.Amount = &amount
	} else {
		m.edit.Amount = nil
	}

	note := strings.TrimSpace(m.editNote.Value())
	if note != m.edit.Original.Note {
		m.edit.Note = &note
	} else {
		m.edit.Note = nil
	}

	choices := m.edit.CategoryChoices(m.snap.Categories)
	if len(choices) > 0 && m.editCatIdx < len(choices) {
		id := choices[m.editCatIdx].ID
		if id != m.edit.Original.CategoryID {
			m.edit.CategoryID = &id
		} else {
			m.edit.CategoryID = nil
		}
	}
	return nil
}

func (m model) updateEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.edit == nil {
		m.nav.Back()
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.edit = nil
		m.editErr = ""
		m.nav.Back()
		return m, nil
	case "tab", "down":
		m.editFocus = (m.editFocus + 1) % editFocusCount
		m.syncEditFocus()
		return m, nil
	case "shift+tab", "up":
		m.editFocus = (m.editFocus - 1 + editFocusCount) % editFocusCount
		m.syncEditFocus()
		return m, nil
	case "left":
		if m.editFocus == editFocusCategory {
			choices := m.edit.CategoryChoices(m.snap.Categories)
			if len(choices) > 0 {
				m.editCatIdx = (m.editCatIdx - 1 + len(choices)) % len(choices)
			}
			return m, nil
		}
	case "right":
		if m.editFocus == editFocusCategory {
			choices := m.edit.CategoryChoices(m.snap.Categories)
			if len(choices) > 0 {
				m.editCatIdx = (m.editCatIdx + 1) % len(choices)
			}
			return m, nil
		}
	case "enter":
		switch m.editFocus {
		case editFocusDate:
			m.calendarTarget = calendarTargetEdit
			m.openCalendar(m.edit.Merged().CreatedAt.In(m.loc).Format("2006-01-02"))
			return m, nil
		case editFocusDelete:
			return m, m.deleteTransactionCmd(m.edit.Original.ID)
		case editFocusSave:
			if err := m.stageEditInputs(); err != nil {
				m.editErr = "Amount is not a number."
				return m, nil
			}
			m.editErr = ""
			return m, m.saveTransactionCmd(m.edit.Original.ID, m.edit.Patch())
		default:
			m.editFocus++
			m.syncEditFocus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.editFocus {
	case editFocusAmount:
		m.editAmount, cmd = m.editAmount.Update(msg)
	case editFocusNote:
		m.editNote, cmd = m.editNote.Update(msg)
	}
	return m, cmd
}

func (m model) renderEditScreen(width int) string {
	if m.edit == nil {
		return ""
	}
	merged := m.edit.Merged()

	label := func(focus int, text string) string {
		if m.editFocus == focus {
			return selectedStyle.Render("> " + text)
		}
		return "  " + text
	}

	choices := m.edit.CategoryChoices(m.snap.Categories)
	categoryName := m.snap.CategoryName(merged.CategoryID)
	if len(choices) > 0 && m.editCatIdx < len(choices) {
		categoryName = choices[m.editCatIdx].Name
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("edit transaction") + "\n\n")
	b.WriteString(label(editFocusAmount, m.editAmount.View()) + "\n")
	b.WriteString(label(editFocusNote, m.editNote.View()) + "\n")
	dateLabel := "date: " + merged.CreatedAt.In(m.loc).Format("2006-01-02 15:04")
	b.WriteString(label(editFocusDate, dateLabel) + "\n")
	b.WriteString(label(editFocusCategory, "category: ‹ "+categoryName+" ›") + "\n\n")
	b.WriteString(label(editFocusSave, "[ save ]") + "\n")
	b.WriteString(label(editFocusDelete, "[ delete ]") + "\n")

	if m.editErr != "" {
		b.WriteString("\n" + errStyle.Render(m.editErr) + "\n")
	}
	if m.storeErr != "" {
		b.WriteString("\n" + errStyle.Render(m.storeErr) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("tab next field · enter activate · esc back"))
	return b.String()
}
