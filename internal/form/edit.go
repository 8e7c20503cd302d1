package form

import (
	"time"

	"github.com/shopspring/decimal"

	"pennywise/internal/api"
)

// EditDraft stages changes to an existing transaction. Unset (nil) fields
// fall through to the original, so a partially edited transaction displays
// correctly before save and the eventual update is a partial payload.
type EditDraft struct {
	Original api.Transaction

	Amount     *decimal.Decimal
	CategoryID *int64
	Note       *string
	CreatedAt  *time.Time
}

func NewEditDraft(original api.Transaction) *EditDraft {
	return &EditDraft{Original: original}
}

// Merged overlays the draft on the original for display.
func (d *EditDraft) Merged() api.Transaction {
	merged := d.Original
	if d.Amount != nil {
		merged.Amount = *d.Amount
	}
	if d.CategoryID != nil {
		merged.CategoryID = *d.CategoryID
	}
	if d.Note != nil {
		merged.Note = *d.Note
	}
	if d.CreatedAt != nil {
		merged.CreatedAt = *d.CreatedAt
	}
	return merged
}

// Patch returns the partial update to submit. Untouched fields stay nil.
func (d *EditDraft) Patch() api.TransactionPatch {
	return api.TransactionPatch{
		Amount:     d.Amount,
		CategoryID: d.CategoryID,
		Note:       d.Note,
		CreatedAt:  d.CreatedAt,
	}
}

// SetDate moves the transaction to another calendar day, keeping the current
// wall-clock time of day (the same composition the entry flow uses).
func (d *EditDraft) SetDate(date string, now time.Time, loc *time.Location) error {
	composed, err := ComposeTimestamp(date, now, loc)
	if err != nil {
		return err
	}
	d.CreatedAt = &composed
	return nil
}

// CategoryChoices returns the categories this edit may move the transaction
// to: only ones sharing the original category's type. Changing a transaction
// between income and expense is not supported here. An unresolvable original
// category yields no choices.
func (d *EditDraft) CategoryChoices(categories []api.Category) []api.Category {
	var originalType api.CategoryType
	found := false
	for _, c := range categories {
		if c.ID == d.Original.CategoryID {
			originalType = c.Type
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	out := make([]api.Category, 0, len(categories))
	for _, c := range categories {
		if c.Type == originalType {
			out = append(out, c)
		}
	}
	return out
}
