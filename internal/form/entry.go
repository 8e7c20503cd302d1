// Package form holds draft state for the entry and edit flows, separate from
// the ledger mirror.
package form

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pennywise/internal/api"
)

const dateLayout = "2006-01-02"

// Entry is the quick-entry draft: amount as typed on the keypad, optional
// note, selected category, and the entry date.
type Entry struct {
	Amount     string
	Note       string
	CategoryID int64 // 0 = none selected
	EntryDate  string
}

// NewEntry returns a draft with defaults: empty fields, today's date.
func NewEntry(now time.Time, loc *time.Location) Entry {
	return Entry{EntryDate: now.In(loc).Format(dateLayout)}
}

// Reset restores the defaults after a successful submission or navigation
// away.
func (e *Entry) Reset(now time.Time, loc *time.Location) {
	*e = NewEntry(now, loc)
}

// SelectCategory records the tapped category and, when an amount is already
// entered, produces the quick-add payload. With no usable amount only the
// selection is recorded and submit=false.
func (e *Entry) SelectCategory(id int64, now time.Time, loc *time.Location) (api.NewTransaction, bool) {
	e.CategoryID = id
	if strings.TrimSpace(e.Amount) == "" {
		return api.NewTransaction{}, false
	}
	tx, err := e.Payload(now, loc)
	if err != nil {
		return api.NewTransaction{}, false
	}
	return tx, true
}

// Payload builds the create request from the draft. The timestamp is the
// entry date's calendar day combined with now's wall-clock time, not
// midnight.
func (e Entry) Payload(now time.Time, loc *time.Location) (api.NewTransaction, error) {
	if e.CategoryID == 0 {
		return api.NewTransaction{}, errors.New("no category selected")
	}
	amount, err := parseAmount(e.Amount)
	if err != nil {
		return api.NewTransaction{}, err
	}

	createdAt, err := ComposeTimestamp(e.EntryDate, now, loc)
	if err != nil {
		return api.NewTransaction{}, err
	}

	return api.NewTransaction{
		Amount:     amount,
		CategoryID: e.CategoryID,
		Note:       strings.TrimSpace(e.Note),
		CreatedAt:  &createdAt,
	}, nil
}

// ComposeTimestamp merges the selected calendar date with the current
// wall-clock time of day in loc.
func ComposeTimestamp(entryDate string, now time.Time, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, entryDate, loc)
	if err != nil {
		return time.Time{}, errors.New("entry date must be YYYY-MM-DD")
	}
	local := now.In(loc)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		loc,
	), nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	// The keypad allows a trailing dot while typing.
	trimmed = strings.TrimSuffix(trimmed, ".")
	if trimmed == "" {
		return decimal.Zero, errors.New("amount is empty")
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, errors.New("amount is not a number")
	}
	return amount, nil
}
