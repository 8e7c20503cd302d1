package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pennywise/internal/api"
)

// UnknownCategory is displayed for transactions whose category no longer
// resolves. Such transactions are still listed in untyped views but are
// excluded from any type-filtered view.
const UnknownCategory = "Unknown"

// ResolveCategory looks a category up by id.
func (s Snapshot) ResolveCategory(id int64) (api.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return api.Category{}, false
}

// CategoryName resolves a display name, falling back to UnknownCategory.
func (s Snapshot) CategoryName(id int64) string {
	if c, ok := s.ResolveCategory(id); ok {
		return c.Name
	}
	return UnknownCategory
}

// CategoriesOfType returns the categories matching typ, in server order.
func (s Snapshot) CategoriesOfType(typ api.CategoryType) []api.Category {
	out := make([]api.Category, 0, len(s.Categories))
	for _, c := range s.Categories {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}

// TransactionsOfType returns transactions whose resolved category matches
// typ, most recent first. Unresolvable categories are excluded.
func (s Snapshot) TransactionsOfType(typ api.CategoryType) []api.Transaction {
	return s.filtered(typ, func(time.Time) bool { return true })
}

// DayTransactions returns typ-matching transactions on the same calendar day
// as at, evaluated in loc, most recent first.
func (s Snapshot) DayTransactions(typ api.CategoryType, at time.Time, loc *time.Location) []api.Transaction {
	y, m, d := at.In(loc).Date()
	return s.filtered(typ, func(created time.Time) bool {
		cy, cm, cd := created.In(loc).Date()
		return cy == y && cm == m && cd == d
	})
}

// MonthTransactions returns typ-matching transactions in the same calendar
// month as anchor, evaluated in loc, most recent first.
func (s Snapshot) MonthTransactions(typ api.CategoryType, anchor time.Time, loc *time.Location) []api.Transaction {
	ay, am, _ := anchor.In(loc).Date()
	return s.filtered(typ, func(created time.Time) bool {
		cy, cm, _ := created.In(loc).Date()
		return cy == ay && cm == am
	})
}

// DayTotal sums the amounts of DayTransactions.
func (s Snapshot) DayTotal(typ api.CategoryType, at time.Time, loc *time.Location) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.DayTransactions(typ, at, loc) {
		total = total.Add(tx.Amount)
	}
	return total
}

func (s Snapshot) filtered(typ api.CategoryType, keep func(time.Time) bool) []api.Transaction {
	out := make([]api.Transaction, 0, len(s.Transactions))
	for _, tx := range s.Transactions {
		cat, ok := s.ResolveCategory(tx.CategoryID)
		if !ok || cat.Type != typ {
			continue
		}
		if keep(tx.CreatedAt) {
			out = append(out, tx)
		}
	}
	// Most recent first; stable keeps insertion order for equal timestamps.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
