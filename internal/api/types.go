package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryType distinguishes income from expense categories.
type CategoryType string

const (
	Income  CategoryType = "income"
	Expense CategoryType = "expense"
)

// Toggle returns the other type.
func (t CategoryType) Toggle() CategoryType {
	if t == Income {
		return Expense
	}
	return Income
}

// Category is a user-defined transaction bucket.
type Category struct {
	ID   int64        `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// Transaction is a single recorded income or expense.
type Transaction struct {
	ID         int64           `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	CategoryID int64           `json:"category_id"`
}

// NewTransaction is the create payload. CreatedAt defaults server-side when
// zero.
type NewTransaction struct {
	Amount     decimal.Decimal `json:"amount"`
	CategoryID int64           `json:"category_id"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  *time.Time      `json:"created_at,omitempty"`
}

// TransactionPatch is a partial update; nil fields are left untouched.
type TransactionPatch struct {
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	CategoryID *int64           `json:"category_id,omitempty"`
	Note       *string          `json:"note,omitempty"`
	CreatedAt  *time.Time       `json:"created_at,omitempty"`
}

// CategoryParams is the create/update payload for categories.
type CategoryParams struct {
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// Balance is the server-computed aggregate. Never derived client-side.
type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// ReportItem is one category's total within a queried window.
type ReportItem struct {
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Total    decimal.Decimal `json:"total"`
}

// User is the authenticated account returned by /auth/me.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}
