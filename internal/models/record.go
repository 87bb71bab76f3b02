package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record types. Matching is case-sensitive throughout; anything else is
// rejected at validation time.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Record is a single income or expense transaction owned by one user.
// Date carries only calendar information (UTC midnight).
type Record struct {
	ID          string          `json:"id"`
	OwnerID     int64           `json:"owner_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Totals is the derived aggregate over a record set. It is never persisted;
// every query recomputes it from the owner's current records.
type Totals struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
}
