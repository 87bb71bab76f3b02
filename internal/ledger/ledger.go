// Package ledger holds the aggregation and query core: totals, calendar
// time-window filtering, and text search over record collections. All
// functions are pure; persistence and HTTP concerns live elsewhere.
package ledger

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kaiwenlim/fintrack-be/internal/models"
)

// Sum reduces a record collection into income/expense/balance totals.
// Partitioning is a case-sensitive exact match on the record type; records
// with any other type contribute nothing. Sum always succeeds and returns
// zero totals on empty input.
func Sum(records []models.Record) models.Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, rec := range records {
		switch rec.Type {
		case models.TypeIncome:
			income = income.Add(rec.Amount)
		case models.TypeExpense:
			expense = expense.Add(rec.Amount)
		}
	}
	return models.Totals{
		TotalIncome:  income,
		TotalExpense: expense,
		TotalBalance: income.Sub(expense),
	}
}

// CoerceAmount converts a decoded JSON amount into a decimal, accepting
// numbers and numeric strings. Anything unparseable coerces to zero so a
// sloppy client can never poison the totals.
func CoerceAmount(raw any) decimal.Decimal {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Zero
		}
		return d
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
