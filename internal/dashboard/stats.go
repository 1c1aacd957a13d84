// Package dashboard computes the summary figures shown on a user's dashboard:
// totals per type, balance, transaction count, per-category totals and a
// six-month series.
package dashboard

import (
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
	"github.com/shopspring/decimal"
)

// MonthsInSeries is the length of the monthly series, current month included.
const MonthsInSeries = 6

// DateRange is an inclusive pair of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

type CategoryTotal struct {
	ID    int64           `json:"id" db:"id"`
	Name  string          `json:"name" db:"name"`
	Color string          `json:"color" db:"color"`
	Icon  *string         `json:"icon" db:"icon"`
	Type  txtype.Type     `json:"type" db:"type"`
	Total decimal.Decimal `json:"total" db:"total"`
}

type MonthlyTotal struct {
	Month string          `json:"month" db:"month"`
	Type  txtype.Type     `json:"type" db:"type"`
	Total decimal.Decimal `json:"total" db:"total"`
}

type Stats struct {
	Income            decimal.Decimal `json:"income"`
	Expenses          decimal.Decimal `json:"expenses"`
	Balance           decimal.Decimal `json:"balance"`
	TransactionsCount int64           `json:"transactionsCount"`
	ByCategory        []CategoryTotal `json:"byCategory"`
	Monthly           []MonthlyTotal  `json:"monthly"`
}

// MonthlyWindow returns the half-open interval [from, to) covering the
// MonthsInSeries calendar months that end with the month containing now.
func MonthlyWindow(now time.Time) (from, to time.Time) {
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return current.AddDate(0, -(MonthsInSeries - 1), 0), current.AddDate(0, 1, 0)
}
