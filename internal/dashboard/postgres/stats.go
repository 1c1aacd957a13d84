package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// StatsRepository runs the dashboard aggregates with sqlx. Queries are written
// with ? placeholders and rebound for the connection's driver.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) dashboard.Repository {
	return &StatsRepository{db: db}
}

// monthExpr buckets transactions.date into YYYY-MM.
func (r *StatsRepository) monthExpr() string {
	if r.db.DriverName() == "sqlite3" {
		return "strftime('%Y-%m', date)"
	}
	return "to_char(date, 'YYYY-MM')"
}

func rangeClause(column string, dr *dashboard.DateRange, args []interface{}) (string, []interface{}) {
	if dr == nil {
		return "", args
	}
	return " AND " + column + " BETWEEN ? AND ?", append(args, dr.Start, dr.End)
}

func (r *StatsRepository) SumByType(ctx context.Context, userID int64, t txtype.Type, dr *dashboard.DateRange) (decimal.Decimal, error) {
	filter, args := rangeClause("date", dr, []interface{}{userID, string(t)})
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = ? AND type = ?` + filter

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, r.db.Rebind(query), args...)
	return total, err
}

func (r *StatsRepository) Count(ctx context.Context, userID int64, dr *dashboard.DateRange) (int64, error) {
	filter, args := rangeClause("date", dr, []interface{}{userID})
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = ?` + filter

	var count int64
	err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...)
	return count, err
}

// ByCategory totals each owned category over the owner's transactions in range.
// The range sits in the join condition so the outer rows stay categories.
func (r *StatsRepository) ByCategory(ctx context.Context, userID int64, dr *dashboard.DateRange) ([]dashboard.CategoryTotal, error) {
	filter, args := rangeClause("t.date", dr, []interface{}{userID})
	query := `
		SELECT c.id, c.name, c.color, c.icon, c.type, COALESCE(SUM(t.amount), 0) AS total
		FROM categories c
		LEFT JOIN transactions t ON t.category_id = c.id AND t.user_id = ?` + filter + `
		WHERE c.user_id = ?
		GROUP BY c.id, c.name, c.color, c.icon, c.type
		HAVING COALESCE(SUM(t.amount), 0) > 0
		ORDER BY total DESC, c.id ASC`
	args = append(args, userID)

	totals := []dashboard.CategoryTotal{}
	err := r.db.SelectContext(ctx, &totals, r.db.Rebind(query), args...)
	return totals, err
}

func (r *StatsRepository) Monthly(ctx context.Context, userID int64, from, to time.Time) ([]dashboard.MonthlyTotal, error) {
	month := r.monthExpr()
	query := `
		SELECT ` + month + ` AS month, type, COALESCE(SUM(amount), 0) AS total
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date < ?
		GROUP BY ` + month + `, type
		ORDER BY month DESC, type ASC`

	totals := []dashboard.MonthlyTotal{}
	err := r.db.SelectContext(ctx, &totals, r.db.Rebind(query), userID, from, to)
	return totals, err
}
