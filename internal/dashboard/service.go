package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Repository runs the aggregate reads. A nil range means no date filter.
type Repository interface {
	SumByType(ctx context.Context, userID int64, t txtype.Type, r *DateRange) (decimal.Decimal, error)
	Count(ctx context.Context, userID int64, r *DateRange) (int64, error)
	ByCategory(ctx context.Context, userID int64, r *DateRange) ([]CategoryTotal, error)
	Monthly(ctx context.Context, userID int64, from, to time.Time) ([]MonthlyTotal, error)
}

type Service struct {
	repo    Repository
	logger  *slog.Logger
	now     func() time.Time
	timeout time.Duration
}

type Option func(*Service)

// WithClock replaces time.Now for the monthly window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeStats runs the five aggregate queries concurrently. Any failure
// cancels the rest and fails the whole computation.
func (s *Service) ComputeStats(ctx context.Context, userID int64, r *DateRange) (*Stats, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.timeout)
	defer cancel()

	var stats Stats
	from, to := MonthlyWindow(s.now())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.Income, err = s.repo.SumByType(gctx, userID, txtype.Income, r)
		return err
	})
	g.Go(func() (err error) {
		stats.Expenses, err = s.repo.SumByType(gctx, userID, txtype.Expense, r)
		return err
	})
	g.Go(func() (err error) {
		stats.TransactionsCount, err = s.repo.Count(gctx, userID, r)
		return err
	})
	g.Go(func() (err error) {
		stats.ByCategory, err = s.repo.ByCategory(gctx, userID, r)
		return err
	})
	g.Go(func() (err error) {
		stats.Monthly, err = s.repo.Monthly(gctx, userID, from, to)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to compute dashboard stats", "error", err, "user_id", userID)
		return nil, err
	}

	stats.Balance = stats.Income.Sub(stats.Expenses)
	if stats.ByCategory == nil {
		stats.ByCategory = []CategoryTotal{}
	}
	if stats.Monthly == nil {
		stats.Monthly = []MonthlyTotal{}
	}
	return &stats, nil
}
