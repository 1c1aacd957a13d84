package dashboard_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

// MockRepository implements dashboard.Repository for testing
type MockRepository struct {
	mu         sync.Mutex
	sums       map[txtype.Type]decimal.Decimal
	count      int64
	byCategory []dashboard.CategoryTotal
	monthly    []dashboard.MonthlyTotal
	failOn     string
	calls      []string
	ranges     []*dashboard.DateRange
	from, to   time.Time
}

func (m *MockRepository) record(call string, r *dashboard.DateRange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	m.ranges = append(m.ranges, r)
	if m.failOn == call {
		return errors.New("connection reset")
	}
	return nil
}

func (m *MockRepository) SumByType(_ context.Context, _ int64, t txtype.Type, r *dashboard.DateRange) (decimal.Decimal, error) {
	if err := m.record("sum:"+string(t), r); err != nil {
		return decimal.Zero, err
	}
	return m.sums[t], nil
}

func (m *MockRepository) Count(_ context.Context, _ int64, r *dashboard.DateRange) (int64, error) {
	if err := m.record("count", r); err != nil {
		return 0, err
	}
	return m.count, nil
}

func (m *MockRepository) ByCategory(_ context.Context, _ int64, r *dashboard.DateRange) ([]dashboard.CategoryTotal, error) {
	if err := m.record("byCategory", r); err != nil {
		return nil, err
	}
	return m.byCategory, nil
}

func (m *MockRepository) Monthly(_ context.Context, _ int64, from, to time.Time) ([]dashboard.MonthlyTotal, error) {
	if err := m.record("monthly", nil); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.from, m.to = from, to
	m.mu.Unlock()
	return m.monthly, nil
}

var _ = Describe("Dashboard Service", func() {
	var (
		repo    *MockRepository
		service *dashboard.Service
		now     time.Time
	)

	BeforeEach(func() {
		now = time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)
		repo = &MockRepository{
			sums: map[txtype.Type]decimal.Decimal{
				txtype.Income:  decimal.RequireFromString("1000.00"),
				txtype.Expense: decimal.RequireFromString("1250.50"),
			},
			count: 4,
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = dashboard.NewService(repo, logger,
			dashboard.WithClock(func() time.Time { return now }),
			dashboard.WithQueryTimeout(time.Second))
	})

	It("should compute a signed balance", func() {
		stats, err := service.ComputeStats(context.Background(), 1, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Income.String()).To(Equal("1000"))
		Expect(stats.Expenses.String()).To(Equal("1250.5"))
		Expect(stats.Balance.String()).To(Equal("-250.5"))
		Expect(stats.TransactionsCount).To(Equal(int64(4)))
	})

	It("should run all five aggregates", func() {
		_, err := service.ComputeStats(context.Background(), 1, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.calls).To(ConsistOf("sum:income", "sum:expense", "count", "byCategory", "monthly"))
	})

	It("should pass the range to every aggregate except the monthly series", func() {
		dr := &dashboard.DateRange{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		}
		_, err := service.ComputeStats(context.Background(), 1, dr)
		Expect(err).NotTo(HaveOccurred())

		for i, call := range repo.calls {
			if call == "monthly" {
				continue
			}
			Expect(repo.ranges[i]).To(Equal(dr), call)
		}
		Expect(repo.from).To(Equal(time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)))
		Expect(repo.to).To(Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	})

	It("should return empty breakdowns rather than null", func() {
		stats, err := service.ComputeStats(context.Background(), 1, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.ByCategory).NotTo(BeNil())
		Expect(stats.Monthly).NotTo(BeNil())
	})

	DescribeTable("should fail the whole computation when any aggregate fails",
		func(call string) {
			repo.failOn = call
			stats, err := service.ComputeStats(context.Background(), 1, nil)
			Expect(err).To(MatchError("connection reset"))
			Expect(stats).To(BeNil())
		},
		Entry("income", "sum:income"),
		Entry("expenses", "sum:expense"),
		Entry("count", "count"),
		Entry("by category", "byCategory"),
		Entry("monthly", "monthly"),
	)
})

var _ = Describe("MonthlyWindow", func() {
	It("should cover six calendar months ending with the current one", func() {
		from, to := dashboard.MonthlyWindow(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC))
		Expect(from).To(Equal(time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)))
		Expect(to).To(Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	})

	It("should roll over year boundaries", func() {
		from, to := dashboard.MonthlyWindow(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
		Expect(from).To(Equal(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
		Expect(to).To(Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	})
})
