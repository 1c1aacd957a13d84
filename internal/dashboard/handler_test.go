package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/dashboard"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

type stubService struct {
	calls     int
	lastRange *dashboard.DateRange
	err       error
}

func (s *stubService) ComputeStats(_ context.Context, _ int64, r *dashboard.DateRange) (*dashboard.Stats, error) {
	s.calls++
	s.lastRange = r
	if s.err != nil {
		return nil, s.err
	}
	return &dashboard.Stats{
		Income:            decimal.RequireFromString("1000"),
		Expenses:          decimal.RequireFromString("250"),
		Balance:           decimal.RequireFromString("750"),
		TransactionsCount: 3,
		ByCategory:        []dashboard.CategoryTotal{},
		Monthly:           []dashboard.MonthlyTotal{},
	}, nil
}

var _ = Describe("Dashboard Handler", func() {
	var (
		svc     *stubService
		handler *dashboard.Handler
	)

	get := func(url string, authenticated bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		if authenticated {
			req = req.WithContext(internal.ContextWithPrincipal(req.Context(), internal.Principal{ID: 1}))
		}
		w := httptest.NewRecorder()
		handler.GetStats(w, req)
		return w
	}

	BeforeEach(func() {
		svc = &stubService{}
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = dashboard.NewHandler(transport.NewBaseHandler(lg), svc)
	})

	It("should render the stats with numeric amounts", func() {
		w := get("/api/dashboard/stats", true)
		Expect(w.Code).To(Equal(http.StatusOK))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["income"]).To(BeNumerically("==", 1000))
		Expect(body["expenses"]).To(BeNumerically("==", 250))
		Expect(body["balance"]).To(BeNumerically("==", 750))
		Expect(body["transactionsCount"]).To(BeNumerically("==", 3))
		Expect(body["byCategory"]).To(BeEmpty())
		Expect(body["monthly"]).To(BeEmpty())
	})

	It("should pass a range only when both bounds are present", func() {
		get("/api/dashboard/stats?startDate=2024-01-01", true)
		Expect(svc.lastRange).To(BeNil())

		get("/api/dashboard/stats?startDate=2024-01-01&endDate=2024-01-31", true)
		Expect(svc.lastRange).NotTo(BeNil())
		Expect(svc.lastRange.Start.Format("2006-01-02")).To(Equal("2024-01-01"))
		Expect(svc.lastRange.End.Format("2006-01-02")).To(Equal("2024-01-31"))
	})

	It("should reject malformed dates", func() {
		w := get("/api/dashboard/stats?startDate=2024-13-01&endDate=2024-01-31", true)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(svc.calls).To(BeZero())
	})

	It("should answer 401 without a principal and never call the service", func() {
		w := get("/api/dashboard/stats", false)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(svc.calls).To(BeZero())
	})

	It("should hide store failures behind a generic message", func() {
		svc.err = errors.New("pq: connection refused")
		w := get("/api/dashboard/stats", true)
		Expect(w.Code).To(Equal(http.StatusInternalServerError))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["error"]).To(Equal("Erro ao buscar estatísticas"))
		Expect(body["code"]).To(Equal("INTERNAL_ERROR"))
	})
})
