package dashboard

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	ComputeStats(ctx context.Context, userID int64, r *DateRange) (*Stats, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	dateRange, err := ParseDateRange(r)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao buscar estatísticas")
		return
	}

	stats, err := h.Service.ComputeStats(r.Context(), principal.ID, dateRange)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao buscar estatísticas")
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

// ParseDateRange filters only when both startDate and endDate are present.
// A value that is present but malformed is rejected either way.
func ParseDateRange(r *http.Request) (*DateRange, error) {
	q := r.URL.Query()
	rawStart, rawEnd := q.Get("startDate"), q.Get("endDate")

	var dr DateRange
	if rawStart != "" {
		start, err := validation.ParseDate("startDate", rawStart)
		if err != nil {
			return nil, err
		}
		dr.Start = start
	}
	if rawEnd != "" {
		end, err := validation.ParseDate("endDate", rawEnd)
		if err != nil {
			return nil, err
		}
		dr.End = end
	}

	if rawStart == "" || rawEnd == "" {
		return nil, nil
	}
	return &dr, nil
}
