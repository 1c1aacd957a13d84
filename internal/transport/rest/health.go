package rest

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

const healthMessage = "Finance Manager API is running"

type HealthResponse struct {
	Status     string                `json:"status"`
	Message    string                `json:"message"`
	CheckedAt  *time.Time            `json:"checked_at,omitempty"`
	Components map[string]CheckEntry `json:"components,omitempty"`
}

type CheckEntry struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

var _ Pinger = (*sql.DB)(nil)

type HealthHandler struct {
	*transport.BaseHandler
	db Pinger
}

func NewHealthHandler(base *transport.BaseHandler, db Pinger) *HealthHandler {
	return &HealthHandler{BaseHandler: base, db: db}
}

// Liveness → just says service is up
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Message: healthMessage})
}

// Readiness → checks DB connection
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)

	entry := CheckEntry{
		Status:     "ok",
		DurationMs: time.Since(start).Milliseconds(),
	}
	resp := HealthResponse{Status: "ok", Message: healthMessage}
	statusCode := http.StatusOK

	if err != nil {
		logger.From(r.Context()).Error("readiness check failed", "error", err)
		entry.Status = "unavailable"
		entry.Message = "database unreachable"
		resp.Status = "unavailable"
		resp.Message = "Banco de dados indisponível"
		statusCode = http.StatusServiceUnavailable
	}

	checkedAt := time.Now().UTC()
	resp.CheckedAt = &checkedAt
	resp.Components = map[string]CheckEntry{"database": entry}
	h.WriteJSON(w, statusCode, resp)
}
