package transaction

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
	"github.com/frahmantamala/finance-tracker/internal/core/txtype"
	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	ListTransactions(ctx context.Context, userID int64, filter Filter) ([]*Transaction, error)
	GetTransaction(ctx context.Context, id, userID int64) (*Transaction, error)
	CreateTransaction(ctx context.Context, userID int64, dto CreateTransactionDTO) (*Transaction, error)
	UpdateTransaction(ctx context.Context, id, userID int64, dto UpdateTransactionDTO) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id, userID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	now     func() time.Time
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		now:         time.Now,
	}
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	filter, err := ParseFilter(r)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao buscar transações")
		return
	}

	transactions, err := h.Service.ListTransactions(r.Context(), principal.ID, filter)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao buscar transações")
		return
	}

	h.WriteJSON(w, http.StatusOK, transactions)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao buscar transação")
		return
	}

	tx, err := h.Service.GetTransaction(r.Context(), id, principal.ID)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao buscar transação")
		return
	}

	h.WriteJSON(w, http.StatusOK, tx)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto CreateTransactionDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err, "Erro ao criar transação")
		return
	}

	tx, err := h.Service.CreateTransaction(r.Context(), principal.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao criar transação")
		return
	}

	h.WriteJSON(w, http.StatusCreated, tx)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao atualizar transação")
		return
	}

	var dto UpdateTransactionDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err, "Erro ao atualizar transação")
		return
	}

	tx, err := h.Service.UpdateTransaction(r.Context(), id, principal.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao atualizar transação")
		return
	}

	h.WriteJSON(w, http.StatusOK, tx)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao deletar transação")
		return
	}

	if err := h.Service.DeleteTransaction(r.Context(), id, principal.ID); err != nil {
		h.HandleServiceError(w, r, err, "Erro ao deletar transação")
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.MessageResponse{Message: "Transação deletada com sucesso"})
}

// ExportTransactions streams the filtered listing as CSV (default) or XLSX.
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	format := ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = FormatCSV
	}
	if !format.Valid() {
		h.HandleServiceError(w, r, errors.NewValidationError(`Formato deve ser "csv" ou "xlsx"`, errors.ErrCodeValidationFailed), "Erro ao exportar transações")
		return
	}

	filter, err := ParseFilter(r)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao exportar transações")
		return
	}

	transactions, err := h.Service.ListTransactions(r.Context(), principal.ID, filter)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao exportar transações")
		return
	}

	filename := fmt.Sprintf("transacoes_%s.%s", h.now().Format("20060102"), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	write := WriteCSV
	if format == FormatXLSX {
		write = WriteXLSX
	}
	if err := write(w, transactions); err != nil {
		h.Logger.Error("ExportTransactions: failed to write export", "error", err, "format", format, "user_id", principal.ID)
	}
}

// ParseFilter reads startDate, endDate, type and categoryId. Each filter is
// independent; malformed values are rejected.
func ParseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	var filter Filter

	if raw := q.Get("startDate"); raw != "" {
		d, err := validation.ParseDate("startDate", raw)
		if err != nil {
			return Filter{}, err
		}
		filter.StartDate = &d
	}
	if raw := q.Get("endDate"); raw != "" {
		d, err := validation.ParseDate("endDate", raw)
		if err != nil {
			return Filter{}, err
		}
		filter.EndDate = &d
	}
	if raw := q.Get("type"); raw != "" {
		t := txtype.Type(raw)
		if !t.Valid() {
			return Filter{}, errors.NewValidationError(`Tipo deve ser "income" ou "expense"`, errors.ErrCodeInvalidType)
		}
		filter.Type = t
	}
	if raw := q.Get("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return Filter{}, errors.NewValidationFieldError("categoryId", "categoryId inválido", errors.ErrCodeInvalidCategory)
		}
		filter.CategoryID = &id
	}
	return filter, nil
}
