package category

import (
	"context"
	"net/http"

	"github.com/frahmantamala/finance-tracker/internal/transport"
)

type ServiceAPI interface {
	ListCategories(ctx context.Context, userID int64, categoryType string) ([]*Category, error)
	GetCategory(ctx context.Context, id, userID int64) (*Category, error)
	CreateCategory(ctx context.Context, userID int64, dto CreateCategoryDTO) (*Category, error)
	UpdateCategory(ctx context.Context, id, userID int64, dto UpdateCategoryDTO) (*Category, error)
	DeleteCategory(ctx context.Context, id, userID int64) error
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

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	categories, err := h.Service.ListCategories(r.Context(), principal.ID, r.URL.Query().Get("type"))
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao buscar categorias")
		return
	}

	h.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao buscar categoria")
		return
	}

	cat, err := h.Service.GetCategory(r.Context(), id, principal.ID)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao buscar categoria")
		return
	}

	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto CreateCategoryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err, "Erro ao criar categoria")
		return
	}

	cat, err := h.Service.CreateCategory(r.Context(), principal.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao criar categoria")
		return
	}

	h.WriteJSON(w, http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao atualizar categoria")
		return
	}

	var dto UpdateCategoryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, r, err, "Erro ao atualizar categoria")
		return
	}

	cat, err := h.Service.UpdateCategory(r.Context(), id, principal.ID, dto)
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao atualizar categoria")
		return
	}

	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err, "Erro ao deletar categoria")
		return
	}

	if err := h.Service.DeleteCategory(r.Context(), id, principal.ID); err != nil {
		h.HandleServiceError(w, r, err, "Erro ao deletar categoria")
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.MessageResponse{Message: "Categoria deletada com sucesso"})
}
