package handler

import (
	"net/http"

	"github.com/rigelk42/fast-api/internal/service"
)

// AdminHandler exposes the unrestricted todo operations. Role gating happens
// in the router; these handlers assume an admin principal.
type AdminHandler struct {
	service *service.TodoService
}

func NewAdminHandler(service *service.TodoService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	todos, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, todos)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteAny(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}
