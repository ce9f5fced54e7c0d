package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/internal/service"
	"github.com/rigelk42/fast-api/pkg/apierror"
)

type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List returns the whole catalog, optionally filtered by ?category=C.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		writeSuccess(w, http.StatusOK, h.service.ByCategory(category))
		return
	}

	writeSuccess(w, http.StatusOK, h.service.List())
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	title, err := pathTitle(r, "title")
	if err != nil {
		writeError(w, err)
		return
	}

	book, err := h.service.Get(title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, book)
}

func (h *CatalogHandler) ByAuthor(w http.ResponseWriter, r *http.Request) {
	author, err := pathTitle(r, "author")
	if err != nil {
		writeError(w, err)
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	writeSuccess(w, http.StatusOK, h.service.ByAuthor(author, category))
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CatalogBook
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	book, err := h.service.Create(payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, book)
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	title, err := pathTitle(r, "title")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.CatalogBook
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if err := h.service.Update(title, payload); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	title, err := pathTitle(r, "title")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(title); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

// pathTitle decodes a text path parameter; chi leaves it URL-escaped.
func pathTitle(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	decoded, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(decoded) == "" {
		return "", apierror.Validation(name+" is required", name)
	}
	return decoded, nil
}
