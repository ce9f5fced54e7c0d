package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rigelk42/fast-api/internal/model"
	"github.com/rigelk42/fast-api/internal/service"
	"github.com/rigelk42/fast-api/pkg/apierror"
)

type BookHandler struct {
	service *service.BookService
}

func NewBookHandler(service *service.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// List returns every book, optionally filtered by ?rating=N.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 1 || rating > 5 {
			writeError(w, apierror.Validation("rating must be between 1 and 5", "rating"))
			return
		}
		writeSuccess(w, http.StatusOK, h.service.FilterByRating(rating))
		return
	}

	writeSuccess(w, http.StatusOK, h.service.List())
}

func (h *BookHandler) Published(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2030 {
		writeError(w, apierror.Validation("year must be between 2000 and 2030", "year"))
		return
	}

	writeSuccess(w, http.StatusOK, h.service.FilterByPublishedDate(year))
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	book, err := h.service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, book)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.BookRequest
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

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	if err := h.service.Update(id, payload); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}
