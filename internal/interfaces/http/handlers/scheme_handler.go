package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/ScholarAI/internal/application/catalog"
	"github.com/turtacn/ScholarAI/internal/domain/scheme"
	"github.com/turtacn/ScholarAI/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScholarAI/pkg/errors"
)

// SchemeHandler serves the public catalog and the admin scheme routes.
type SchemeHandler struct {
	catalog     catalog.Service
	logger      logging.Logger
	maxBodySize int64
}

// NewSchemeHandler creates a SchemeHandler.
func NewSchemeHandler(svc catalog.Service, logger logging.Logger, maxBodySize int64) *SchemeHandler {
	return &SchemeHandler{catalog: svc, logger: logger, maxBodySize: maxBodySize}
}

// SchemeListResponse is the body of GET /schemes.
type SchemeListResponse struct {
	Items []scheme.Scheme `json:"items"`
	Total int             `json:"total"`
}

// criteriaFromQuery reads ?q=&type=&level=&category=.
func criteriaFromQuery(r *http.Request) (scheme.Criteria, error) {
	q := r.URL.Query()
	c := scheme.Criteria{
		Text:     strings.TrimSpace(q.Get("q")),
		Type:     scheme.Type(strings.TrimSpace(q.Get("type"))),
		Level:    scheme.Level(strings.TrimSpace(q.Get("level"))),
		Category: strings.TrimSpace(q.Get("category")),
	}
	if c.Type != "" && !c.Type.IsValid() {
		return c, errors.Validation("unknown scheme type").WithDetail(string(c.Type))
	}
	if c.Level != "" && !c.Level.IsValid() {
		return c, errors.Validation("unknown scheme level").WithDetail(string(c.Level))
	}
	return c, nil
}

// List handles GET /api/v1/schemes.
func (h *SchemeHandler) List(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	items, err := h.catalog.List(r.Context(), c)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, SchemeListResponse{Items: items, Total: len(items)})
}

// Get handles GET /api/v1/schemes/{id}.
func (h *SchemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Create handles POST /api/v1/admin/schemes.
func (h *SchemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var d scheme.Draft
	if err := decodeJSON(w, r, h.maxBodySize, &d); err != nil {
		WriteError(w, err)
		return
	}
	s, err := h.catalog.Add(r.Context(), d)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Location", "/api/v1/schemes/"+s.ID)
	writeJSON(w, http.StatusCreated, s)
}

// Update handles PATCH /api/v1/admin/schemes/{id}.  A missing id is a 404
// and nothing is written.
func (h *SchemeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p scheme.Patch
	if err := decodeJSON(w, r, h.maxBodySize, &p); err != nil {
		WriteError(w, err)
		return
	}
	s, applied, err := h.catalog.Update(r.Context(), id, p)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	if !applied {
		WriteError(w, errors.New(errors.ErrCodeSchemeNotFound, "scheme not found").WithDetail(id))
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Delete handles DELETE /api/v1/admin/schemes/{id}.  It answers 204 whether
// or not the id existed.
func (h *SchemeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

//Personal.AI order the ending
