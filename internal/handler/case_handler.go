// Package handler provides HTTP handlers for case tracking.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/subramaniashiva/debt-collection-portal/internal/model"
	"github.com/subramaniashiva/debt-collection-portal/internal/service"
	apperrors "github.com/subramaniashiva/debt-collection-portal/pkg/errors"
)

// CaseHandler handles HTTP requests for case tracking.
type CaseHandler struct {
	service *service.CaseService
}

// NewCaseHandler creates a new case handler.
func NewCaseHandler(service *service.CaseService) *CaseHandler {
	return &CaseHandler{service: service}
}

// RegisterRoutes registers case tracking routes.
func (h *CaseHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/cases", h.CreateCase).Methods("POST")
	r.HandleFunc("/cases", h.ListCases).Methods("GET")
	r.HandleFunc("/cases/{id}", h.GetCase).Methods("GET")
	r.HandleFunc("/cases/{id}/action", h.ApplyAction).Methods("POST")
	r.HandleFunc("/cases/{id}/documents/generate", h.GenerateDocument).Methods("POST")
	r.HandleFunc("/dashboard/stats", h.GetStats).Methods("GET")
}

// CreateCase opens a new case.
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperrors.BadRequest("invalid request body"))
		return
	}

	c, err := h.service.CreateCase(r.Context(), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, c)
}

// ListCases returns all cases with projected next actions, newest first.
func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.service.ListCases(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, cases)
}

// GetCase returns a case with its activity and document logs.
func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	id, err := h.caseID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	detail, err := h.service.GetCase(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, detail)
}

// ApplyAction applies a stage transition to a case.
func (h *CaseHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	id, err := h.caseID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req model.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperrors.BadRequest("invalid request body"))
		return
	}

	c, err := h.service.ApplyAction(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, c)
}

// GenerateDocument renders a letter for a case.
func (h *CaseHandler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	id, err := h.caseID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req struct {
		DocumentType model.DocumentKind `json:"documentType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperrors.BadRequest("invalid request body"))
		return
	}

	doc, err := h.service.GenerateDocument(r.Context(), id, req.DocumentType)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, doc)
}

// GetStats returns dashboard statistics.
func (h *CaseHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

// Helper methods

func (h *CaseHandler) caseID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.BadRequest("case id must be an integer")
	}
	return id, nil
}

func (h *CaseHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *CaseHandler) respondError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("internal server error")
	}

	h.respondJSON(w, appErr.HTTPStatus, map[string]interface{}{
		"error": appErr,
	})
}
