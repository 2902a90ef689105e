package triage

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lifeline-aid/platform/internal/shared/errors"
)

// Handler provides HTTP handlers for the triage module
type Handler struct {
	service *Service
}

// NewHandler creates a new triage handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the triage routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/assess", h.Assess)
	r.Get("/conditions", h.Conditions)
	r.Get("/health", h.HealthCheck)

	return r
}

// Assess handles symptom assessment requests
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	result, err := h.service.Assess(r.Context(), req.Symptoms)
	if err != nil {
		writeError(w, errors.Wrap(err, "assessment failed"))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Conditions lists the condition labels known to the knowledge base
func (h *Handler) Conditions(w http.ResponseWriter, r *http.Request) {
	labels := h.service.Store().Labels()

	writeJSON(w, http.StatusOK, map[string]any{
		"conditions": labels,
		"count":      len(labels),
	})
}

// HealthCheck reports backend readiness and knowledge-base size
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	backend := h.service.Backend()

	if backend == nil || !backend.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "unhealthy",
			"error":  "classification model not loaded",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"backend":    backend.Name(),
		"conditions": h.service.Store().Size(),
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		writeJSON(w, appErr.HTTPStatus, appErr)
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"message": "internal server error",
	})
}
