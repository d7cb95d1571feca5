// Package httphandler implements the JSON control API driving adapter.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ericfisherdev/prcelebration/internal/application"
	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

const (
	defaultCelebrationLimit = 20
	maxCelebrationLimit     = 50
)

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	pollSvc        *application.PollService
	celebrationSvc *application.CelebrationService
	credentialSvc  *application.CredentialService
	logger         *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	pollSvc *application.PollService,
	celebrationSvc *application.CelebrationService,
	credentialSvc *application.CredentialService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		pollSvc:        pollSvc,
		celebrationSvc: celebrationSvc,
		credentialSvc:  credentialSvc,
		logger:         logger,
	}
}

// RegisterAPIRoutes registers all /api/v1 routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("POST /api/v1/check", h.Check)
	mux.HandleFunc("POST /api/v1/test", h.Test)
	mux.HandleFunc("GET /api/v1/celebrations", h.ListCelebrations)
	mux.HandleFunc("POST /api/v1/events", h.Event)
	mux.HandleFunc("PUT /api/v1/credentials", h.SetCredentials)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// Health reports liveness, whether a token is configured and when the last
// check completed.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toHealthResponse(h.pollSvc.HasToken(), h.pollSvc.LastCheckAt()))
}

// Check runs a notification check now.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	result, err := h.pollSvc.CheckNow(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, application.ErrCheckInProgress):
			writeError(w, http.StatusConflict, "a notification check is already running")
		case errors.Is(err, application.ErrNoToken):
			writeError(w, http.StatusPreconditionFailed, application.TokenAdvisoryMessage)
		default:
			h.logger.Error("manual check failed", "error", err)
			writeError(w, http.StatusBadGateway, "notification check failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, toCheckResponse(result))
}

// Test presents the synthetic pull request in both variants.
func (h *Handler) Test(w http.ResponseWriter, r *http.Request) {
	if err := h.celebrationSvc.Test(r.Context()); err != nil {
		h.logger.Error("test presentation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "test presentation failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCelebrations returns the most recent celebrations, newest first.
func (h *Handler) ListCelebrations(w http.ResponseWriter, r *http.Request) {
	limit := defaultCelebrationLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(parsed, maxCelebrationLimit)
	}

	celebrations, err := h.celebrationSvc.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list celebrations", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]CelebrationResponse, 0, len(celebrations))
	for _, c := range celebrations {
		resp = append(resp, toCelebrationResponse(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Event handles a message emitted by the panel.
func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.celebrationSvc.HandleEvent(req.Command, req.URL); err != nil {
		if errors.Is(err, application.ErrUnknownCommand) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("panel event failed", "command", req.Command, "error", err)
		writeError(w, http.StatusUnprocessableEntity, "could not open link")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetCredentials validates and stores a GitHub token, then swaps it in.
func (h *Handler) SetCredentials(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	persisted, err := h.credentialSvc.SetToken(r.Context(), req.Token)
	if err != nil {
		var authErr *driven.AuthError
		switch {
		case errors.Is(err, application.ErrEmptyToken):
			writeError(w, http.StatusBadRequest, "token is required")
		case errors.As(err, &authErr):
			writeError(w, http.StatusUnprocessableEntity, "github rejected the token")
		default:
			h.logger.Error("failed to set credentials", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, CredentialsResponse{Persisted: persisted})
}
