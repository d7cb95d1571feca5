// Package web implements the HTML panel driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/prcelebration/internal/application"
)

// historyLimit bounds the recent presentations listed under the figure.
const historyLimit = 10

// Handler is the web panel driving adapter that serves HTML via templ components.
type Handler struct {
	celebrationSvc *application.CelebrationService
	logger         *slog.Logger
	now            func() time.Time
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(celebrationSvc *application.CelebrationService, logger *slog.Logger) *Handler {
	return &Handler{
		celebrationSvc: celebrationSvc,
		logger:         logger,
		now:            time.Now,
	}
}

// Panel renders the latest celebration with its stick figure and the
// recent history.
func (h *Handler) Panel(w http.ResponseWriter, r *http.Request) {
	latest, err := h.celebrationSvc.Latest(r.Context())
	if err != nil {
		h.logger.Error("failed to load latest celebration", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	recent, err := h.celebrationSvc.Recent(r.Context(), historyLimit+1)
	if err != nil {
		h.logger.Error("failed to load celebration history", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token := csrfToken(w, r)
	panel := toPanelViewModel(latest, recent, token, h.now())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := Panel(panel).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render panel", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Event receives the panel's form posts. openExternalLink forwards the url
// to the host's opener, then the browser is sent back to the panel.
func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	command := r.FormValue("command")
	if err := h.celebrationSvc.HandleEvent(command, r.FormValue("url")); err != nil {
		if errors.Is(err, application.ErrUnknownCommand) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("panel event failed", "command", command, "error", err)
		http.Error(w, "could not open link", http.StatusUnprocessableEntity)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
