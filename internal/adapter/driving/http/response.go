package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/prcelebration/internal/application"
	"github.com/ericfisherdev/prcelebration/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
// LastCheckAt is empty until the first check completes.
type HealthResponse struct {
	Status      string `json:"status"`
	HasToken    bool   `json:"has_token"`
	LastCheckAt string `json:"last_check_at"`
}

// CheckResponse is the JSON representation of a completed check.
type CheckResponse struct {
	Fetched      int `json:"fetched"`
	PullRequests int `json:"pull_requests"`
	Presented    int `json:"presented"`
	Suppressed   int `json:"suppressed"`
	Acknowledged int `json:"acknowledged"`
	Failed       int `json:"failed"`
}

// CelebrationResponse is the JSON representation of a recorded presentation.
type CelebrationResponse struct {
	ID          int64  `json:"id"`
	Positive    bool   `json:"positive"`
	Title       string `json:"title"`
	Number      int    `json:"number,omitempty"`
	URL         string `json:"url,omitempty"`
	PresentedAt string `json:"presented_at"`
}

// EventRequest is the JSON body emitted by the panel.
type EventRequest struct {
	Command string `json:"command"`
	URL     string `json:"url"`
}

// CredentialsRequest is the JSON body for the credentials endpoint.
type CredentialsRequest struct {
	Token string `json:"token"`
}

// CredentialsResponse reports whether the token survives a restart.
type CredentialsResponse struct {
	Persisted bool `json:"persisted"`
}

func toHealthResponse(hasToken bool, lastCheckAt time.Time) HealthResponse {
	resp := HealthResponse{Status: "ok", HasToken: hasToken}
	if !lastCheckAt.IsZero() {
		resp.LastCheckAt = lastCheckAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toCheckResponse(r application.CheckResult) CheckResponse {
	return CheckResponse{
		Fetched:      r.Fetched,
		PullRequests: r.PullRequests,
		Presented:    r.Presented,
		Suppressed:   r.Suppressed,
		Acknowledged: r.Acknowledged,
		Failed:       r.Failed,
	}
}

// toCelebrationResponse converts a domain Celebration to its JSON representation.
func toCelebrationResponse(c model.Celebration) CelebrationResponse {
	return CelebrationResponse{
		ID:          c.ID,
		Positive:    c.Outcome.IsPositive(),
		Title:       c.Title,
		Number:      c.Number,
		URL:         c.HTMLURL,
		PresentedAt: c.PresentedAt.UTC().Format(time.RFC3339),
	}
}
