package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web panel routes on the provided mux.
// The panel is served at / and its form posts at /app/*.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", h.Panel)
	mux.HandleFunc("POST /app/events", h.Event)
}
