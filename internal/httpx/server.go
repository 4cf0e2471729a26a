package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/eklimov/order-management-api/internal/config"
)

// NewRouter builds the router with the common middleware chain and the
// service endpoints that need no collaborators. extra middleware (rate
// limiting) is appended after the baseline chain.
func NewRouter(svc config.Service, log zerolog.Logger, timeout time.Duration, extra ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestID, middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	for _, mw := range extra {
		r.Use(mw)
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"title":   svc.Title,
			"version": svc.Version,
			"service": svc.Name,
		})
	})
	health := func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": svc.Name})
	}
	r.Get("/health", health)
	r.Get("/healthz", health)
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
