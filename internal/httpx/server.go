package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nobih83/bn-storefront/internal/validate"
)

// NewRouter builds the base mux. Extra middleware (session loading) must
// come in here because chi rejects Use() after the first route.
func NewRouter(extra ...func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(extra...)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// NewAdminRouter is mounted once at /admin; every handler hangs its
// back-office routes off it.
func NewAdminRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(RequireAdmin)
	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// Validation failures carry the field tag so the client can target the
// offending input.
func writeValidationErr(w http.ResponseWriter, err *validate.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": err.Reason,
		"field": err.Field,
	})
}
