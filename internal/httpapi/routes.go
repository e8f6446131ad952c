package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/carewise/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes mounts the handler's endpoints on r.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/roles", h.ListRoles)
	r.Post("/advice/{role}", h.RequestAdvice)

	r.Route("/records", func(r chi.Router) {
		r.Get("/", h.ListRecords)
		r.Get("/{name}", h.GetRecord)
		r.Put("/{name}", h.PutRecord)
	})

	r.Route("/history", func(r chi.Router) {
		r.Get("/", h.ListHistory)
		r.Get("/{id}", h.GetHistory)
	})
}

// NewRouter returns the full API under /api with request logging and panic
// recovery.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogAttrs)
	r.Use(middleware.RequestLogger(slogFormatter{}))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, h)
	})
	return r
}

// requestLogAttrs tags every slog record emitted while serving a request with
// its request ID.
func requestLogAttrs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.AppendCtx(r.Context(), slog.String("request_id", middleware.GetReqID(r.Context())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
