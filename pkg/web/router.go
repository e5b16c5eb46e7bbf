package web

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/biopass/biopass/pkg/logger"
)

//go:embed page.html
var page []byte

// Option configures NewRouter.
type Option func(*handlers)

func WithLogger(l *slog.Logger) Option {
	return func(h *handlers) {
		if l != nil {
			h.log = l
		}
	}
}

// WithHealthCheck adds a readiness check to /healthz.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(h *handlers) {
		if check != nil {
			h.checks = append(h.checks, check)
		}
	}
}

// NewRouter wires the pass routes around ctrl.
func NewRouter(ctrl Controller, opts ...Option) chi.Router {
	h := &handlers{ctrl: ctrl, log: logger.Discard()}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("web"))

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(h.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", servePage)
	r.Get("/healthz", h.healthz)
	r.Route("/pass", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/", h.generate)
		r.Delete("/", h.destroy)
		r.Post("/regenerate", h.regenerate)
		r.Get("/qr.png", h.qr)
		r.Get("/events", h.events)
	})
	return r
}

func servePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

func (h *handlers) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.DebugContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("code", ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}
