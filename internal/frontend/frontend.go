// Package frontend отдаёт страницу перехода по короткой ссылке.
package frontend

import (
	"context"
	"errors"
	"net/http"

	"github.com/Totarae/brevly/internal/middleware"
	"github.com/Totarae/brevly/pkg/client"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NotFoundPath страница, на которую уводим при неизвестной ссылке.
const NotFoundPath = "/url/404"

const notFoundPage = `<!doctype html>
<html><head><meta charset="utf-8"><title>Link not found</title></head>
<body><h1>404</h1><p>This short URL was not found.</p><p><a href="/">Back</a></p></body></html>
`

// Resolver находит исходный URL по короткой ссылке.
type Resolver interface {
	Resolve(ctx context.Context, shortURL string) (string, error)
}

// Handler обработчик переходов.
type Handler struct {
	Resolver Resolver
	Logger   *zap.Logger
}

// NewRouter создаёт маршрутизатор страницы переходов.
func NewRouter(resolver Resolver, logger *zap.Logger) *chi.Mux {
	h := &Handler{Resolver: resolver, Logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.LoggingMiddleware(logger))

	r.Get(NotFoundPath, h.NotFound)
	r.Get("/{shortUrl}", h.Redirect)
	return r
}

// Redirect уводит на исходный URL. Если ссылку найти не удалось, уводит на NotFoundPath.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	shortURL := chi.URLParam(r, "shortUrl")

	target, err := h.Resolver.Resolve(r.Context(), shortURL)
	if err != nil {
		if !errors.Is(err, client.ErrLinkNotFound) {
			h.Logger.Warn("resolve failed", zap.String("short_url", shortURL), zap.Error(err))
		}
		http.Redirect(w, r, NotFoundPath, http.StatusFound)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// NotFound страница неизвестной ссылки.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundPage))
}
