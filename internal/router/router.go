package router

import (
	"github.com/Totarae/brevly/internal/handlers"
	"github.com/Totarae/brevly/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.LoggingMiddleware(logger)) // Подключаем логирование
	r.Use(middleware.MetricsMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.GzipMiddleware) // Gzip-сжатие

		r.Route("/urls", func(r chi.Router) {
			r.Get("/", handler.ListURLs)
			r.Post("/", handler.CreateURL)
			r.Get("/{shortUrl}", handler.ResolveURL)
			r.Delete("/{shortUrl}", handler.DeleteURL)
		})
		r.Get("/downloads", handler.DownloadCSV)
		r.Get("/ping", handler.Ping)
	})

	// promhttp сжимает ответ сам
	r.Handle("/metrics", promhttp.Handler())
	return r
}
