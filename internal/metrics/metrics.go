// Package metrics содержит метрики Prometheus сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests считает запросы по методу, шаблону маршрута и статусу.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brevly_http_requests_total",
		Help: "Количество HTTP-запросов",
	}, []string{"method", "route", "status"})

	// HTTPDuration время обработки запроса.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brevly_http_request_duration_seconds",
		Help:    "Время обработки HTTP-запроса",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	}, []string{"method", "route"})

	// LinkOperations считает операции над ссылками и их исход.
	LinkOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brevly_link_operations_total",
		Help: "Операции над ссылками по результату",
	}, []string{"operation", "result"}) // operation: create, resolve, delete, export
)

// ObserveOperation отмечает результат операции. Пустой code означает успех.
func ObserveOperation(operation, code string) {
	result := "ok"
	if code != "" {
		result = code
	}
	LinkOperations.WithLabelValues(operation, result).Inc()
}
