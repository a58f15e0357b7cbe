package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты коммита бронирования
const (
	OutcomeCommitted  = "committed"
	OutcomeIdempotent = "idempotent"
	OutcomeConflict   = "conflict"
	OutcomeFailed     = "failed"
)

// Результаты запуска оплаты
const (
	CheckoutRedirect = "redirect"
	CheckoutPaid     = "paid"
	CheckoutDeclined = "declined"
	CheckoutError    = "error"
)

// Metrics набор prometheus-метрик сервиса на собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	StoreOpDuration     *prometheus.HistogramVec
	StoreOpErrors       *prometheus.CounterVec
	BookingCommits      *prometheus.CounterVec
	CheckoutsStarted    *prometheus.CounterVec
}

// New регистрирует метрики с префиксом serviceName
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		StoreOpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "store_operation_duration_seconds",
			Help:      "Document store operation latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		StoreOpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "store_operation_errors_total",
			Help:      "Document store operation errors",
		}, []string{"operation"}),
		BookingCommits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "booking_commits_total",
			Help:      "Booking commit attempts by outcome",
		}, []string{"outcome"}),
		CheckoutsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "checkouts_started_total",
			Help:      "Checkout sessions started by result",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StoreOpDuration,
		m.StoreOpErrors,
		m.BookingCommits,
		m.CheckoutsStarted,
	)
	return m
}

// Handler отдает метрики реестра
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry нужен тестам для чтения значений
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveStoreOp фиксирует операцию с хранилищем документов
func (m *Metrics) ObserveStoreOp(operation string, elapsed time.Duration, err error) {
	m.StoreOpDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		m.StoreOpErrors.WithLabelValues(operation).Inc()
	}
}

// IncBookingCommit увеличивает счетчик коммитов с исходом outcome
func (m *Metrics) IncBookingCommit(outcome string) {
	m.BookingCommits.WithLabelValues(outcome).Inc()
}

// IncCheckout увеличивает счетчик запущенных оплат
func (m *Metrics) IncCheckout(result string) {
	m.CheckoutsStarted.WithLabelValues(result).Inc()
}
