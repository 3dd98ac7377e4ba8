package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса календаря
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	rescheduleRuns *prometheus.CounterVec
	bannersShown   *prometheus.CounterVec
}

// New создает и регистрирует коллекторы. Если reg == nil, используется DefaultRegisterer.
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}, []string{"method", "route"}),
		rescheduleRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "calendar",
			Name:        "reschedule_total",
			Help:        "Drag-reschedule attempts by result",
			ConstLabels: labels,
		}, []string{"result"}),
		bannersShown: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "calendar",
			Name:        "banners_total",
			Help:        "Transient banners shown by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.httpRequests, m.httpDuration, m.rescheduleRuns, m.bannersShown)

	return m
}

// ObserveHTTP фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveReschedule фиксирует исход попытки переноса записи
func (m *Metrics) ObserveReschedule(result string) {
	if m == nil {
		return
	}
	m.rescheduleRuns.WithLabelValues(result).Inc()
}

// ObserveBanner фиксирует показанный баннер
func (m *Metrics) ObserveBanner(kind string) {
	if m == nil {
		return
	}
	m.bannersShown.WithLabelValues(kind).Inc()
}
