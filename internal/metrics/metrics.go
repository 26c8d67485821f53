// metrics — Prometheus-метрики веб-фронта: входящие запросы, вызовы API, исходы оплат.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы оплаты.
const (
	PaymentSucceeded       = "succeeded"
	PaymentIntentFailed    = "intent_failed"
	PaymentProcessorFailed = "processor_failed"
	PaymentConfirmFailed   = "confirm_failed"
	PaymentNotReady        = "not_ready"
)

type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	payments         *prometheus.CounterVec
}

// New регистрирует метрики в reg (nil — prometheus.DefaultRegisterer).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "web",
			Name:      "http_requests_total",
			Help:      "Incoming HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "web",
			Name:      "http_request_duration_seconds",
			Help:      "Incoming HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "web",
			Name:      "upstream_calls_total",
			Help:      "Calls to the booking API by path and status (0 = transport error).",
		}, []string{"method", "path", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "web",
			Name:      "upstream_call_duration_seconds",
			Help:      "Booking API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "web",
			Name:      "payments_total",
			Help:      "Payment submissions by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.httpRequests, m.httpDuration, m.upstreamCalls, m.upstreamDuration, m.payments)

	return m
}

// ObserveHTTP — route — шаблон маршрута chi, а не сырой путь.
func (m *Metrics) ObserveHTTP(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

// ObserveUpstream совместим с interceptors.Observer.
func (m *Metrics) ObserveUpstream(method, path string, status int, dur time.Duration) {
	if m == nil {
		return
	}

	m.upstreamCalls.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.upstreamDuration.WithLabelValues(method, path).Observe(dur.Seconds())
}

func (m *Metrics) PaymentOutcome(outcome string) {
	if m == nil {
		return
	}

	m.payments.WithLabelValues(outcome).Inc()
}
