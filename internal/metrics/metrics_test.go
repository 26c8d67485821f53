package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveHTTP(http.MethodGet, "/payment", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "/payment", http.StatusOK, 20*time.Millisecond)
	m.ObserveUpstream(http.MethodPost, "/api/login/", 0, time.Millisecond)
	m.PaymentOutcome(PaymentSucceeded)

	require.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/payment", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.upstreamCalls.WithLabelValues("POST", "/api/login/", "0")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.payments.WithLabelValues(PaymentSucceeded)))

	n, err := testutil.GatherAndCount(reg, "web_http_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveHTTP("GET", "/", 200, time.Millisecond)
		m.ObserveUpstream("GET", "/api/sessions/", 200, time.Millisecond)
		m.PaymentOutcome(PaymentNotReady)
	})
}
