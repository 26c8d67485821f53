package middleware

import (
	"net/http"
	"time"

	"github.com/LaKensak/fronten/internal/metrics"
)

// Metrics сообщает в Prometheus о каждом запросе. Лейбл route — шаблон chi,
// а не сырой путь; запросы без совпавшего маршрута идут под "unmatched".
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := routePattern(r)
			if route == "" {
				route = "unmatched"
			}

			m.ObserveHTTP(r.Method, route, sw.Status(), time.Since(start))
		})
	}
}
