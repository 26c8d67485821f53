package interceptors

import (
	"net/http"
	"time"
)

// Observer получает итог каждого исходящего вызова; status == 0 — транспортная ошибка.
type Observer func(method, path string, status int, dur time.Duration)

// ClientWithMetrics сообщает obs об исходе вызова. nil obs — пропуск.
func ClientWithMetrics(obs Observer) Transport {
	return func(next http.RoundTripper) http.RoundTripper {
		if obs == nil {
			return next
		}

		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(r)

			status := 0
			if err == nil && resp != nil {
				status = resp.StatusCode
			}
			obs(r.Method, r.URL.Path, status, time.Since(start))

			return resp, err
		})
	}
}
