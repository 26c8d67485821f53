// interceptors предоставляет цепочку http.RoundTripper для исходящих вызовов REST API.
package interceptors

import "net/http"

// Transport — обёртка над http.RoundTripper.
type Transport func(http.RoundTripper) http.RoundTripper

// RoundTripFunc — адаптер функции к http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain оборачивает base в порядке перечисления: первый Transport — внешний.
func Chain(base http.RoundTripper, ts ...Transport) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	for i := len(ts) - 1; i >= 0; i-- {
		base = ts[i](base)
	}

	return base
}
