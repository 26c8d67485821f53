package interceptors

import (
	"context"
	"net/http"
)

type CtxKey string

const (
	CtxRequestID CtxKey = "request_id"
	CtxAuthToken CtxKey = "auth_token"
)

// WithAuthToken кладёт bearer-токен для следующего исходящего вызова.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CtxAuthToken, token)
}

// ClientWithMetadata — добавляет в исходящий запрос заголовки:
//   - X-Request-Id (если есть в контексте),
//   - Authorization: Bearer <token> (если есть в контексте),
//   - User-Agent (если передан параметром).
//
// Исходный *http.Request не модифицируется.
func ClientWithMetadata(userAgent string) Transport {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			ctx := r.Context()

			rid, _ := ctx.Value(CtxRequestID).(string)
			tok, _ := ctx.Value(CtxAuthToken).(string)

			if rid == "" && tok == "" && userAgent == "" {
				return next.RoundTrip(r)
			}

			r = r.Clone(ctx)
			if rid != "" {
				r.Header.Set("X-Request-Id", rid)
			}
			if tok != "" {
				r.Header.Set("Authorization", "Bearer "+tok)
			}
			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}
