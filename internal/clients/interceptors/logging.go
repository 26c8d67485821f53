package interceptors

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/LaKensak/fronten/pkg/log"
)

// ClientLogging — логирование исходящих вызовов API.
// Поведение:
//   - берёт X-Request-Id из заголовков (или генерирует новый и добавляет);
//   - добавляет поля method/path/host, прокладывает обогащённый логгер в контекст (pkg/log);
//   - пишет одну финальную запись уровня Info: msg="upstream", status, dur.
//
// Безопасность: не логирует тело запроса и заголовок Authorization.
func ClientLogging(base *slog.Logger) Transport {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			rid := r.Header.Get("X-Request-Id")
			if rid == "" {
				rid = uuid.NewString()
				r = r.Clone(r.Context())
				r.Header.Set("X-Request-Id", rid)
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("host", r.URL.Host),
			)
			r = r.WithContext(log.Into(r.Context(), l))

			resp, err := next.RoundTrip(r)

			status := 0
			if resp != nil {
				status = resp.StatusCode
			}

			if err != nil {
				l.Warn("upstream",
					slog.Int("status", status),
					slog.Duration("dur", time.Since(start)),
					slog.String("err", err.Error()),
				)
				return resp, err
			}

			l.Info("upstream",
				slog.Int("status", status),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
