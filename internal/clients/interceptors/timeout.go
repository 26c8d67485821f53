package interceptors

import (
	"context"
	"io"
	"net/http"
	"time"
)

// ClientWithTimeout ограничивает исходящий вызов таймаутом d.
//
// Контракт:
//  1. d <= 0 — запрос уходит как есть;
//  2. иначе — context.WithTimeout(ctx, d): действует более ранний из двух
//     дедлайнов (входящего запроса и d); cancel() вызывается при ошибке
//     транспорта или при закрытии тела ответа.
func ClientWithTimeout(d time.Duration) Transport {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(r *http.Request) (*http.Response, error) {
			if d <= 0 {
				return next.RoundTrip(r)
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)

			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}

			return resp, nil
		})
	}
}

// cancelBody освобождает контекст таймаута вместе с телом ответа.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()

	return err
}
