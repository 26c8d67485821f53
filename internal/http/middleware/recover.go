package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/LaKensak/fronten/internal/errors"
	logctx "github.com/LaKensak/fronten/pkg/log"
)

// Recover перехватывает panic и отвечает 500: JSON-конверт для JSON-клиентов,
// короткий текст для страниц. Детали паники не утекают на клиент.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logctx.From(r.Context()).
					LogAttrs(r.Context(), slog.LevelError, "panic",
						slog.String("path", r.URL.Path),
						slog.Any("reason", rec),
					)

				if wantsJSON(r) {
					apierrors.WriteError(w, r, fmt.Errorf("internal"))
					return
				}

				http.Error(w, apierrors.MsgInternal, http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
