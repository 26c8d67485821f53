package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	logctx "github.com/LaKensak/fronten/pkg/log"
)

// ErrCSRFKeyLength — ключ CSRF должен быть ровно 32 байта.
var ErrCSRFKeyLength = errors.New("csrf key must be 32 bytes")

// MsgCSRFFailed — форма устарела или отправлена не со страницы сайта.
const MsgCSRFFailed = "La session du formulaire a expiré. Veuillez recharger la page."

// CSRF защищает формы токеном gorilla/csrf (скрытое поле gorilla.csrf.Token).
// insecure — сайт обслуживается по HTTP (локальная разработка): cookie без Secure,
// запросы помечаются как plaintext, чтобы не требовать Referer как для HTTPS.
func CSRF(key []byte, insecure bool) (Middleware, error) {
	if len(key) != 32 {
		return nil, ErrCSRFKeyLength
	}

	protect := csrf.Protect(key,
		csrf.Secure(!insecure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailed)),
	)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		if !insecure {
			return h
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}, nil
}

func csrfFailed(w http.ResponseWriter, r *http.Request) {
	logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelWarn, "csrf_rejected",
		slog.String("path", r.URL.Path),
		slog.Any("reason", csrf.FailureReason(r)),
	)

	http.Error(w, MsgCSRFFailed, http.StatusForbidden)
}
