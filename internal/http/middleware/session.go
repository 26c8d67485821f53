package middleware

import (
	"net/http"

	"github.com/LaKensak/fronten/internal/session"
)

// LoginEnterPath — вход через открытие login gate.
const LoginEnterPath = "/login/enter"

// Session читает cookies один раз на запрос и кладёт session.Session в контекст.
func Session(store *session.Store) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := session.Into(r.Context(), store.Load(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession уводит на вход без access token до любой логики обработчика.
func RequireSession() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.From(r.Context()).Authenticated() {
				http.Redirect(w, r, LoginEnterPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
