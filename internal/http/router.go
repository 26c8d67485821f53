package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/LaKensak/fronten/internal/http/handlers"
	"github.com/LaKensak/fronten/internal/http/middleware"
	"github.com/LaKensak/fronten/internal/metrics"
	"github.com/LaKensak/fronten/internal/session"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	Metrics  *metrics.Metrics
	Sessions *session.Store
	// CSRF — nil отключает защиту форм (нет ключа в конфигурации).
	CSRF           middleware.Middleware
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/маршрутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics),
		middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst), // только изменяющие запросы
		middleware.Session(opts.Sessions),
	)
	if opts.CSRF != nil {
		root.Use(opts.CSRF)
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	registerRoutes(root, h)

	return root
}

// registerRoutes — единая точка регистрации всех страниц.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// public
	r.Get("/", h.Home)
	r.Get("/confirmation", h.Confirmation)
	r.Get("/login/enter", h.LoginEnter)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)

	// protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession())

		r.Get("/reservation", h.ReservationForm)
		r.Post("/reservation", h.Reserve)
		r.Get("/reservation/availability", h.Availability)

		r.Get("/payment", h.PaymentForm)
		r.Post("/payment", h.Pay)
		r.Post("/payment/promo", h.ApplyPromo)

		r.Get("/dashboard", h.Dashboard)
		r.Post("/dashboard/settings/profile", h.UpdateProfile)
		r.Post("/dashboard/settings/password", h.ChangePassword)
	})
}
