package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	apierrors "github.com/LaKensak/fronten/internal/errors"
	"github.com/LaKensak/fronten/internal/http/views"
	"github.com/LaKensak/fronten/internal/service"
	"github.com/LaKensak/fronten/internal/session"
	logctx "github.com/LaKensak/fronten/pkg/log"
)

// Задержки перед автоматическим переходом.
const (
	loginRedirectDelay       = 3 * time.Second
	registerRedirectDelay    = 3 * time.Second
	reservationRedirectDelay = 1500 * time.Millisecond
	authNoticeDelay          = 2500 * time.Millisecond
)

const loginEnterPath = "/login/enter"

// Handlers агрегирует зависимости страниц.
type Handlers struct {
	svc            *service.Service
	sessions       *session.Store
	views          *views.Renderer
	publishableKey string
}

func New(svc *service.Service, sessions *session.Store, v *views.Renderer, publishableKey string) *Handlers {
	return &Handlers{
		svc:            svc,
		sessions:       sessions,
		views:          v,
		publishableKey: publishableKey,
	}
}

// page — общие данные layout: сессия запроса и скрытое поле CSRF (пусто без CSRF-мидлвара).
func (h *Handlers) page(r *http.Request, title string, data any) views.Page {
	return views.Page{
		Title:   title,
		Session: session.From(r.Context()),
		CSRF:    csrf.TemplateField(r),
		Data:    data,
	}
}

// render пишет страницу; ошибка шаблона — 500 без деталей.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, p views.Page) {
	if err := h.views.Render(w, status, name, p); err != nil {
		logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "render_failed",
			slog.String("page", name),
			slog.String("err", err.Error()),
		)
		http.Error(w, apierrors.MsgInternal, http.StatusInternalServerError)
	}
}

// statusOf — HTTP-статус для страницы, отрисованной с ошибкой err.
func statusOf(err error) int {
	status, _ := apierrors.ToHTTP(err)
	return status
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func redirectTo(after time.Duration, url string) *views.Redirect {
	return &views.Redirect{After: after, URL: url}
}

// parseForm — разбор формы; битое тело — 400.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	return true
}

// token — access token запроса (маршруты под RequireSession).
func token(r *http.Request) string {
	return session.From(r.Context()).AccessToken()
}
