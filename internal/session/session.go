// session — единственная точка чтения/записи cookies сессии.
// Сессия читается один раз на запрос (middleware) и передаётся через context.
package session

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	CookieAccess    = "accessToken"
	CookieRefresh   = "refreshToken"
	CookieUsername  = "username"
	CookieLoginGate = "canAccessLogin"
)

// Session — снимок cookies сессии на момент запроса.
type Session struct {
	accessToken  string
	refreshToken string
	username     string
	loginGate    bool
}

// Credentials — то, что записывается после успешного входа.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Username     string
}

func (s Session) AccessToken() string  { return s.accessToken }
func (s Session) RefreshToken() string { return s.refreshToken }
func (s Session) Username() string     { return s.username }

// Authenticated — есть непустой access token.
func (s Session) Authenticated() bool { return s.accessToken != "" }

// LoginGateOpen — пользователь пришёл на /login через явную навигацию.
func (s Session) LoginGateOpen() bool { return s.loginGate }

// DisplayName — имя пользователя: первая буква заглавная, остальные строчные.
func (s Session) DisplayName() string {
	return DisplayName(s.username)
}

func DisplayName(name string) string {
	if name == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}

type Options struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type Store struct {
	opts Options
}

func NewStore(opts Options) *Store {
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = 24 * time.Hour
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = 7 * 24 * time.Hour
	}

	return &Store{opts: opts}
}

// Load собирает Session из cookies запроса.
func (st *Store) Load(r *http.Request) Session {
	var s Session

	if c, err := r.Cookie(CookieAccess); err == nil {
		s.accessToken = c.Value
	}
	if c, err := r.Cookie(CookieRefresh); err == nil {
		s.refreshToken = c.Value
	}
	if c, err := r.Cookie(CookieUsername); err == nil {
		if v, err := url.PathUnescape(c.Value); err == nil {
			s.username = v
		}
	}
	if c, err := r.Cookie(CookieLoginGate); err == nil && c.Value == "1" {
		s.loginGate = true
	}

	return s
}

// Save записывает все три cookie сессии.
func (st *Store) Save(w http.ResponseWriter, c Credentials) {
	st.set(w, CookieAccess, c.AccessToken, st.opts.AccessTTL)
	st.set(w, CookieRefresh, c.RefreshToken, st.opts.RefreshTTL)
	st.set(w, CookieUsername, url.PathEscape(c.Username), st.opts.AccessTTL)
}

// Clear удаляет cookies сессии.
func (st *Store) Clear(w http.ResponseWriter) {
	for _, name := range []string{CookieAccess, CookieRefresh, CookieUsername} {
		http.SetCookie(w, st.cookie(name, "", -1))
	}
}

// OpenLoginGate ставит cookie без срока жизни (живёт до закрытия браузера).
func (st *Store) OpenLoginGate(w http.ResponseWriter) {
	http.SetCookie(w, st.cookie(CookieLoginGate, "1", 0))
}

func (st *Store) set(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, st.cookie(name, value, int(ttl/time.Second)))
}

func (st *Store) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   st.opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

type ctxKey struct{}

func Into(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From — сессия запроса; пустая Session, если middleware не отработал.
func From(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}
