package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/LaKensak/fronten/internal/clients/interceptors"
	"github.com/LaKensak/fronten/internal/metrics"
	"github.com/LaKensak/fronten/internal/session"
)

// capHandler — тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs из каждой записи в map[string]any;
//   - не создаёт реальных I/O.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)

	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()
	return req
}

type errEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-begin")
				next.ServeHTTP(w, r)
				order = append(order, name+"-end")
			})
		}
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	Chain(final, mk("m1"), mk("m2")).ServeHTTP(rr, makeReq(http.MethodGet, "/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	var seenID, seenCtxID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = r.Header.Get("X-Request-Id")
		seenCtxID, _ = r.Context().Value(interceptors.CtxRequestID).(string)
	})

	rr := httptest.NewRecorder()
	Chain(h, RequestID()).ServeHTTP(rr, makeReq(http.MethodGet, "/rid"))

	respID := rr.Header().Get("X-Request-Id")
	require.Len(t, respID, 32) // 16 байт -> 32 hex-символа
	require.Equal(t, respID, seenID)
	require.Equal(t, respID, seenCtxID)
}

func TestRequestID_UseExisting_RejectOversized(t *testing.T) {
	rr := httptest.NewRecorder()
	req := makeReq(http.MethodGet, "/rid")
	req.Header.Set("X-Request-Id", "abc123-existing-id")
	Chain(http.NotFoundHandler(), RequestID()).ServeHTTP(rr, req)
	require.Equal(t, "abc123-existing-id", rr.Header().Get("X-Request-Id"))

	rr = httptest.NewRecorder()
	req = makeReq(http.MethodGet, "/rid")
	req.Header.Set("X-Request-Id", strings.Repeat("x", 500))
	Chain(http.NotFoundHandler(), RequestID()).ServeHTTP(rr, req)
	require.Len(t, rr.Header().Get("X-Request-Id"), 32)
}

func TestTimeout_SetsDeadline_WhenAbsent(t *testing.T) {
	var hasDeadline bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	})

	Chain(h, Timeout(50*time.Millisecond)).ServeHTTP(httptest.NewRecorder(), makeReq(http.MethodGet, "/t"))
	require.True(t, hasDeadline)
}

func TestTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	var childDL time.Time

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		childDL, _ = r.Context().Deadline()
	})

	parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	Chain(h, Timeout(time.Second)).ServeHTTP(httptest.NewRecorder(), makeReq(http.MethodGet, "/t").WithContext(parent))

	parentDL, _ := parent.Deadline()
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestRecover_JSONAndPage(t *testing.T) {
	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })

	rr := httptest.NewRecorder()
	req := makeReq(http.MethodGet, "/reservation/availability")
	req.Header.Set("Accept", "application/json")
	Chain(boom, Recover()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "internal", env.Error.Code)

	rr = httptest.NewRecorder()
	Chain(boom, Recover()).ServeHTTP(rr, makeReq(http.MethodGet, "/"))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

func TestLogging_WritesRecord_WithRouteStatusBytesAndRequestID(t *testing.T) {
	h := &capHandler{}

	r := chi.NewRouter()
	r.Use(RequestID(), Logging(slog.New(h)))
	r.Get("/dashboard/{section}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	})

	req := makeReq(http.MethodGet, "/dashboard/payments")
	req.Header.Set("X-Request-Id", "rid-456")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, h.count)
	require.Equal(t, "http", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)
	require.Equal(t, "/dashboard/payments", h.attrs["path"])
	require.Equal(t, "/dashboard/{section}", h.attrs["route"])
	require.EqualValues(t, http.StatusOK, h.attrs["status"])
	require.EqualValues(t, 10, h.attrs["bytes"])
	require.Equal(t, "rid-456", h.attrs["request_id"])
}

func TestStatusWriter_DefaultsAndFirstStatusWins(t *testing.T) {
	sw := newStatusWriter(httptest.NewRecorder())
	require.Equal(t, http.StatusOK, sw.Status())

	_, _ = sw.Write([]byte("abcd"))
	sw.WriteHeader(http.StatusTeapot) // после Write статус уже зафиксирован
	require.Equal(t, http.StatusOK, sw.Status())
	require.Equal(t, 4, sw.count)

	require.Same(t, sw, newStatusWriter(sw))
}

func TestSession_LoadsOnceAndRequireSessionRedirects(t *testing.T) {
	store := session.NewStore(session.Options{})

	var seen session.Session
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = session.From(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Chain(final, Session(store), RequireSession())

	// Без cookie — редирект на вход, обработчик не вызывается.
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, makeReq(http.MethodGet, "/dashboard"))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, LoginEnterPath, rr.Header().Get("Location"))
	require.False(t, seen.Authenticated())

	rr = httptest.NewRecorder()
	req := makeReq(http.MethodGet, "/dashboard")
	req.AddCookie(&http.Cookie{Name: session.CookieAccess, Value: "tok"})
	req.AddCookie(&http.Cookie{Name: session.CookieUsername, Value: "marie"})
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "tok", seen.AccessToken())
	require.Equal(t, "Marie", seen.DisplayName())
}

func TestRateLimit_PostOnlyPerIP(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := Chain(ok, RateLimit(0.001, 2))

	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, makeReq(http.MethodGet, "/"))
		require.Equal(t, http.StatusOK, rr.Code, "GET is never limited")
	}

	codes := []int{}
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, makeReq(http.MethodPost, "/login"))
		codes = append(codes, rr.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Другой IP — свой лимит.
	rr := httptest.NewRecorder()
	req := makeReq(http.MethodPost, "/login")
	req.RemoteAddr = "10.0.0.2:5555"
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestLimiter_EvictsIdleVisitors(t *testing.T) {
	now := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	lim := NewLimiter(1, 1)
	lim.now = func() time.Time { return now }

	require.True(t, lim.Allow("1.1.1.1"))
	require.Len(t, lim.visitors, 1)

	now = now.Add(2 * limiterIdleTTL)
	require.True(t, lim.Allow("2.2.2.2"))
	require.Len(t, lim.visitors, 1)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/dashboard/{section}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), makeReq(http.MethodGet, "/dashboard/payments"))
	r.ServeHTTP(httptest.NewRecorder(), makeReq(http.MethodGet, "/dashboard/settings"))

	n, err := testutil.GatherAndCount(reg, "web_http_requests_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestCSRF_KeyLengthAndRejectsPostWithoutToken(t *testing.T) {
	_, err := CSRF([]byte("short"), true)
	require.ErrorIs(t, err, ErrCSRFKeyLength)

	mw, err := CSRF([]byte(strings.Repeat("k", 32)), true)
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := Chain(ok, mw)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, makeReq(http.MethodGet, "/login"))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, makeReq(http.MethodPost, "/login"))
	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Contains(t, rr.Body.String(), MsgCSRFFailed)
}
