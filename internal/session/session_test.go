package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// roundTrip переносит Set-Cookie ответа в новый запрос.
func roundTrip(rr *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(c)
	}
	return req
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	st := NewStore(Options{Secure: true, AccessTTL: time.Hour, RefreshTTL: 48 * time.Hour})

	rr := httptest.NewRecorder()
	st.Save(rr, Credentials{AccessToken: "acc", RefreshToken: "ref", Username: "élodie m"})

	byName := map[string]*http.Cookie{}
	for _, c := range rr.Result().Cookies() {
		byName[c.Name] = c
	}
	require.Len(t, byName, 3)
	require.Equal(t, 3600, byName[CookieAccess].MaxAge)
	require.Equal(t, 48*3600, byName[CookieRefresh].MaxAge)
	require.Equal(t, 3600, byName[CookieUsername].MaxAge)
	for _, c := range byName {
		require.True(t, c.Secure)
		require.True(t, c.HttpOnly)
		require.Equal(t, http.SameSiteStrictMode, c.SameSite)
		require.Equal(t, "/", c.Path)
	}

	s := st.Load(roundTrip(rr))
	require.True(t, s.Authenticated())
	require.Equal(t, "acc", s.AccessToken())
	require.Equal(t, "ref", s.RefreshToken())
	require.Equal(t, "élodie m", s.Username())
	require.Equal(t, "Élodie m", s.DisplayName())
	require.False(t, s.LoginGateOpen())
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	st := NewStore(Options{})
	rr := httptest.NewRecorder()
	st.Clear(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 3)
	for _, c := range cookies {
		require.Less(t, c.MaxAge, 0, c.Name)
		require.Empty(t, c.Value)
	}

	require.False(t, st.Load(roundTrip(rr)).Authenticated())
}

func TestStore_LoginGate(t *testing.T) {
	t.Parallel()

	st := NewStore(Options{})
	rr := httptest.NewRecorder()
	st.OpenLoginGate(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, CookieLoginGate, cookies[0].Name)
	require.Zero(t, cookies[0].MaxAge, "browser-session cookie")

	s := st.Load(roundTrip(rr))
	require.True(t, s.LoginGateOpen())
	require.False(t, s.Authenticated())
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", DisplayName(""))
	require.Equal(t, "Marie", DisplayName("mARIE"))
	require.Equal(t, "A", DisplayName("a"))
}

func TestContext(t *testing.T) {
	t.Parallel()

	require.False(t, From(context.Background()).Authenticated())

	ctx := Into(context.Background(), Session{accessToken: "x", username: "bob"})
	require.Equal(t, "Bob", From(ctx).DisplayName())
}

func TestUserID(t *testing.T) {
	t.Parallel()

	sign := func(claims jwt.MapClaims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("whatever"))
		require.NoError(t, err)
		return tok
	}

	id, err := UserID(sign(jwt.MapClaims{"user_id": float64(42)}))
	require.NoError(t, err)
	require.Equal(t, "42", id)

	id, err = UserID(sign(jwt.MapClaims{"user_id": "7f1c"}))
	require.NoError(t, err)
	require.Equal(t, "7f1c", id)

	_, err = UserID(sign(jwt.MapClaims{"sub": "x"}))
	require.ErrorIs(t, err, ErrNoUserID)

	_, err = UserID("not-a-jwt")
	require.Error(t, err)
}
