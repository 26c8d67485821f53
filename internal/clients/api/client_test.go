package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LaKensak/fronten/internal/clients/interceptors"
	"github.com/LaKensak/fronten/internal/models"
)

// newTestClient поднимает httptest-сервер с переданным обработчиком.
func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", "web-test", http.DefaultTransport)
	require.NoError(t, err)

	return c
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	require.Equal(t, "application/json", r.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(r.Body).Decode(v))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	t.Parallel()

	_, err := New("/api", "", nil)
	require.Error(t, err)
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login/", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))
		require.Equal(t, "web-test", r.Header.Get("User-Agent"))

		var in models.LoginRequest
		decodeBody(t, r, &in)
		require.Equal(t, "ana@example.com", in.Email)

		writeJSON(w, http.StatusOK, map[string]string{"access": "acc", "refresh": "ref"})
	})

	out, err := c.Login(context.Background(), models.LoginRequest{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "acc", out.Access)
	require.Equal(t, "ref", out.Refresh)
}

func TestLogin_APIErrorMessage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Identifiants invalides"})
	})

	_, err := c.Login(context.Background(), models.LoginRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Identifiants invalides", apiErr.Message)
	require.Equal(t, "Identifiants invalides", MessageOf(err, "fallback"))
}

func TestRegister_DetailMessage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in models.RegisterRequest
		decodeBody(t, r, &in)
		require.Equal(t, "ana", in.Username)
		require.Equal(t, in.Password, in.ConfirmPassword)

		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Nom d'utilisateur déjà pris"})
	})

	err := c.Register(context.Background(), models.RegisterRequest{Username: "ana", Password: "x", ConfirmPassword: "x"})
	require.Equal(t, "Nom d'utilisateur déjà pris", MessageOf(err, "fallback"))
}

func TestCurrentUser_SendsBearer(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, models.User{Username: "ana", Email: "ana@example.com", FirstName: "Ana", LastName: "B"})
	})

	u, err := c.CurrentUser(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Equal(t, "ana", u.Username)
	require.Equal(t, "Ana", u.FirstName)
}

func TestUpdateProfile_Patch(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/update-profile/", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var in models.UpdateProfileRequest
		decodeBody(t, r, &in)
		require.Equal(t, "new@example.com", in.Email)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.UpdateProfile(context.Background(), "tok", models.UpdateProfileRequest{Email: "new@example.com"}))
}

func TestChangePassword_OK(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in models.ChangePasswordRequest
		decodeBody(t, r, &in)
		require.Equal(t, "old", in.CurrentPassword)
		require.Equal(t, "new", in.NewPassword)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.ChangePassword(context.Background(), "tok", models.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "new"}))
}

func TestListOfferings_NoAuth(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sessions/", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[{"id":"individual","title":"Individuel","price":60,"icon":"Video","available":true}]`)
	})

	got, err := c.ListOfferings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, models.IconVideo, got[0].Icon)
}

func TestListOfferings_BadJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})

	_, err := c.ListOfferings(context.Background())
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestCheckAvailability_QueryAndMissingFlag(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/check_availability", r.URL.Path)
		require.Equal(t, "2025-03-05T10:00", r.URL.Query().Get("rdv"))
		_, _ = io.WriteString(w, `{}`)
	})

	got, err := c.CheckAvailability(context.Background(), "2025-03-05T10:00")
	require.NoError(t, err)
	require.False(t, got.Available)
}

func TestCreateReservation_APIMessage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var in models.ReservationRequest
		decodeBody(t, r, &in)
		require.Equal(t, "individual", in.SessionID)
		require.Equal(t, "2025-03-05T10:00", in.Rdv)

		writeJSON(w, http.StatusConflict, map[string]string{"message": "Créneau déjà pris"})
	})

	err := c.CreateReservation(context.Background(), "tok", models.ReservationRequest{SessionID: "individual", Rdv: "2025-03-05T10:00"})
	require.Equal(t, "Créneau déjà pris", MessageOf(err, "fallback"))
}

func TestListReservations_Query(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "42", r.URL.Query().Get("user_id"))
		require.Equal(t, "individual", r.URL.Query().Get("session_id"))
		writeJSON(w, http.StatusOK, []models.Reservation{{FirstName: "Ana", Phone: "0612345678"}})
	})

	got, err := c.ListReservations(context.Background(), "tok", "42", "individual")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Ana", got[0].FirstName)
}

func TestListPayments_Envelope(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"payments":[{"id":1,"date":"2025-03-05","amount":80,"status":"succeeded","reference":"pi_1"}]}`)
	})

	got, err := c.ListPayments(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, models.FlexID("1"), got[0].ID)
	require.Equal(t, "pi_1", got[0].Reference)
}

func TestValidatePromo_BodyOnErrorStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"valid": false, "message": "Code expiré"})
	})

	got, err := c.ValidatePromo(context.Background(), "tok", models.PromoRequest{Code: "OLD"})
	require.NoError(t, err)
	require.False(t, got.Valid)
	require.Equal(t, "Code expiré", got.Message)
}

func TestCreatePaymentIntent_IdempotencyKeyAndError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "draft-1:8000", r.Header.Get("Idempotency-Key"))
		require.Empty(t, r.Header.Get("Authorization"))

		var in models.PaymentIntentRequest
		decodeBody(t, r, &in)
		require.Equal(t, int64(8000), in.Amount)
		require.Equal(t, "eur", in.Currency)

		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Montant invalide"})
	})

	got, err := c.CreatePaymentIntent(context.Background(), models.PaymentIntentRequest{Amount: 8000, Currency: "eur", SessionID: "s"}, "draft-1:8000")
	require.NoError(t, err)
	require.Equal(t, "Montant invalide", got.Error)
	require.Empty(t, got.ClientSecret)
}

func TestConfirmPayment_OK(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in models.ConfirmPaymentRequest
		decodeBody(t, r, &in)
		require.Equal(t, "pi_123", in.PaymentIntentID)
		writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	})

	got, err := c.ConfirmPayment(context.Background(), models.ConfirmPaymentRequest{PaymentIntentID: "pi_123", SessionID: "s"})
	require.NoError(t, err)
	require.Equal(t, "success", got.Status)
}

func TestTransportFailure_Unavailable(t *testing.T) {
	t.Parallel()

	rt := interceptors.RoundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	c, err := New("http://api.invalid", "", rt)
	require.NoError(t, err)

	_, err = c.ListOfferings(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, "fallback", MessageOf(err, "fallback"))
}

func TestTimeout_Unavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "", interceptors.Chain(http.DefaultTransport, interceptors.ClientWithTimeout(30*time.Millisecond)))
	require.NoError(t, err)

	_, err = c.CheckAvailability(context.Background(), "2025-03-05T10:00")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
