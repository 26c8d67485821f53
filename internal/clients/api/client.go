// api — клиент удалённого REST API бронирования (JSON, Bearer там, где требуется).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/LaKensak/fronten/internal/clients/interceptors"
	"github.com/LaKensak/fronten/internal/models"
)

// maxBody — предел читаемого тела ответа.
const maxBody = 1 << 20

type Client struct {
	base *url.URL
	http *http.Client
}

// New создаёт клиента. rt — уже собранная цепочка транспорта (timeout/logging/metrics);
// поверх неё всегда ставится ClientWithMetadata, который переносит
// request id и bearer-токен из контекста в заголовки.
func New(baseURL, userAgent string, rt http.RoundTripper) (*Client, error) {
	const op = "internal/clients/api/New"

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: base url %q must be absolute", op, baseURL)
	}

	return &Client{
		base: u,
		http: &http.Client{Transport: interceptors.Chain(rt, interceptors.ClientWithMetadata(userAgent))},
	}, nil
}

// call описывает один вызов API.
type call struct {
	method string
	path   string
	query  url.Values
	token  string // пусто — без Authorization
	header http.Header
	in     any
	out    any
	// bodyAlways — тело ответа несёт результат при любом статусе
	// (promo, payment intent, confirm, availability).
	bodyAlways bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	u := *c.base
	u.Path = c.base.Path + cl.path
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	if cl.in != nil {
		buf, err := json.Marshal(cl.in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	if cl.token != "" {
		ctx = interceptors.WithAuthToken(ctx, cl.token)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if cl.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range cl.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if !ok {
		var env errorEnvelope
		_ = json.Unmarshal(raw, &env)

		if cl.bodyAlways && cl.out != nil && json.Unmarshal(raw, cl.out) == nil {
			return nil
		}

		return &APIError{Status: resp.StatusCode, Message: env.text()}
	}

	if cl.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		if cl.out != nil && cl.bodyAlways {
			return fmt.Errorf("%w: empty body", ErrBadResponse)
		}
		return nil
	}

	if err := json.Unmarshal(raw, cl.out); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}

	return nil
}

// Login — POST /api/login/.
func (c *Client) Login(ctx context.Context, in models.LoginRequest) (models.LoginResponse, error) {
	const op = "internal/clients/api/Login"

	var out models.LoginResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/login/", in: in, out: &out}); err != nil {
		return models.LoginResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	if out.Access == "" {
		return models.LoginResponse{}, fmt.Errorf("%s: %w: empty access token", op, ErrBadResponse)
	}

	return out, nil
}

// Register — POST /api/register/.
func (c *Client) Register(ctx context.Context, in models.RegisterRequest) error {
	const op = "internal/clients/api/Register"

	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/register/", in: in}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// CurrentUser — GET /api/user/ (bearer).
func (c *Client) CurrentUser(ctx context.Context, token string) (models.User, error) {
	const op = "internal/clients/api/CurrentUser"

	var out models.User
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/user/", token: token, out: &out}); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateProfile — PATCH /api/update-profile/ (bearer).
func (c *Client) UpdateProfile(ctx context.Context, token string, in models.UpdateProfileRequest) error {
	const op = "internal/clients/api/UpdateProfile"

	if err := c.do(ctx, call{method: http.MethodPatch, path: "/api/update-profile/", token: token, in: in}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ChangePassword — POST /api/change-password/ (bearer).
func (c *Client) ChangePassword(ctx context.Context, token string, in models.ChangePasswordRequest) error {
	const op = "internal/clients/api/ChangePassword"

	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/change-password/", token: token, in: in}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListOfferings — GET /api/sessions/.
func (c *Client) ListOfferings(ctx context.Context) ([]models.Offering, error) {
	const op = "internal/clients/api/ListOfferings"

	var out []models.Offering
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/sessions/", out: &out}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CheckAvailability — GET /api/check_availability?rdv=.
// Отсутствующий флаг available трактуется как «занято».
func (c *Client) CheckAvailability(ctx context.Context, rdv string) (models.Availability, error) {
	const op = "internal/clients/api/CheckAvailability"

	var out models.Availability
	err := c.do(ctx, call{
		method:     http.MethodGet,
		path:       "/api/check_availability",
		query:      url.Values{"rdv": {rdv}},
		out:        &out,
		bodyAlways: true,
	})
	if err != nil {
		return models.Availability{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CreateReservation — POST /api/reservations/ (bearer).
func (c *Client) CreateReservation(ctx context.Context, token string, in models.ReservationRequest) error {
	const op = "internal/clients/api/CreateReservation"

	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/reservations/", token: token, in: in}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListReservations — GET /api/reservations/?user_id=&session_id= (bearer).
func (c *Client) ListReservations(ctx context.Context, token, userID, sessionID string) ([]models.Reservation, error) {
	const op = "internal/clients/api/ListReservations"

	var out []models.Reservation
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/reservations/",
		query:  url.Values{"user_id": {userID}, "session_id": {sessionID}},
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ListPayments — GET /api/payments/ (bearer).
func (c *Client) ListPayments(ctx context.Context, token string) ([]models.Payment, error) {
	const op = "internal/clients/api/ListPayments"

	var out models.PaymentsResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/payments/", token: token, out: &out}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.Payments, nil
}

// ValidatePromo — POST /api/validate-promo/ (bearer).
func (c *Client) ValidatePromo(ctx context.Context, token string, in models.PromoRequest) (models.PromoResponse, error) {
	const op = "internal/clients/api/ValidatePromo"

	var out models.PromoResponse
	err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/api/validate-promo/",
		token:      token,
		in:         in,
		out:        &out,
		bodyAlways: true,
	})
	if err != nil {
		return models.PromoResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CreatePaymentIntent — POST /api/create-payment-intent/.
// idemKey уходит в заголовок Idempotency-Key (бэкенд может его игнорировать); пустой ключ не отправляется.
func (c *Client) CreatePaymentIntent(ctx context.Context, in models.PaymentIntentRequest, idemKey string) (models.PaymentIntentResponse, error) {
	const op = "internal/clients/api/CreatePaymentIntent"

	var h http.Header
	if idemKey != "" {
		h = http.Header{"Idempotency-Key": {idemKey}}
	}

	var out models.PaymentIntentResponse
	err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/api/create-payment-intent/",
		header:     h,
		in:         in,
		out:        &out,
		bodyAlways: true,
	})
	if err != nil {
		return models.PaymentIntentResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ConfirmPayment — POST /api/confirm-payment/.
func (c *Client) ConfirmPayment(ctx context.Context, in models.ConfirmPaymentRequest) (models.ConfirmPaymentResponse, error) {
	const op = "internal/clients/api/ConfirmPayment"

	var out models.ConfirmPaymentResponse
	err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/api/confirm-payment/",
		in:         in,
		out:        &out,
		bodyAlways: true,
	})
	if err != nil {
		return models.ConfirmPaymentResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
