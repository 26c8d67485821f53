// stripe — адаптер платёжного процессора: подтверждение карточного платежа по client secret.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// DeclineError — отказ процессора; Message показывается пользователю как есть.
type DeclineError struct {
	Message string
}

func (e *DeclineError) Error() string { return "payment declined: " + e.Message }

// ProcessorMessage — текст отказа для пользователя.
func (e *DeclineError) ProcessorMessage() string { return e.Message }

// ErrMalformedSecret — client secret не содержит идентификатора payment intent.
var ErrMalformedSecret = errors.New("malformed client secret")

type Processor struct {
	api            *client.API
	publishableKey string
}

// New создаёт процессор. Пустой secretKey — процессор не готов (Ready() == false).
// backends == nil — боевые эндпоинты Stripe.
func New(secretKey, publishableKey string, backends *stripego.Backends) *Processor {
	p := &Processor{publishableKey: publishableKey}
	if secretKey != "" {
		p.api = client.New(secretKey, backends)
	}

	return p
}

func (p *Processor) Ready() bool { return p != nil && p.api != nil }

func (p *Processor) PublishableKey() string { return p.publishableKey }

// IntentID извлекает идентификатор payment intent из client secret вида pi_xxx_secret_yyy.
func IntentID(clientSecret string) (string, error) {
	id, _, ok := strings.Cut(clientSecret, "_secret_")
	if !ok || !strings.HasPrefix(id, "pi_") {
		return "", ErrMalformedSecret
	}

	return id, nil
}

// ConfirmCardPayment подтверждает payment intent методом оплаты paymentMethod
// и возвращает идентификатор intent при статусе succeeded.
func (p *Processor) ConfirmCardPayment(ctx context.Context, clientSecret, paymentMethod string) (string, error) {
	const op = "internal/clients/stripe/ConfirmCardPayment"

	if !p.Ready() {
		return "", fmt.Errorf("%s: processor not configured", op)
	}

	id, err := IntentID(clientSecret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	params := &stripego.PaymentIntentConfirmParams{
		PaymentMethod: stripego.String(paymentMethod),
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Confirm(id, params)
	if err != nil {
		var serr *stripego.Error
		if errors.As(err, &serr) {
			return "", fmt.Errorf("%s: %w", op, &DeclineError{Message: serr.Msg})
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if pi.Status != stripego.PaymentIntentStatusSucceeded {
		return "", fmt.Errorf("%s: %w", op, &DeclineError{Message: ""})
	}

	return pi.ID, nil
}
