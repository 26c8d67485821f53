package models

import (
	"math"
	"time"
)

type PromoRequest struct {
	Code        string `json:"code"`
	SessionType string `json:"sessionType"`
	SessionID   string `json:"sessionId"`
}

type PromoResponse struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

type PaymentIntentRequest struct {
	Amount    int64  `json:"amount"` // минимальные единицы валюты
	Currency  string `json:"currency"`
	SessionID string `json:"session_id"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	Error        string `json:"error"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	SessionID       string `json:"session_id"`
}

type ConfirmPaymentResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Payment struct {
	ID        FlexID  `json:"id"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Reference string  `json:"reference"`
}

type PaymentsResponse struct {
	Payments []Payment `json:"payments"`
}

// PaymentDraft — состояние страницы оплаты между запросами.
// Живёт только пока открыта страница оплаты, удаляется после успеха.
type PaymentDraft struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	Title         string    `json:"title"`
	Type          string    `json:"type"`
	Duration      string    `json:"duration"`
	OriginalPrice float64   `json:"original_price"`
	Discount      float64   `json:"discount"` // [0,1)
	CreatedAt     time.Time `json:"created_at"`
}

func (d PaymentDraft) FinalPrice() float64 {
	return d.OriginalPrice * (1 - d.Discount)
}

// AmountMinor — итоговая сумма в центах.
func (d PaymentDraft) AmountMinor() int64 {
	return int64(math.Round(d.FinalPrice() * 100))
}

func (d PaymentDraft) Ref() OfferingRef {
	return OfferingRef{
		SessionID: d.SessionID,
		Title:     d.Title,
		Type:      d.Type,
		Duration:  d.Duration,
		Price:     FormatAmount(d.OriginalPrice),
	}
}
