package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/LaKensak/fronten/internal/clients/api"
	"github.com/LaKensak/fronten/internal/metrics"
	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/session"
	"github.com/LaKensak/fronten/internal/storage"
	"github.com/LaKensak/fronten/pkg/log"
)

// PaymentPage — данные страницы оплаты при открытии.
type PaymentPage struct {
	Draft   *models.PaymentDraft
	Prefill models.Reservation
	// PrefillError — предзаполнение не удалось; страница остаётся рабочей.
	PrefillError string
}

// OpenPayment создаёт черновик оплаты для предложения из query и
// предзаполняет поля клиента из его брони на это предложение.
func (s *Service) OpenPayment(ctx context.Context, token string, ref models.OfferingRef) (PaymentPage, error) {
	const op = "internal/service/OpenPayment"

	price, ok := ref.PriceValue()
	if !ref.Complete() || !ok {
		return PaymentPage{}, fail(KindValidation, MsgOfferingIncomplete, nil)
	}

	d := &models.PaymentDraft{
		ID:            s.newID(),
		SessionID:     ref.SessionID,
		Title:         ref.Title,
		Type:          ref.Type,
		Duration:      ref.Duration,
		OriginalPrice: price,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.drafts.SaveDraft(ctx, d, s.opts.DraftTTL); err != nil {
		return PaymentPage{}, fail(KindUnavailable, MsgPaymentFailed, fmt.Errorf("%s: save draft: %w", op, err))
	}

	page := PaymentPage{Draft: d}

	prefill, err := s.Prefill(ctx, token, ref.SessionID)
	if err != nil {
		log.From(ctx).Warn("payment_prefill_failed", "op", op, "err", err.Error())
		page.PrefillError = MsgPrefillFailed
		return page, nil
	}
	page.Prefill = prefill

	return page, nil
}

// Prefill — первая бронь пользователя на предложение sessionID (для полей клиента на оплате).
// Нет брони — пустая Reservation без ошибки.
func (s *Service) Prefill(ctx context.Context, token, sessionID string) (models.Reservation, error) {
	if token == "" {
		return models.Reservation{}, ErrSessionRequired
	}

	userID, err := session.UserID(token)
	if err != nil {
		return models.Reservation{}, err
	}

	list, err := s.backend.ListReservations(ctx, token, userID, sessionID)
	if err != nil {
		return models.Reservation{}, err
	}

	if len(list) == 0 {
		return models.Reservation{}, nil
	}

	return list[0], nil
}

// Draft возвращает черновик оплаты; истёкший черновик — ошибка с предложением начать заново.
func (s *Service) Draft(ctx context.Context, id string) (*models.PaymentDraft, error) {
	const op = "internal/service/Draft"

	if id == "" {
		return nil, fail(KindValidation, MsgOfferingIncomplete, nil)
	}

	d, err := s.drafts.DraftByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fail(KindValidation, MsgPaymentExpired, err)
		}

		return nil, fail(KindUnavailable, MsgPaymentFailed, fmt.Errorf("%s: %w", op, err))
	}

	return d, nil
}

// ApplyPromo проверяет промокод через API и сохраняет скидку в черновике.
// Пустой код отклоняется без вызова API.
func (s *Service) ApplyPromo(ctx context.Context, token, draftID, code string) (*models.PaymentDraft, error) {
	const op = "internal/service/ApplyPromo"

	d, err := s.Draft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return d, fail(KindValidation, MsgPromoEmpty, nil)
	}

	resp, err := s.backend.ValidatePromo(ctx, token, models.PromoRequest{
		Code:        code,
		SessionType: d.Type,
		SessionID:   d.SessionID,
	})
	if err != nil {
		return d, fail(KindUnavailable, MsgPromoFailed, fmt.Errorf("%s: %w", op, err))
	}

	if !resp.Valid {
		msg := resp.Message
		if msg == "" {
			msg = MsgPromoInvalid
		}
		return d, fail(KindRejected, msg, nil)
	}

	if resp.Discount < 0 || resp.Discount >= 1 {
		return d, fail(KindRejected, MsgPromoInvalid, fmt.Errorf("%s: discount %v out of [0,1)", op, resp.Discount))
	}

	d.Discount = resp.Discount
	if err := s.drafts.SaveDraft(ctx, d, s.opts.DraftTTL); err != nil {
		return d, fail(KindUnavailable, MsgPromoFailed, fmt.Errorf("%s: save draft: %w", op, err))
	}

	log.From(ctx).Info("promo_applied", "draft_id", d.ID, "discount", d.Discount)

	return d, nil
}

// processorMessage — текст отказа процессора, если ошибка его несёт.
type processorMessage interface {
	ProcessorMessage() string
}

// IdempotencyKey — ключ запроса payment intent: один черновик и одна сумма — один intent.
func IdempotencyKey(d *models.PaymentDraft) string {
	return d.ID + ":" + strconv.FormatInt(d.AmountMinor(), 10)
}

// Pay проводит цепочку оплаты; любой сбой прерывает её и оставляет форму
// доступной для повторной отправки:
//  1. готовность процессора и наличие метода оплаты;
//  2. payment intent в API (поле error прерывает цепочку до процессора);
//  3. подтверждение карты процессором по client secret;
//  4. подтверждение оплаты в API (status == "success").
//
// При успехе черновик удаляется.
func (s *Service) Pay(ctx context.Context, draftID, paymentMethod string) (*models.PaymentDraft, error) {
	const op = "internal/service/Pay"

	d, err := s.Draft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	ctx, l := log.With(ctx, "draft_id", d.ID, "session_id", d.SessionID)

	// 1.
	if s.processor == nil || !s.processor.Ready() {
		s.record(metrics.PaymentNotReady)
		return d, fail(KindProcessor, MsgProcessorNotReady, nil)
	}
	if strings.TrimSpace(paymentMethod) == "" {
		s.record(metrics.PaymentNotReady)
		return d, fail(KindProcessor, MsgCardMissing, nil)
	}

	// 2. Idempotency-Key бэкенд вправе игнорировать: тогда повтор создаёт новый intent.
	intent, err := s.backend.CreatePaymentIntent(ctx, models.PaymentIntentRequest{
		Amount:    d.AmountMinor(),
		Currency:  s.opts.Currency,
		SessionID: d.SessionID,
	}, IdempotencyKey(d))
	if err != nil {
		s.record(metrics.PaymentIntentFailed)
		l.Warn("payment_intent_failed", "op", op, "err", err.Error())
		return d, fail(KindUnavailable, api.MessageOf(err, MsgPaymentFailed), fmt.Errorf("%s: %w", op, err))
	}
	if intent.Error != "" {
		s.record(metrics.PaymentIntentFailed)
		l.Warn("payment_intent_rejected", "op", op, "reason", intent.Error)
		return d, fail(KindRejected, intent.Error, nil)
	}
	if intent.ClientSecret == "" {
		s.record(metrics.PaymentIntentFailed)
		return d, fail(KindUnavailable, MsgPaymentFailed, fmt.Errorf("%s: empty client secret", op))
	}

	// 3.
	intentID, err := s.processor.ConfirmCardPayment(ctx, intent.ClientSecret, paymentMethod)
	if err != nil {
		s.record(metrics.PaymentProcessorFailed)
		l.Warn("payment_declined", "op", op, "err", err.Error())

		msg := MsgPaymentDeclined
		var pm processorMessage
		if errors.As(err, &pm) && pm.ProcessorMessage() != "" {
			msg = pm.ProcessorMessage()
		}
		return d, fail(KindProcessor, msg, err)
	}

	// 4.
	conf, err := s.backend.ConfirmPayment(ctx, models.ConfirmPaymentRequest{
		PaymentIntentID: intentID,
		SessionID:       d.SessionID,
	})
	if err != nil {
		s.record(metrics.PaymentConfirmFailed)
		l.Warn("payment_confirm_failed", "op", op, "intent_id", intentID, "err", err.Error())
		return d, fail(KindUnavailable, api.MessageOf(err, MsgPaymentFailed), fmt.Errorf("%s: %w", op, err))
	}
	if conf.Status != "success" {
		s.record(metrics.PaymentConfirmFailed)
		msg := conf.Message
		if msg == "" {
			msg = MsgPaymentConfirmFail
		}
		l.Warn("payment_confirm_rejected", "op", op, "intent_id", intentID, "status", conf.Status)
		return d, fail(KindRejected, msg, nil)
	}

	s.record(metrics.PaymentSucceeded)
	l.Info("payment_succeeded", "intent_id", intentID, "amount", d.AmountMinor())

	if err := s.drafts.DeleteDraft(ctx, d.ID); err != nil {
		l.Warn("draft_delete_failed", "op", op, "err", err.Error())
	}

	return d, nil
}
