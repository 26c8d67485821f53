package service

import (
	"context"
	"fmt"

	"github.com/LaKensak/fronten/internal/models"
)

// Catalog — список предложений; один неаутентифицированный вызов на загрузку страницы.
func (s *Service) Catalog(ctx context.Context) ([]models.Offering, error) {
	const op = "internal/service/Catalog"

	items, err := s.backend.ListOfferings(ctx)
	if err != nil {
		return nil, fail(KindUnavailable, MsgCatalogUnavailable, fmt.Errorf("%s: %w", op, err))
	}

	return items, nil
}

// ActionKind — реакция на кнопку бронирования.
type ActionKind int

const (
	// ActionNone — предложение недоступно, кнопка неактивна.
	ActionNone ActionKind = iota
	// ActionLogin — показать уведомление и через паузу увести на вход.
	ActionLogin
	// ActionReserve — перейти к форме бронирования.
	ActionReserve
)

type BookingAction struct {
	Kind ActionKind
	URL  string
}

// LoginNoticeURL — главная с уведомлением о необходимости входа.
const LoginNoticeURL = "/?auth=required#auth-notice"

// Booking вычисляет действие кнопки бронирования для предложения.
func Booking(o models.Offering, authenticated bool) BookingAction {
	switch {
	case !o.Available:
		return BookingAction{Kind: ActionNone}
	case !authenticated:
		return BookingAction{Kind: ActionLogin, URL: LoginNoticeURL}
	default:
		return BookingAction{Kind: ActionReserve, URL: "/reservation?" + o.Ref().Encode()}
	}
}
