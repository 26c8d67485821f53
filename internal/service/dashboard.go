package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/LaKensak/fronten/internal/clients/api"
	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/pkg/log"
)

// Section — раздел личного кабинета.
type Section string

const (
	SectionOverview Section = "overview"
	SectionProfile  Section = "profile"
	SectionPayments Section = "payments"
	SectionSettings Section = "settings"
)

// ParseSection — неизвестный раздел открывает обзор.
func ParseSection(s string) Section {
	switch Section(s) {
	case SectionProfile, SectionPayments, SectionSettings:
		return Section(s)
	default:
		return SectionOverview
	}
}

// PaymentRow — строка таблицы платежей.
type PaymentRow struct {
	ID        string
	Date      string // dd/mm/yyyy
	Amount    string // 2 знака
	Status    string
	Reference string
}

// Payments — история платежей пользователя.
func (s *Service) Payments(ctx context.Context, token string) ([]PaymentRow, error) {
	const op = "internal/service/Payments"

	list, err := s.backend.ListPayments(ctx, token)
	if err != nil {
		log.From(ctx).Warn("payments_list_failed", "op", op, "err", err.Error())

		if transport(err) {
			return nil, fail(KindUnavailable, MsgPaymentsFailed, err)
		}

		return nil, fail(KindRejected, MsgPaymentsRejected, err)
	}

	rows := make([]PaymentRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, PaymentRow{
			ID:        p.ID.String(),
			Date:      models.FormatDate(p.Date),
			Amount:    models.FormatAmount(p.Amount),
			Status:    p.Status,
			Reference: p.Reference,
		})
	}

	return rows, nil
}

// Profile — профиль для формы настроек. Любой сбой — ErrSessionRequired (уход на вход).
func (s *Service) Profile(ctx context.Context, token string) (models.User, error) {
	const op = "internal/service/Profile"

	u, err := s.backend.CurrentUser(ctx, token)
	if err != nil {
		log.From(ctx).Warn("profile_fetch_failed", "op", op, "err", err.Error())
		return models.User{}, fmt.Errorf("%s: %w: %w", op, ErrSessionRequired, err)
	}

	return u, nil
}

// UpdateProfile сохраняет поля профиля.
func (s *Service) UpdateProfile(ctx context.Context, token string, in models.UpdateProfileRequest) error {
	const op = "internal/service/UpdateProfile"

	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.backend.UpdateProfile(ctx, token, in); err != nil {
		log.From(ctx).Warn("profile_update_failed", "op", op, "err", err.Error())

		if transport(err) {
			return fail(KindUnavailable, MsgSettingsFailed, err)
		}

		return fail(KindRejected, api.MessageOf(err, MsgSettingsRejected), err)
	}

	return nil
}

// ChangePassword меняет пароль. Несовпадение нового пароля и подтверждения
// отклоняется без вызова API.
func (s *Service) ChangePassword(ctx context.Context, token, current, next, confirm string) error {
	const op = "internal/service/ChangePassword"

	if next != confirm {
		return fail(KindValidation, MsgPasswordMismatch, nil)
	}

	err := s.backend.ChangePassword(ctx, token, models.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		log.From(ctx).Warn("password_change_failed", "op", op, "err", err.Error())

		if transport(err) {
			return fail(KindUnavailable, MsgSettingsFailed, err)
		}

		return fail(KindRejected, api.MessageOf(err, MsgSettingsRejected), err)
	}

	return nil
}
