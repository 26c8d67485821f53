package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LaKensak/fronten/internal/clients/api"
	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/session"
	"github.com/LaKensak/fronten/pkg/log"
	"github.com/LaKensak/fronten/pkg/redact"
)

// transport — транспортная ошибка или нечитаемый ответ (в отличие от отказа API).
func transport(err error) bool {
	return errors.Is(err, api.ErrUnavailable) || errors.Is(err, api.ErrBadResponse)
}

// Login обменивает учётные данные на токены и подтверждает пользователя через /api/user/.
// Credentials возвращаются только если оба вызова успешны; запись cookies — забота транспорта.
func (s *Service) Login(ctx context.Context, email, password string) (session.Credentials, error) {
	const op = "internal/service/Login"

	email = strings.TrimSpace(email)

	tokens, err := s.backend.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		log.From(ctx).Warn("login_failed", "op", op, "email", redact.Email(email), "err", err.Error())

		if transport(err) {
			return session.Credentials{}, fail(KindUnavailable, MsgLoginFailed, err)
		}

		return session.Credentials{}, fail(KindRejected, api.MessageOf(err, MsgLoginRejected), err)
	}

	user, err := s.backend.CurrentUser(ctx, tokens.Access)
	if err != nil {
		log.From(ctx).Warn("login_user_fetch_failed", "op", op, "token", redact.Token(tokens.Access), "err", err.Error())
		return session.Credentials{}, fail(KindRejected, MsgUserFetch, fmt.Errorf("%s: %w", op, err))
	}

	log.From(ctx).Info("login_succeeded", "email", redact.Email(email))

	return session.Credentials{
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
		Username:     user.Username,
	}, nil
}

// LoginMessage — приветствие после успешного входа.
func LoginMessage(username string) string {
	return MsgLoginSucceeded + username
}

// Register создаёт аккаунт. Несовпадение пароля и подтверждения отклоняется без вызова API.
func (s *Service) Register(ctx context.Context, in models.RegisterRequest) error {
	const op = "internal/service/Register"

	if in.Password != in.ConfirmPassword {
		return fail(KindValidation, MsgRegisterMismatch, nil)
	}

	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)

	if err := s.backend.Register(ctx, in); err != nil {
		log.From(ctx).Warn("register_failed", "op", op, "email", redact.Email(in.Email), "err", err.Error())

		if transport(err) {
			return fail(KindUnavailable, MsgRegisterFailed, err)
		}

		return fail(KindRejected, api.MessageOf(err, MsgRegisterRejected), err)
	}

	log.From(ctx).Info("register_succeeded", "email", redact.Email(in.Email))

	return nil
}
