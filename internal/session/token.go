package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoUserID = errors.New("token has no user_id")

// UserID достаёт claim user_id из access token без проверки подписи:
// подпись проверяет API, здесь id нужен только для фильтра запроса.
func UserID(token string) (string, error) {
	const op = "internal/session/UserID"

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	switch v := claims["user_id"].(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}

	return "", fmt.Errorf("%s: %w", op, ErrNoUserID)
}
