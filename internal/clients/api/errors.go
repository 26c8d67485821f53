package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable — транспортная ошибка: API недоступен, таймаут, обрыв соединения.
	ErrUnavailable = errors.New("api unavailable")
	// ErrBadResponse — ответ API не удалось разобрать.
	ErrBadResponse = errors.New("api bad response")
)

// APIError — ответ API со статусом вне 2xx.
// Message — первое непустое поле из error, detail, message (может быть пустым).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api status %d", e.Status)
	}

	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

// MessageOf возвращает сообщение API из ошибки или fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return fallback
}

// errorEnvelope — поля, в которых API возвращает текст ошибки.
type errorEnvelope struct {
	Error   string `json:"error"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e errorEnvelope) text() string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Detail != "":
		return e.Detail
	default:
		return e.Message
	}
}
