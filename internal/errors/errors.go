// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает ошибку сервисного слоя (*service.Error, ErrSessionRequired,
// ошибки контекста), а на выход даёт:
//   - корректный HTTP-статус;
//   - короткий стабильный code для JS-части страниц;
//   - сообщение для показа пользователю (французский текст сервиса) без деталей.
//
// HTML-страницы используют только Message(err); JSON-эндпойнты — WriteError.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LaKensak/fronten/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// MsgInternal — сообщение для непредвиденных ошибок.
const MsgInternal = "Une erreur est survenue. Veuillez réessayer."

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil - программная ошибка вызова: 500/internal;
//   - *service.Error - статус по Kind, сообщение сервиса как есть;
//   - ErrSessionRequired - 401/unauthenticated;
//   - context.Canceled / DeadlineExceeded - 499 / 504;
//   - прочее - 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

// Message — текст ошибки для показа на странице.
func Message(err error) string {
	_, _, msg := classify(err)
	return msg
}

// WriteError — хелпер для JSON-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func classify(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, "internal", MsgInternal
	}

	var se *service.Error
	if errors.As(err, &se) {
		status, code := fromKind(se.Kind)
		return status, code, se.Message
	}

	switch {
	case errors.Is(err, service.ErrSessionRequired):
		return http.StatusUnauthorized, "unauthenticated", service.MsgAuthRequired
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", MsgInternal
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", service.MsgServerUnreachable
	default:
		return http.StatusInternalServerError, "internal", MsgInternal
	}
}

// fromKind — маппинг класса ошибки сервиса в HTTP:
//   - Validation -> 422 (форма не прошла правила; API не вызывался)
//   - Rejected -> 409 (API отклонил запрос)
//   - Processor -> 402 (отказ платёжного процессора)
//   - Unavailable -> 503 (API недоступен или ответ нечитаем)
func fromKind(k service.Kind) (int, string) {
	switch k {
	case service.KindValidation:
		return http.StatusUnprocessableEntity, "invalid_argument"
	case service.KindRejected:
		return http.StatusConflict, "rejected"
	case service.KindProcessor:
		return http.StatusPaymentRequired, "payment_declined"
	case service.KindUnavailable:
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
