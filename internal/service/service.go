// service содержит логику страниц сайта бронирования поверх удалённого API:
// каталог, форму бронирования, оплату, вход/регистрацию и личный кабинет.
//
// Основные аспекты:
//   - Все бизнес-решения (доступность, промокоды, платежи) принимает API;
//     сервис валидирует формы, выстраивает цепочки вызовов и сводит любую
//     ошибку к строке для показа пользователю (*Error).
//   - Service не хранит состояние запроса; черновики оплаты живут в storage.DraftStorage.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/storage"
)

var (
	// ErrSessionRequired — нет сессии или API её не принял; транспорт уводит на вход.
	ErrSessionRequired = errors.New("session required")
	// ErrIllegalTransition — недопустимый переход состояния формы бронирования.
	ErrIllegalTransition = errors.New("illegal state transition")
)

// Kind — класс ошибки для отображения.
type Kind int

const (
	// KindValidation — поле формы или правило (часы, доступность) не пройдено; вызова API не было.
	KindValidation Kind = iota + 1
	// KindUnavailable — транспортная ошибка или нечитаемый ответ API.
	KindUnavailable
	// KindRejected — API отклонил запрос (промокод, занятый слот, неверный пароль).
	KindRejected
	// KindProcessor — отказ платёжного процессора.
	KindProcessor
)

// Error — ошибка с готовым к показу сообщением.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func fail(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Backend — удалённый REST API.
type Backend interface {
	Login(ctx context.Context, in models.LoginRequest) (models.LoginResponse, error)
	Register(ctx context.Context, in models.RegisterRequest) error
	CurrentUser(ctx context.Context, token string) (models.User, error)
	UpdateProfile(ctx context.Context, token string, in models.UpdateProfileRequest) error
	ChangePassword(ctx context.Context, token string, in models.ChangePasswordRequest) error
	ListOfferings(ctx context.Context) ([]models.Offering, error)
	CheckAvailability(ctx context.Context, rdv string) (models.Availability, error)
	CreateReservation(ctx context.Context, token string, in models.ReservationRequest) error
	ListReservations(ctx context.Context, token, userID, sessionID string) ([]models.Reservation, error)
	ListPayments(ctx context.Context, token string) ([]models.Payment, error)
	ValidatePromo(ctx context.Context, token string, in models.PromoRequest) (models.PromoResponse, error)
	CreatePaymentIntent(ctx context.Context, in models.PaymentIntentRequest, idemKey string) (models.PaymentIntentResponse, error)
	ConfirmPayment(ctx context.Context, in models.ConfirmPaymentRequest) (models.ConfirmPaymentResponse, error)
}

// Processor — платёжный процессор (подтверждение карточного платежа).
type Processor interface {
	Ready() bool
	ConfirmCardPayment(ctx context.Context, clientSecret, paymentMethod string) (string, error)
}

// PaymentRecorder — счётчик исходов оплаты (может быть nil).
type PaymentRecorder interface {
	PaymentOutcome(outcome string)
}

type Options struct {
	Location  *time.Location
	OpenHour  int
	CloseHour int
	Currency  string
	DraftTTL  time.Duration
}

type Service struct {
	backend   Backend
	processor Processor
	drafts    storage.DraftStorage
	recorder  PaymentRecorder
	log       *slog.Logger
	opts      Options

	now   func() time.Time
	newID func() string
}

// New создаёт новый экземпляр Service.
func New(backend Backend, processor Processor, drafts storage.DraftStorage, log *slog.Logger, opts Options) *Service {
	if log == nil {
		log = slog.Default()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.OpenHour == 0 && opts.CloseHour == 0 {
		opts.OpenHour, opts.CloseHour = 8, 18
	}
	if opts.Currency == "" {
		opts.Currency = "eur"
	}
	if opts.DraftTTL <= 0 {
		opts.DraftTTL = 30 * time.Minute
	}

	return &Service{
		backend:   backend,
		processor: processor,
		drafts:    drafts,
		log:       log,
		opts:      opts,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// SetPaymentRecorder устанавливает счётчик исходов оплаты (опционально).
func (s *Service) SetPaymentRecorder(r PaymentRecorder) {
	s.recorder = r
}

func (s *Service) record(outcome string) {
	if s.recorder != nil {
		s.recorder.PaymentOutcome(outcome)
	}
}
