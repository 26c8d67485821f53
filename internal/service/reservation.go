package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/LaKensak/fronten/internal/clients/api"
	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/pkg/log"
	"github.com/LaKensak/fronten/pkg/redact"
)

// Phase — состояние формы бронирования.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseValidating
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State — явное состояние формы: фаза и сообщение (ошибка или пусто).
type State struct {
	Phase   Phase
	Message string
}

var transitions = map[Phase][]Phase{
	PhaseEditing:    {PhaseValidating},
	PhaseValidating: {PhaseSubmitting, PhaseFailed},
	PhaseSubmitting: {PhaseSucceeded, PhaseFailed},
	PhaseFailed:     {PhaseValidating, PhaseEditing},
}

// To переводит форму в фазу p. Succeeded — конечное состояние.
func (st State) To(p Phase, msg string) (State, error) {
	for _, next := range transitions[st.Phase] {
		if next == p {
			return State{Phase: p, Message: msg}, nil
		}
	}

	return st, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, st.Phase, p)
}

// must — переход, корректность которого гарантирована порядком вызовов ниже.
func (st State) must(p Phase, msg string) State {
	next, err := st.To(p, msg)
	if err != nil {
		panic(err)
	}

	return next
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^(\+\d{1,3}[- ]?)?\d{10,13}$`)
)

// rdvLayouts — значения input type=datetime-local.
var rdvLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// ParseRdv разбирает дату/время приёма в часовом поясе кабинета.
func (s *Service) ParseRdv(rdv string) (time.Time, bool) {
	rdv = strings.TrimSpace(rdv)
	if rdv == "" {
		return time.Time{}, false
	}

	for _, layout := range rdvLayouts {
		if t, err := time.ParseInLocation(layout, rdv, s.opts.Location); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// WithinHours — час приёма в [OpenHour, CloseHour).
func (s *Service) WithinHours(t time.Time) bool {
	h := t.Hour()
	return h >= s.opts.OpenHour && h < s.opts.CloseHour
}

func (s *Service) outsideHoursMessage() string {
	return fmt.Sprintf(msgOutsideHoursFmt, s.opts.OpenHour, s.opts.CloseHour)
}

// SlotCheck — результат проверки слота.
type SlotCheck struct {
	Available bool
	Message   string
}

// CheckSlot — правило рабочих часов, затем авторитетная проверка API.
// Вне рабочих часов API не вызывается.
func (s *Service) CheckSlot(ctx context.Context, rdv string) SlotCheck {
	const op = "internal/service/CheckSlot"

	t, ok := s.ParseRdv(rdv)
	if !ok {
		return SlotCheck{Message: MsgDateRequired}
	}

	if !s.WithinHours(t) {
		return SlotCheck{Message: s.outsideHoursMessage()}
	}

	av, err := s.backend.CheckAvailability(ctx, strings.TrimSpace(rdv))
	if err != nil {
		log.From(ctx).Warn("availability_check_failed", "op", op, "err", err.Error())
		return SlotCheck{Message: MsgSlotCheckFailed}
	}

	if !av.Available {
		return SlotCheck{Message: MsgSlotTaken}
	}

	return SlotCheck{Available: true, Message: MsgSlotAvailable}
}

// DateTimeBounds — подсказки min/max для поля даты: сейчас и +3 месяца в 18:00.
func (s *Service) DateTimeBounds() (string, string) {
	now := s.now().In(s.opts.Location)
	maxDay := now.AddDate(0, 3, 0)
	maxT := time.Date(maxDay.Year(), maxDay.Month(), maxDay.Day(), s.opts.CloseHour, 0, 0, 0, s.opts.Location)

	const layout = "2006-01-02T15:04"

	return now.Format(layout), maxT.Format(layout)
}

// validateFields — правила 3–8 в порядке проверки; пустая строка — всё верно.
func validateFields(d models.ReservationDraft, hasRdv bool) string {
	switch {
	case strings.TrimSpace(d.FirstName) == "":
		return MsgNameRequired
	case !hasRdv:
		return MsgDateRequired
	case !emailRe.MatchString(d.Email):
		return MsgEmailInvalid
	case !phoneRe.MatchString(d.Phone):
		return MsgPhoneInvalid
	case strings.TrimSpace(d.Address) == "":
		return MsgAddressRequired
	case !d.Consent:
		return MsgConsentRequired
	}

	return ""
}

// SubmitReservation проводит форму через проверки (первое нарушенное правило
// побеждает) и создаёт бронь. Возвращает конечное состояние: Succeeded или Failed.
//
// Порядок: часы -> доступность (API) -> имя -> дата -> email -> телефон -> адрес -> согласие.
// Если дата не указана или не разбирается, проверки часов и доступности
// пропускаются, и об отсутствии даты сообщает правило даты.
func (s *Service) SubmitReservation(ctx context.Context, token string, ref models.OfferingRef, d models.ReservationDraft) State {
	const op = "internal/service/SubmitReservation"

	st := State{Phase: PhaseEditing}.must(PhaseValidating, "")

	t, hasRdv := s.ParseRdv(d.Rdv)
	if hasRdv {
		if !s.WithinHours(t) {
			return st.must(PhaseFailed, s.outsideHoursMessage())
		}

		if chk := s.CheckSlot(ctx, d.Rdv); !chk.Available {
			return st.must(PhaseFailed, chk.Message)
		}
	}

	if msg := validateFields(d, hasRdv); msg != "" {
		return st.must(PhaseFailed, msg)
	}

	if token == "" {
		return st.must(PhaseFailed, MsgNoAccessToken)
	}

	st = st.must(PhaseSubmitting, "")

	req := models.ReservationRequest{
		SessionID: ref.SessionID,
		FirstName: strings.TrimSpace(d.FirstName),
		Email:     strings.TrimSpace(d.Email),
		Phone:     strings.TrimSpace(d.Phone),
		Address:   strings.TrimSpace(d.Address),
		Rdv:       strings.TrimSpace(d.Rdv),
	}

	if err := s.backend.CreateReservation(ctx, token, req); err != nil {
		log.From(ctx).Warn("reservation_failed",
			"op", op,
			"session_id", ref.SessionID,
			"email", redact.Email(req.Email),
			"err", err.Error(),
		)

		if transport(err) {
			return st.must(PhaseFailed, MsgServerUnreachable)
		}

		return st.must(PhaseFailed, api.MessageOf(err, MsgReservationFailed))
	}

	log.From(ctx).Info("reservation_created",
		"session_id", ref.SessionID,
		"email", redact.Email(req.Email),
		"phone", redact.Phone(req.Phone),
	)

	return st.must(PhaseSucceeded, "")
}

// PaymentURL — страница оплаты с теми же параметрами предложения.
func PaymentURL(ref models.OfferingRef) string {
	return "/payment?" + ref.Encode()
}
