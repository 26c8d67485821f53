package views

import (
	"math"
	"strconv"

	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/service"
)

// OfferingCard — карточка предложения с действием кнопки бронирования.
type OfferingCard struct {
	Offering models.Offering
	Action   service.BookingAction
}

func (c OfferingCard) Disabled() bool   { return c.Action.Kind == service.ActionNone }
func (c OfferingCard) NeedsLogin() bool { return c.Action.Kind == service.ActionLogin }

type HomeData struct {
	Cards        []OfferingCard
	CatalogError string
	AuthNotice   bool
}

type LoginData struct {
	Email   string
	Message string
	Success bool
}

// RegisterData — пароли в форму обратно не выводятся.
type RegisterData struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Message   string
	Success   bool
}

type ReservationData struct {
	Ref   models.OfferingRef
	Draft models.ReservationDraft
	Min   string
	Max   string
	State service.State
	// Action — адрес формы с параметрами предложения.
	Action string
}

func (d ReservationData) Succeeded() bool { return d.State.Phase == service.PhaseSucceeded }
func (d ReservationData) Failed() bool    { return d.State.Phase == service.PhaseFailed }

type PaymentData struct {
	// Draft == nil — страница без формы (неполные данные или истёкший черновик).
	Draft          *models.PaymentDraft
	Customer       models.Reservation
	PrefillError   string
	Error          string
	PromoCode      string
	PromoMessage   string
	PromoOpen      bool
	PublishableKey string
}

func (d PaymentData) HasDiscount() bool { return d.Draft != nil && d.Draft.Discount > 0 }

// DiscountPercent — скидка в процентах для подписи ("20").
func (d PaymentData) DiscountPercent() string {
	if d.Draft == nil {
		return "0"
	}
	return strconv.FormatFloat(math.Round(d.Draft.Discount*1000)/10, 'f', -1, 64)
}

type DashboardData struct {
	Section       service.Section
	DisplayName   string
	Payments      []service.PaymentRow
	PaymentsError string

	User            models.User
	ProfileMessage  string
	ProfileOK       bool
	PasswordMessage string
	PasswordOK      bool
}

func (d DashboardData) Is(s string) bool { return string(d.Section) == s }
