package models

type ReservationRequest struct {
	SessionID string `json:"sessionId"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Rdv       string `json:"rdv"`
}

type Reservation struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// ReservationDraft — заполняемая форма бронирования.
type ReservationDraft struct {
	FirstName string
	Email     string
	Phone     string
	Address   string
	Consent   bool
	Rdv       string // datetime-local: 2006-01-02T15:04
}
