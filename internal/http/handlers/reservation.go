package handlers

import (
	"net/http"

	"github.com/LaKensak/fronten/internal/http/views"
	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/service"
)

// ReservationForm — форма бронирования для предложения из query.
func (h *Handlers) ReservationForm(w http.ResponseWriter, r *http.Request) {
	ref := models.OfferingRefFromQuery(r.URL.Query())
	minV, maxV := h.svc.DateTimeBounds()

	data := views.ReservationData{
		Ref:    ref,
		Min:    minV,
		Max:    maxV,
		State:  service.State{Phase: service.PhaseEditing},
		Action: "/reservation?" + ref.Encode(),
	}

	h.render(w, r, http.StatusOK, views.PageReservation, h.page(r, "Réservation", data))
}

// Availability — повторная проверка слота при смене даты (JSON).
func (h *Handlers) Availability(w http.ResponseWriter, r *http.Request) {
	chk := h.svc.CheckSlot(r.Context(), r.URL.Query().Get("rdv"))

	writeJSON(w, http.StatusOK, struct {
		Available bool   `json:"available"`
		Message   string `json:"message"`
	}{chk.Available, chk.Message})
}

// Reserve проводит форму через правила и создаёт бронь. Успех — через паузу
// на оплату с теми же параметрами; ошибка — форма с введёнными значениями.
func (h *Handlers) Reserve(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	ref := models.OfferingRefFromQuery(r.URL.Query())
	draft := models.ReservationDraft{
		FirstName: r.PostForm.Get("first_name"),
		Email:     r.PostForm.Get("email"),
		Phone:     r.PostForm.Get("phone"),
		Address:   r.PostForm.Get("address"),
		Consent:   r.PostForm.Get("consent") != "",
		Rdv:       r.PostForm.Get("rdv"),
	}

	st := h.svc.SubmitReservation(r.Context(), token(r), ref, draft)

	minV, maxV := h.svc.DateTimeBounds()
	data := views.ReservationData{
		Ref:    ref,
		Draft:  draft,
		Min:    minV,
		Max:    maxV,
		State:  st,
		Action: "/reservation?" + ref.Encode(),
	}

	p := h.page(r, "Réservation", data)

	status := http.StatusOK
	switch st.Phase {
	case service.PhaseSucceeded:
		p.Redirect = redirectTo(reservationRedirectDelay, service.PaymentURL(ref))
	case service.PhaseFailed:
		status = http.StatusUnprocessableEntity
	}

	h.render(w, r, status, views.PageReservation, p)
}
