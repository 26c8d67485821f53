package handlers

import (
	"net/http"

	apierrors "github.com/LaKensak/fronten/internal/errors"
	"github.com/LaKensak/fronten/internal/http/views"
	"github.com/LaKensak/fronten/internal/service"
	"github.com/LaKensak/fronten/internal/session"
)

// Home — главная: hero, услуги и каталог предложений.
// ?auth=required показывает уведомление о входе и через паузу уводит на /login/enter.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	sess := session.From(r.Context())

	data := views.HomeData{AuthNotice: r.URL.Query().Get("auth") == "required" && !sess.Authenticated()}

	offerings, err := h.svc.Catalog(r.Context())
	if err != nil {
		data.CatalogError = apierrors.Message(err)
	}

	for _, o := range offerings {
		data.Cards = append(data.Cards, views.OfferingCard{
			Offering: o,
			Action:   service.Booking(o, sess.Authenticated()),
		})
	}

	p := h.page(r, "", data)
	if data.AuthNotice {
		p.Redirect = redirectTo(authNoticeDelay, loginEnterPath)
	}

	h.render(w, r, http.StatusOK, views.PageHome, p)
}

// Confirmation — статическая страница успешной оплаты.
func (h *Handlers) Confirmation(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageConfirmation, h.page(r, "Confirmation", nil))
}
