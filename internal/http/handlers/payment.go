package handlers

import (
	"net/http"

	apierrors "github.com/LaKensak/fronten/internal/errors"
	"github.com/LaKensak/fronten/internal/http/views"
	"github.com/LaKensak/fronten/internal/models"
	logctx "github.com/LaKensak/fronten/pkg/log"
)

// PaymentForm открывает страницу оплаты: новый черновик и предзаполнение клиента.
func (h *Handlers) PaymentForm(w http.ResponseWriter, r *http.Request) {
	ref := models.OfferingRefFromQuery(r.URL.Query())

	pg, err := h.svc.OpenPayment(r.Context(), token(r), ref)
	if err != nil {
		data := views.PaymentData{Error: apierrors.Message(err)}
		h.render(w, r, statusOf(err), views.PagePayment, h.page(r, "Paiement", data))
		return
	}

	data := views.PaymentData{
		Draft:          pg.Draft,
		Customer:       pg.Prefill,
		PrefillError:   pg.PrefillError,
		PublishableKey: h.publishableKey,
	}

	h.render(w, r, http.StatusOK, views.PagePayment, h.page(r, "Paiement", data))
}

// ApplyPromo — промокод из диалога. Успех закрывает диалог и пересчитывает цену;
// отказ оставляет диалог открытым с сообщением.
func (h *Handlers) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	code := r.PostForm.Get("code")

	d, err := h.svc.ApplyPromo(r.Context(), token(r), r.PostForm.Get("draft_id"), code)
	if d == nil {
		// черновика нет: начинать заново
		h.render(w, r, statusOf(err), views.PagePayment, h.page(r, "Paiement", views.PaymentData{Error: apierrors.Message(err)}))
		return
	}

	data := views.PaymentData{
		Draft:          d,
		Customer:       h.customer(r, d),
		PublishableKey: h.publishableKey,
	}

	status := http.StatusOK
	if err != nil {
		status = statusOf(err)
		data.PromoOpen = true
		data.PromoCode = code
		data.PromoMessage = apierrors.Message(err)
	}

	h.render(w, r, status, views.PagePayment, h.page(r, "Paiement", data))
}

// Pay — цепочка оплаты; успех ведёт на подтверждение, ошибка — снова форма оплаты.
func (h *Handlers) Pay(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	d, err := h.svc.Pay(r.Context(), r.PostForm.Get("draft_id"), r.PostForm.Get("payment_method"))
	if err == nil {
		http.Redirect(w, r, "/confirmation", http.StatusSeeOther)
		return
	}

	data := views.PaymentData{
		Draft:          d,
		Error:          apierrors.Message(err),
		PublishableKey: h.publishableKey,
		Customer: models.Reservation{
			FirstName: r.PostForm.Get("first_name"),
			Email:     r.PostForm.Get("email"),
			Phone:     r.PostForm.Get("phone"),
			Address:   r.PostForm.Get("address"),
		},
	}

	h.render(w, r, statusOf(err), views.PagePayment, h.page(r, "Paiement", data))
}

// customer — поля клиента при повторной отрисовке; сбой предзаполнения не мешает оплате.
func (h *Handlers) customer(r *http.Request, d *models.PaymentDraft) models.Reservation {
	c, err := h.svc.Prefill(r.Context(), token(r), d.SessionID)
	if err != nil {
		logctx.From(r.Context()).Warn("payment_prefill_failed", "draft_id", d.ID, "err", err.Error())
		return models.Reservation{}
	}

	return c
}
