package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/LaKensak/fronten/internal/errors"
	"github.com/LaKensak/fronten/internal/http/views"
	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/service"
	"github.com/LaKensak/fronten/internal/session"
)

// Dashboard — личный кабинет; раздел из ?section= (неизвестный — обзор).
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := views.DashboardData{
		Section:     service.ParseSection(r.URL.Query().Get("section")),
		DisplayName: session.From(r.Context()).DisplayName(),
	}

	switch data.Section {
	case service.SectionPayments:
		rows, err := h.svc.Payments(r.Context(), token(r))
		if err != nil {
			data.PaymentsError = apierrors.Message(err)
		}
		data.Payments = rows
	case service.SectionSettings:
		if !h.loadUser(w, r, &data) {
			return
		}
	}

	h.render(w, r, http.StatusOK, views.PageDashboard, h.page(r, "Tableau de bord", data))
}

// UpdateProfile — форма профиля в настройках.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	in := models.UpdateProfileRequest{
		Username:  r.PostForm.Get("username"),
		FirstName: r.PostForm.Get("first_name"),
		LastName:  r.PostForm.Get("last_name"),
		Email:     r.PostForm.Get("email"),
	}

	data := h.settingsData(r)
	status := http.StatusOK

	if err := h.svc.UpdateProfile(r.Context(), token(r), in); err != nil {
		status = statusOf(err)
		data.ProfileMessage = apierrors.Message(err)
		// введённые значения остаются в форме
		data.User = models.User{Username: in.Username, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
	} else {
		data.ProfileOK = true
		data.ProfileMessage = service.MsgSettingsSaved
		if !h.loadUser(w, r, &data) {
			return
		}
	}

	h.render(w, r, status, views.PageDashboard, h.page(r, "Tableau de bord", data))
}

// ChangePassword — форма смены пароля; поля паролей всегда отрисовываются пустыми.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	data := h.settingsData(r)
	if !h.loadUser(w, r, &data) {
		return
	}

	status := http.StatusOK

	err := h.svc.ChangePassword(r.Context(), token(r),
		r.PostForm.Get("current_password"),
		r.PostForm.Get("new_password"),
		r.PostForm.Get("confirm_password"),
	)
	if err != nil {
		status = statusOf(err)
		data.PasswordMessage = apierrors.Message(err)
	} else {
		data.PasswordOK = true
		data.PasswordMessage = service.MsgPasswordChanged
	}

	h.render(w, r, status, views.PageDashboard, h.page(r, "Tableau de bord", data))
}

func (h *Handlers) settingsData(r *http.Request) views.DashboardData {
	return views.DashboardData{
		Section:     service.SectionSettings,
		DisplayName: session.From(r.Context()).DisplayName(),
	}
}

// loadUser заполняет профиль для настроек; сбой загрузки уводит на вход.
func (h *Handlers) loadUser(w http.ResponseWriter, r *http.Request, data *views.DashboardData) bool {
	u, err := h.svc.Profile(r.Context(), token(r))
	if err != nil {
		if errors.Is(err, service.ErrSessionRequired) {
			http.Redirect(w, r, loginEnterPath, http.StatusSeeOther)
			return false
		}

		data.ProfileMessage = apierrors.Message(err)
		return true
	}

	data.User = u
	return true
}
