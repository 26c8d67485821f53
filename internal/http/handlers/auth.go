package handlers

import (
	"net/http"

	apierrors "github.com/LaKensak/fronten/internal/errors"
	"github.com/LaKensak/fronten/internal/http/views"
	"github.com/LaKensak/fronten/internal/models"
	"github.com/LaKensak/fronten/internal/service"
	"github.com/LaKensak/fronten/internal/session"
)

// LoginEnter открывает login gate и ведёт на форму входа.
func (h *Handlers) LoginEnter(w http.ResponseWriter, r *http.Request) {
	h.sessions.OpenLoginGate(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginForm — форма входа. Уже вошедший пользователь и прямой заход
// без login gate уводятся на главную.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	sess := session.From(r.Context())
	if sess.Authenticated() || !sess.LoginGateOpen() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, views.PageLogin, h.page(r, "Connexion", views.LoginData{}))
}

// Login — вход; cookies пишутся только после успешных /api/login/ и /api/user/.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	data := views.LoginData{Email: r.PostForm.Get("email")}

	creds, err := h.svc.Login(r.Context(), data.Email, r.PostForm.Get("password"))
	if err != nil {
		data.Message = apierrors.Message(err)
		h.render(w, r, statusOf(err), views.PageLogin, h.page(r, "Connexion", data))
		return
	}

	h.sessions.Save(w, creds)

	data.Success = true
	data.Message = service.LoginMessage(creds.Username)

	p := h.page(r, "Connexion", data)
	p.Redirect = redirectTo(loginRedirectDelay, "/")

	h.render(w, r, http.StatusOK, views.PageLogin, p)
}

func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageRegister, h.page(r, "Inscription", views.RegisterData{}))
}

// Register — создание аккаунта; после успеха форма очищается и через паузу ведёт на вход.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	in := models.RegisterRequest{
		FirstName:       r.PostForm.Get("first_name"),
		LastName:        r.PostForm.Get("last_name"),
		Username:        r.PostForm.Get("username"),
		Email:           r.PostForm.Get("email"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
	}

	if err := h.svc.Register(r.Context(), in); err != nil {
		data := views.RegisterData{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Username:  in.Username,
			Email:     in.Email,
			Message:   apierrors.Message(err),
		}
		h.render(w, r, statusOf(err), views.PageRegister, h.page(r, "Inscription", data))
		return
	}

	p := h.page(r, "Inscription", views.RegisterData{Success: true, Message: service.MsgRegisterSucceeded})
	p.Redirect = redirectTo(registerRedirectDelay, loginEnterPath)

	h.render(w, r, http.StatusOK, views.PageRegister, p)
}

// Logout удаляет cookies сессии и ведёт на вход.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, loginEnterPath, http.StatusSeeOther)
}
