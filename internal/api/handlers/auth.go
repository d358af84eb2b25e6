package handlers

import (
	"errors"
	"net/http"

	"github.com/sem/quill/internal/api/middleware"
	"github.com/sem/quill/internal/domain"
	"github.com/sem/quill/internal/service"
	"github.com/sem/quill/internal/web"
	"go.uber.org/zap"
)

type AuthHandler struct {
	base
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, renderer *web.Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		base: base{sessions: sessions, renderer: renderer, logger: logger},
		auth: auth,
	}
}

type registerFormData struct {
	Name          string
	Username      string
	Email         string
	FavoriteColor string
	Errors        []string
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register", "Register", registerFormData{})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := registerFormData{
		Name:          f.Get("name"),
		Username:      f.Get("username"),
		Email:         f.Get("email"),
		FavoriteColor: f.Get("favorite_color"),
	}

	f.Require("name", "username", "email", "password", "password_confirm")
	f.MustMatch("password", "password_confirm", "Passwords must match.")
	if !f.Valid() {
		data.Errors = f.Errors
		h.render(w, r, http.StatusUnprocessableEntity, "register", "Register", data)
		return
	}

	_, err = h.auth.Register(r.Context(), service.RegisterInput{
		Username:      data.Username,
		Name:          data.Name,
		Email:         data.Email,
		FavoriteColor: data.FavoriteColor,
		Password:      f.Get("password"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			data.Errors = []string{"That username or email is already taken."}
			h.render(w, r, http.StatusUnprocessableEntity, "register", "Register", data)
			return
		}
		h.logger.Error("register user", zap.Error(err))
		h.flash(r, "Whoops! Something went wrong. Try again.")
		h.render(w, r, http.StatusInternalServerError, "register", "Register", data)
		return
	}

	h.flashAndRedirect(w, r, "User registered successfully! Please log in.", "/login")
}

type loginFormData struct {
	Username string
	Errors   []string
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "Log In", loginFormData{})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := loginFormData{Username: f.Get("username")}

	f.Require("username", "password")
	if !f.Valid() {
		data.Errors = f.Errors
		h.render(w, r, http.StatusUnprocessableEntity, "login", "Log In", data)
		return
	}

	user, err := h.auth.VerifyCredentials(r.Context(), data.Username, f.Get("password"))
	if err != nil {
		// Unknown user and wrong password look the same from outside.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidPassword) {
			data.Errors = []string{"Invalid username or password. Try again."}
			h.render(w, r, http.StatusUnprocessableEntity, "login", "Log In", data)
			return
		}
		h.logger.Error("verify credentials", zap.Error(err))
		h.flash(r, "Whoops! Something went wrong. Try again.")
		h.render(w, r, http.StatusInternalServerError, "login", "Log In", data)
		return
	}

	session, ok := middleware.GetSession(r.Context())
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	fresh, token, err := h.sessions.Establish(r.Context(), session, user)
	if err != nil {
		h.logger.Error("establish session", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	middleware.SetSessionCookie(w, token, fresh)

	if err := h.sessions.Flash(r.Context(), fresh, "Logged in successfully!"); err != nil {
		h.logger.Error("queue flash", zap.Error(err))
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout terminates the session. Logging out while anonymous is harmless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := middleware.GetSession(r.Context()); ok {
		if err := h.sessions.Terminate(r.Context(), session); err != nil {
			h.logger.Error("terminate session", zap.Error(err))
		}
	}

	fresh, token, err := h.sessions.Begin(r.Context())
	if err != nil {
		middleware.ClearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	middleware.SetSessionCookie(w, token, fresh)
	if err := h.sessions.Flash(r.Context(), fresh, "You have been logged out!"); err != nil {
		h.logger.Error("queue flash", zap.Error(err))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
