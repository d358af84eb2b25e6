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

type UserHandler struct {
	base
	users *service.UserService
}

func NewUserHandler(users *service.UserService, sessions *service.SessionService, renderer *web.Renderer, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		base:  base{sessions: sessions, renderer: renderer, logger: logger},
		users: users,
	}
}

type dashboardFormData struct {
	Name          string
	Username      string
	Email         string
	FavoriteColor string
	Errors        []string
}

// Dashboard shows the profile update form for the logged-in user.
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "dashboard", "Dashboard", dashboardFormData{
		Name:          user.Name,
		Username:      user.Username,
		Email:         user.Email,
		FavoriteColor: user.FavoriteColor,
	})
}

// UpdateProfile applies the dashboard form to the logged-in user.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	f, err := parseForm(r)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	data := dashboardFormData{
		Name:          f.Get("name"),
		Username:      f.Get("username"),
		Email:         f.Get("email"),
		FavoriteColor: f.Get("favorite_color"),
	}

	f.Require("name", "username", "email")
	if !f.Valid() {
		data.Errors = f.Errors
		h.render(w, r, http.StatusUnprocessableEntity, "dashboard", "Dashboard", data)
		return
	}

	_, err = h.users.Update(r.Context(), user.ID, service.UpdateProfileInput{
		Name:          &data.Name,
		Username:      &data.Username,
		Email:         &data.Email,
		FavoriteColor: &data.FavoriteColor,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			data.Errors = []string{"That username or email is already taken."}
			h.render(w, r, http.StatusUnprocessableEntity, "dashboard", "Dashboard", data)
			return
		}
		h.logger.Error("update profile", zap.Error(err))
		h.flash(r, "Error! Encountered a problem... Try again.")
		h.render(w, r, http.StatusInternalServerError, "dashboard", "Dashboard", data)
		return
	}

	h.flashAndRedirect(w, r, "User updated successfully!", "/dashboard")
}

type userListData struct {
	Users []*domain.User
}

// List shows every user ordered by the date they were added.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("list users", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error500", "Server Error", nil)
		return
	}
	h.render(w, r, http.StatusOK, "users", "Our Users", userListData{Users: users})
}
