package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sem/quill/internal/api/middleware"
	"github.com/sem/quill/internal/domain"
	"github.com/sem/quill/internal/service"
	"github.com/sem/quill/internal/web"
	"go.uber.org/zap"
)

// AdminHandler serves the administrator-only surface. Access is enforced
// by the RequireAdmin middleware on the route group.
type AdminHandler struct {
	base
	users *service.UserService
}

func NewAdminHandler(users *service.UserService, sessions *service.SessionService, renderer *web.Renderer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		base:  base{sessions: sessions, renderer: renderer, logger: logger},
		users: users,
	}
}

func (h *AdminHandler) Page(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("list users", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, "error500", "Server Error", nil)
		return
	}
	h.render(w, r, http.StatusOK, "admin", "Administration", userListData{Users: users})
}

// DeleteUser removes an account. Users who still own posts cannot be
// deleted; their posts would be orphaned otherwise.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if identity := middleware.GetIdentity(r.Context()); identity.UserID == id {
		h.flashAndRedirect(w, r, "You can't delete your own account while logged in.", "/admin")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			h.flashAndRedirect(w, r, "No such user.", "/admin")
		case errors.Is(err, domain.ErrUserHasPosts):
			h.flashAndRedirect(w, r, "That user still owns posts; delete those first.", "/admin")
		default:
			h.logger.Error("delete user", zap.Error(err))
			h.flashAndRedirect(w, r, "Whoops! Encountered a problem deleting the user.", "/admin")
		}
		return
	}

	h.flashAndRedirect(w, r, "User deleted successfully!", "/admin")
}
