package handlers

import (
	"net/http"

	"github.com/sem/quill/internal/api/middleware"
	"github.com/sem/quill/internal/service"
	"github.com/sem/quill/internal/web"
	"go.uber.org/zap"
)

// base carries the collaborators every handler needs: the session service
// for flashes, the renderer for views, and the logger.
type base struct {
	sessions *service.SessionService
	renderer *web.Renderer
	logger   *zap.Logger
}

// render draws a page with the request's drained flashes and current user.
func (b *base) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	page := web.Page{
		Title: title,
		User:  middleware.GetUser(r.Context()),
		Data:  data,
	}
	if session, ok := middleware.GetSession(r.Context()); ok {
		flashes, err := b.sessions.PopFlashes(r.Context(), session)
		if err != nil {
			b.logger.Error("pop flashes", zap.Error(err))
		}
		page.Flashes = flashes
	}
	if err := b.renderer.Render(w, status, name, page); err != nil {
		b.logger.Error("render page", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// flash queues a notice for the next rendered page.
func (b *base) flash(r *http.Request, message string) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		return
	}
	if err := b.sessions.Flash(r.Context(), session, message); err != nil {
		b.logger.Error("queue flash", zap.Error(err))
	}
}

// flashAndRedirect queues a notice and sends the browser elsewhere.
func (b *base) flashAndRedirect(w http.ResponseWriter, r *http.Request, message, url string) {
	b.flash(r, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}
