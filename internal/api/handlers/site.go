package handlers

import (
	"net/http"

	"github.com/sem/quill/internal/service"
	"github.com/sem/quill/internal/web"
	"go.uber.org/zap"
)

// SiteHandler serves the pages that belong to no particular resource.
type SiteHandler struct {
	base
}

func NewSiteHandler(sessions *service.SessionService, renderer *web.Renderer, logger *zap.Logger) *SiteHandler {
	return &SiteHandler{base: base{sessions: sessions, renderer: renderer, logger: logger}}
}

func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home", "Home", nil)
}

func (h *SiteHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "error404", "Not Found", nil)
}

func (h *SiteHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
