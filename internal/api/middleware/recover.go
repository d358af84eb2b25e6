package middleware

import (
	"net/http"

	"github.com/sem/quill/internal/web"
	"go.uber.org/zap"
)

// Recoverer turns panics into the custom 500 page instead of killing the
// serving process.
func Recoverer(logger *zap.Logger, renderer *web.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)
					_ = renderer.Render(w, http.StatusInternalServerError, "error500", web.Page{Title: "Server Error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
