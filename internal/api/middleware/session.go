package middleware

import (
	"context"
	"net/http"

	"github.com/sem/quill/internal/domain"
	"github.com/sem/quill/internal/service"
	"go.uber.org/zap"
)

type contextKey string

const (
	sessionKey  contextKey = "session"
	identityKey contextKey = "identity"
	userKey     contextKey = "user"
)

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "quill_session"

// Sessions resolves the request's session cookie into a session row and an
// identity, creating an anonymous session when the request has none. Every
// downstream handler can rely on a session being present.
func Sessions(sessions *service.SessionService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var session *domain.Session
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				if resolved, err := sessions.Resolve(ctx, cookie.Value); err == nil {
					session = resolved
				}
			}

			if session == nil {
				fresh, token, err := sessions.Begin(ctx)
				if err != nil {
					logger.Error("begin session", zap.Error(err))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				session = fresh
				SetSessionCookie(w, token, session)
			}

			user, err := sessions.CurrentUser(ctx, session)
			if err != nil {
				logger.Error("resolve identity", zap.Error(err))
			}
			identity := domain.Anonymous
			if user != nil {
				identity = user.Identity()
			}

			ctx = context.WithValue(ctx, sessionKey, session)
			ctx = context.WithValue(ctx, identityKey, identity)
			ctx = context.WithValue(ctx, userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetSessionCookie writes the session token cookie aligned with the
// session's expiry.
func SetSessionCookie(w http.ResponseWriter, token string, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetSession returns the session bound to the request.
func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*domain.Session)
	return session, ok
}

// GetUser returns the authenticated user behind the request, or nil.
func GetUser(ctx context.Context) *domain.User {
	user, ok := ctx.Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// GetIdentity returns the request identity, or Anonymous.
func GetIdentity(ctx context.Context) domain.Identity {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	if !ok {
		return domain.Anonymous
	}
	return identity
}

// RequireUser redirects anonymous requests to the login page with a flash
// notice.
func RequireUser(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity.IsAnonymous() {
				if session, ok := GetSession(r.Context()); ok {
					_ = sessions.Flash(r.Context(), session, "Please log in to view that page.")
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin denies non-administrators outright.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())
		if !identity.IsAdministrator() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
