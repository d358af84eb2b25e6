package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sem/quill/internal/config"
	"github.com/sem/quill/internal/domain"
	"github.com/sem/quill/internal/repository"
	"gorm.io/gorm"
)

// SessionService manages the server-side session rows and the signed
// tokens that reference them from the browser. The token is an HS256 JWT
// whose subject is the session ID; the row itself carries the identity
// binding and the flash queue.
type SessionService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	cfg         *config.Config
}

func NewSessionService(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, cfg *config.Config) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		cfg:         cfg,
	}
}

func (s *SessionService) ttl() time.Duration {
	return time.Duration(s.cfg.SessionTTLHours) * time.Hour
}

// Begin creates a fresh anonymous session and returns its signed token.
func (s *SessionService) Begin(ctx context.Context) (*domain.Session, string, error) {
	session := &domain.Session{
		ID:        uuid.New(),
		ExpiresAt: time.Now().Add(s.ttl()),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", err
	}
	token, err := s.signToken(session)
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

// Establish binds the session to a verified user. The anonymous row is
// replaced by a brand-new one so the pre-login token never becomes an
// authenticated token; queued flashes survive the swap.
func (s *SessionService) Establish(ctx context.Context, session *domain.Session, user *domain.User) (*domain.Session, string, error) {
	userID := user.ID
	fresh := &domain.Session{
		ID:        uuid.New(),
		UserID:    &userID,
		Flashes:   session.Flashes,
		ExpiresAt: time.Now().Add(s.ttl()),
	}
	if err := s.sessionRepo.Create(ctx, fresh); err != nil {
		return nil, "", err
	}
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		return nil, "", err
	}
	token, err := s.signToken(fresh)
	if err != nil {
		return nil, "", err
	}
	return fresh, token, nil
}

// Resolve verifies a token and loads the session it points at. Expired or
// deleted sessions come back as ErrSessionNotFound.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	id, err := s.parseToken(token)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	if session.Expired(time.Now()) {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// CurrentUser loads the user bound to the session, or nil for anonymous
// sessions. A binding to a since-deleted user counts as anonymous.
func (s *SessionService) CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if session == nil || !session.Authenticated() {
		return nil, nil
	}
	user, err := s.userRepo.GetByID(ctx, *session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Identity resolves the identity bound to the session, or Anonymous.
func (s *SessionService) Identity(ctx context.Context, session *domain.Session) (domain.Identity, error) {
	user, err := s.CurrentUser(ctx, session)
	if err != nil || user == nil {
		return domain.Anonymous, err
	}
	return user.Identity(), nil
}

// Terminate ends the session. Terminating a nil or already-gone session is
// a no-op, not an error.
func (s *SessionService) Terminate(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	return s.sessionRepo.Delete(ctx, session.ID)
}

// Flash queues a message to show the user on the next rendered page.
func (s *SessionService) Flash(ctx context.Context, session *domain.Session, message string) error {
	var messages []string
	if len(session.Flashes) > 0 {
		if err := json.Unmarshal(session.Flashes, &messages); err != nil {
			messages = nil
		}
	}
	messages = append(messages, message)
	raw, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	session.Flashes = raw
	return s.sessionRepo.Update(ctx, session)
}

// PopFlashes drains and returns the queued messages.
func (s *SessionService) PopFlashes(ctx context.Context, session *domain.Session) ([]string, error) {
	if session == nil || len(session.Flashes) == 0 {
		return nil, nil
	}
	var messages []string
	if err := json.Unmarshal(session.Flashes, &messages); err != nil {
		return nil, err
	}
	session.Flashes = nil
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return messages, nil
}

// SweepExpired deletes sessions past their expiry. Resolve already treats
// them as gone; this just keeps the table from growing without bound.
func (s *SessionService) SweepExpired(ctx context.Context) error {
	return s.sessionRepo.DeleteExpired(ctx)
}

func (s *SessionService) signToken(session *domain.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   session.ID.String(),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SessionSecret))
}

func (s *SessionService) parseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.New("invalid session token")
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(subject)
}
