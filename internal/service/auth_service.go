package service

import (
	"context"
	"errors"

	"github.com/sem/quill/internal/domain"
	"github.com/sem/quill/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyHash is compared against when the username does not exist, so a
// failed lookup costs roughly the same as a failed password check.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterInput struct {
	Username      string
	Name          string
	Email         string
	FavoriteColor string
	Password      string
}

// Register creates a new account with a bcrypt-hashed password. The first
// account ever created gets the administrator role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if existing, err := s.userRepo.GetByUsername(ctx, input.Username); err == nil && existing != nil {
		return nil, domain.ErrDuplicateIdentity
	}
	if input.Email != "" {
		if existing, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
			return nil, domain.ErrDuplicateIdentity
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleRegular
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = domain.RoleAdministrator
	}

	user := &domain.User{
		Username:      input.Username,
		Name:          input.Name,
		Email:         input.Email,
		FavoriteColor: input.FavoriteColor,
		Role:          role,
		PasswordHash:  string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, err
	}

	return user, nil
}

// VerifyCredentials checks a username/password pair. Unknown usernames and
// wrong passwords come back as distinct errors; callers that face the
// network are expected to collapse the two.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidPassword
	}

	return user, nil
}
