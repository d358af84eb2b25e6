package service

import (
	"context"
	"errors"

	"github.com/sem/quill/internal/domain"
	"github.com/sem/quill/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	sessionRepo repository.SessionRepository
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, sessionRepo repository.SessionRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		sessionRepo: sessionRepo,
	}
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// untouched. Password change is deliberately not part of this surface.
type UpdateProfileInput struct {
	Username      *string
	Name          *string
	Email         *string
	FavoriteColor *string
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns all users ascending by the date they were added.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.ListByDateAdded(ctx)
}

// Update applies a partial profile update, rejecting username or email
// collisions with other accounts.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		if existing, err := s.userRepo.GetByUsername(ctx, *input.Username); err == nil && existing.ID != id {
			return nil, domain.ErrDuplicateIdentity
		}
		user.Username = *input.Username
	}
	if input.Email != nil && *input.Email != user.Email {
		if existing, err := s.userRepo.GetByEmail(ctx, *input.Email); err == nil && existing.ID != id {
			return nil, domain.ErrDuplicateIdentity
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.FavoriteColor != nil {
		user.FavoriteColor = *input.FavoriteColor
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user account. Deletion is refused while the user still
// owns posts; posts are never cascaded or orphaned. Any live sessions of
// the deleted user are terminated.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	owned, err := s.postRepo.CountByAuthor(ctx, id)
	if err != nil {
		return err
	}
	if owned > 0 {
		return domain.ErrUserHasPosts
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.sessionRepo.DeleteByUserID(ctx, id)
}
