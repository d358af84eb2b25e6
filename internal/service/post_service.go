package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sem/quill/internal/domain"
	"github.com/sem/quill/internal/repository"
	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type PostInput struct {
	Title   string
	Content string
	Slug    string
}

// Create stores a new post owned by the calling identity.
func (s *PostService) Create(ctx context.Context, identity domain.Identity, input PostInput) (*domain.Post, error) {
	if identity.IsAnonymous() {
		return nil, domain.ErrNotAuthorized
	}

	post := &domain.Post{
		Title:    input.Title,
		Content:  input.Content,
		Slug:     input.Slug,
		AuthorID: identity.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// Update modifies a post's content fields. Only the owner may update;
// ownership itself never changes.
func (s *PostService) Update(ctx context.Context, identity domain.Identity, id int64, input PostInput) (*domain.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !identity.CanEdit(post) {
		return nil, domain.ErrNotAuthorized
	}

	post.Title = input.Title
	post.Content = input.Content
	post.Slug = input.Slug
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Only the owner may delete.
func (s *PostService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !identity.CanDelete(post) {
		return domain.ErrNotAuthorized
	}
	return s.postRepo.Delete(ctx, post.ID)
}

// List returns all posts ascending by the date they were posted.
func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.postRepo.ListByDatePosted(ctx)
}

// Search returns posts whose body contains the query, in the same date
// order as List.
func (s *PostService) Search(ctx context.Context, query string) ([]*domain.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.postRepo.SearchContent(ctx, query)
}
