package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sem/quill/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username      string
	name          string
	email         string
	favoriteColor string
	password      string
	role          domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		name:     "Test User",
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		role:     domain.RoleRegular,
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithFavoriteColor sets the favorite color
func (b *UserBuilder) WithFavoriteColor(color string) *UserBuilder {
	b.favoriteColor = color
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Username:      b.username,
		Name:          b.name,
		Email:         b.email,
		FavoriteColor: b.favoriteColor,
		Role:          b.role,
		PasswordHash:  string(hashedPassword),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// PostBuilder creates test posts with a builder pattern
type PostBuilder struct {
	title    string
	content  string
	slug     string
	authorID int64
}

// NewPostBuilder creates a new PostBuilder with default values
func NewPostBuilder(authorID int64) *PostBuilder {
	suffix := uuid.New().String()[:8]
	return &PostBuilder{
		title:    fmt.Sprintf("Test Post %s", suffix),
		content:  "Some test content.",
		slug:     fmt.Sprintf("test-post-%s", suffix),
		authorID: authorID,
	}
}

// WithTitle sets the title
func (b *PostBuilder) WithTitle(title string) *PostBuilder {
	b.title = title
	return b
}

// WithContent sets the body content
func (b *PostBuilder) WithContent(content string) *PostBuilder {
	b.content = content
	return b
}

// WithSlug sets the slug
func (b *PostBuilder) WithSlug(slug string) *PostBuilder {
	b.slug = slug
	return b
}

// Build creates the post in the database
func (b *PostBuilder) Build(t *testing.T, db *gorm.DB) *domain.Post {
	t.Helper()

	post := &domain.Post{
		Title:    b.title,
		Content:  b.content,
		Slug:     b.slug,
		AuthorID: b.authorID,
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	return post
}
