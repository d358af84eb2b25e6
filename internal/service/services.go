package service

import (
	"github.com/sem/quill/internal/config"
	"github.com/sem/quill/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Session *SessionService
	User    *UserService
	Post    *PostService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User),
		Session: NewSessionService(repos.Session, repos.User, cfg),
		User:    NewUserService(repos.User, repos.Post, repos.Session),
		Post:    NewPostService(repos.Post),
	}
}
