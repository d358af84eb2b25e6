package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sem/quill/internal/api/handlers"
	"github.com/sem/quill/internal/api/middleware"
	"github.com/sem/quill/internal/service"
	"github.com/sem/quill/internal/web"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, renderer *web.Renderer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger, renderer))

	// Initialize handlers
	siteHandler := handlers.NewSiteHandler(services.Session, renderer, logger)
	authHandler := handlers.NewAuthHandler(services.Auth, services.Session, renderer, logger)
	userHandler := handlers.NewUserHandler(services.User, services.Session, renderer, logger)
	postHandler := handlers.NewPostHandler(services.Post, services.Session, renderer, logger)
	adminHandler := handlers.NewAdminHandler(services.User, services.Session, renderer, logger)

	// Health check and static assets stay outside the session layer.
	r.Get("/health", siteHandler.Health)
	r.Handle("/static/*", web.StaticHandler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Sessions(services.Session, logger))
		r.NotFound(siteHandler.NotFound)

		// Public pages
		r.Get("/", siteHandler.Home)
		r.Get("/register", authHandler.RegisterPage)
		r.Post("/register", authHandler.Register)
		r.Get("/login", authHandler.LoginPage)
		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
		r.Get("/users", userHandler.List)
		r.Get("/posts", postHandler.List)
		r.Get("/posts/{id}", postHandler.Show)
		r.Get("/search", postHandler.SearchPage)
		r.Post("/search", postHandler.Search)

		// Pages that need a logged-in user
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(services.Session))

			r.Get("/dashboard", userHandler.Dashboard)
			r.Post("/dashboard", userHandler.UpdateProfile)
			r.Get("/posts/new", postHandler.NewPage)
			r.Post("/posts/new", postHandler.Create)
			r.Get("/posts/{id}/edit", postHandler.EditPage)
			r.Post("/posts/{id}/edit", postHandler.Update)
			r.Post("/posts/{id}/delete", postHandler.Delete)
		})

		// Administrator-only pages
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/admin", adminHandler.Page)
			r.Post("/admin/users/{id}/delete", adminHandler.DeleteUser)
		})
	})

	return r
}
