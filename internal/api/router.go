package api

import (
	"net/http"

	"github.com/dom/unique-nails/internal/api/handlers"
	"github.com/dom/unique-nails/internal/api/middleware"
	"github.com/dom/unique-nails/internal/config"
	"github.com/dom/unique-nails/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}).Handler)
	r.Use(middleware.SessionFilter(services.Auth))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg.SecureCookies)
	adminAuthHandler := handlers.NewAdminAuthHandler(services.Admin, cfg.SecureCookies)
	adminUserHandler := handlers.NewAdminUserHandler(services.User)
	adminDesignHandler := handlers.NewAdminDesignHandler(services.Design)
	adminContentHandler := handlers.NewAdminContentHandler(services.Post, services.Link, services.Bio, services.Stats)
	designHandler := handlers.NewDesignHandler(services.Design)
	publicHandler := handlers.NewPublicHandler(services.Post, services.Link, services.Bio)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/signin", authHandler.Signin)
			r.Post("/signout", authHandler.Signout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminAuthHandler.Login)
			r.Post("/logout", adminAuthHandler.Logout)
			r.Get("/setup", adminAuthHandler.SetupStatus)
			r.Post("/setup", adminAuthHandler.Setup)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(services.Admin))

				r.Route("/users", func(r chi.Router) {
					r.Get("/", adminUserHandler.List)
					r.Post("/", adminUserHandler.Create)
					r.Get("/{id}", adminUserHandler.Get)
					r.Put("/{id}", adminUserHandler.Update)
					r.Delete("/{id}", adminUserHandler.Delete)
				})

				r.Route("/designs", func(r chi.Router) {
					r.Get("/", adminDesignHandler.List)
					r.Post("/", adminDesignHandler.Create)
					r.Get("/{id}", adminDesignHandler.Get)
					r.Put("/{id}", adminDesignHandler.Update)
					r.Delete("/{id}", adminDesignHandler.Delete)
					r.Put("/{id}/feature", adminDesignHandler.Feature)
				})

				r.Route("/posts", func(r chi.Router) {
					r.Get("/", adminContentHandler.ListPosts)
					r.Post("/", adminContentHandler.CreatePost)
					r.Get("/{id}", adminContentHandler.GetPost)
					r.Put("/{id}", adminContentHandler.UpdatePost)
					r.Delete("/{id}", adminContentHandler.DeletePost)
				})

				r.Route("/links", func(r chi.Router) {
					r.Get("/", adminContentHandler.ListLinks)
					r.Post("/", adminContentHandler.CreateLink)
					r.Get("/{id}", adminContentHandler.GetLink)
					r.Put("/{id}", adminContentHandler.UpdateLink)
					r.Delete("/{id}", adminContentHandler.DeleteLink)
				})

				r.Get("/bio", adminContentHandler.GetBio)
				r.Put("/bio", adminContentHandler.UpdateBio)
				r.Get("/stats", adminContentHandler.Stats)
				r.Get("/dashboard", adminContentHandler.Dashboard)
			})
		})

		r.Route("/designs", func(r chi.Router) {
			r.Get("/", designHandler.List)
			r.Post("/", designHandler.Create)
			r.Get("/{id}", designHandler.Get)
			r.Put("/{id}", designHandler.Update)
			r.Delete("/{id}", designHandler.Delete)
			r.Post("/{id}/like", designHandler.Like)
		})

		r.Get("/bio", publicHandler.Bio)
		r.Get("/links", publicHandler.Links)
		r.Get("/posts", publicHandler.Posts)
	})

	// Built frontend, when one is deployed alongside the API
	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
