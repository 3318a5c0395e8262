package api

import (
	"log/slog"
	"net/http"

	"github.com/dom/devdreams-backend/internal/api/handlers"
	"github.com/dom/devdreams-backend/internal/api/middleware"
	"github.com/dom/devdreams-backend/internal/config"
	"github.com/dom/devdreams-backend/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Auth routes get 20 requests per 10-minute window per client address.
const authRateLimitMax = 20

func NewRouter(services *service.Services, limiter middleware.Limiter, cfg *config.Config, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS(cfg.FrontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	responder := handlers.NewResponder(cfg.IsProduction(), log)
	authHandler := handlers.NewAuthHandler(services.Auth, responder, cfg.IsProduction())
	oauthHandler := handlers.NewOAuthHandler(services.Google, services.Auth, responder, cfg.FrontendURL, cfg.IsProduction())
	postHandler := handlers.NewPostHandler(services.Post, responder)
	commentHandler := handlers.NewCommentHandler(services.Comment, responder)
	bookmarkHandler := handlers.NewBookmarkHandler(services.Bookmark, responder)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes, rate limited as a group
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter, authRateLimitMax))

			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/refreshToken", authHandler.RefreshToken)
			r.Post("/forgotPassword", authHandler.ForgotPassword)
			r.Patch("/resetPassword/{token}", authHandler.ResetPassword)

			r.Get("/google", oauthHandler.Begin)
			r.Get("/google/redirect", oauthHandler.Callback)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/signOut", authHandler.SignOut)
				r.Patch("/updatePassword", authHandler.UpdatePassword)
			})
		})

		// Post routes; reads are public, mutations require auth
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Get("/{id}", postHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", postHandler.Create)
				r.Delete("/{id}", postHandler.Delete)
				r.Post("/{postId}/like", postHandler.ToggleLike)
			})
		})

		// Comment routes
		r.Route("/comments", func(r chi.Router) {
			r.Get("/posts/{postId}", commentHandler.ListForPost)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/posts/{postId}", commentHandler.Create)
				r.Post("/comment/{commentId}/reply", commentHandler.Reply)
				r.Put("/comment/{commentId}/toggle-like", commentHandler.ToggleLike)
				r.Delete("/comment/{commentId}", commentHandler.Delete)
			})
		})

		// Bookmark routes
		r.Route("/bookmarks", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Post("/", bookmarkHandler.Create)
			r.Get("/", bookmarkHandler.List)
			r.Delete("/{id}", bookmarkHandler.Delete)
		})
	})

	return r
}
