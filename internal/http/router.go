package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/devlinkhq/devlink-api/internal/auth"
	"github.com/devlinkhq/devlink-api/internal/config"
	"github.com/devlinkhq/devlink-api/internal/httputil"
	"github.com/devlinkhq/devlink-api/internal/logging"
	"github.com/devlinkhq/devlink-api/internal/post"
	"github.com/devlinkhq/devlink-api/internal/profile"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	cfg *config.Config,
	authHandler *auth.Handler,
	profileHandler *profile.Handler,
	postHandler *post.Handler,
	authMiddleware *auth.Middleware,
	logger *logging.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", auth.TokenHeader},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Use(SecurityHeaders)
	r.Use(LimitBody)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	r.Get("/health", handleHealth)

	// Swagger UI - development only
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger ui enabled", "path", "/swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/api", func(r chi.Router) {
		// Registration and login are public
		r.Post("/users", authHandler.Register)
		r.Post("/auth", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/auth", authHandler.Me)
		})

		r.Route("/profile", func(r chi.Router) {
			// Public reads
			r.Get("/", profileHandler.All)
			r.Get("/user/{userID}", profileHandler.ByUser)
			r.Get("/github/{username}", profileHandler.Github)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Get("/me", profileHandler.Me)
				r.Post("/", profileHandler.Upsert)
				r.Delete("/", profileHandler.DeleteAccount)

				r.Post("/experience", profileHandler.AddExperience)
				r.Put("/experience/{id}", profileHandler.UpdateExperience)
				r.Delete("/experience/{id}", profileHandler.RemoveExperience)

				r.Post("/education", profileHandler.AddEducation)
				r.Put("/education/{id}", profileHandler.UpdateEducation)
				r.Delete("/education/{id}", profileHandler.RemoveEducation)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Get("/", postHandler.Mine)
			r.Get("/all", postHandler.All)
			r.Post("/", postHandler.Create)
			r.Get("/{id}", postHandler.ByID)
			r.Delete("/{id}", postHandler.Delete)
			r.Put("/{id}/like", postHandler.Like)
			r.Put("/{id}/unlike", postHandler.Unlike)
			r.Post("/{id}/comment", postHandler.Comment)
			r.Delete("/{postID}/comment/{commentID}", postHandler.DeleteComment)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
