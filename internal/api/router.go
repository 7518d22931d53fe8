package api

import (
	"net/http"

	"github.com/arya/athlete-insights/internal/api/handlers"
	"github.com/arya/athlete-insights/internal/api/middleware"
	"github.com/arya/athlete-insights/internal/config"
	"github.com/arya/athlete-insights/internal/service"
	"github.com/arya/athlete-insights/internal/session"
	"github.com/arya/athlete-insights/internal/view"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, sessions *session.Manager, renderer *view.Renderer, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Attach(sessions))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(services.Performance, services.Video, renderer)
	authHandler := handlers.NewAuthHandler(services.Auth, sessions, renderer)
	perfHandler := handlers.NewPerformanceHandler(services.Performance, renderer)
	analyzeHandler := handlers.NewAnalyzeHandler(services.Video, renderer, cfg.UploadDir, logger)

	// Landing / upload entry form
	r.Get("/", pageHandler.Index)

	r.Route("/users", func(r chi.Router) {
		// Public pages
		r.Get("/signup", pageHandler.SignupForm)
		r.Get("/login", pageHandler.LoginForm)
		r.Get("/upload", pageHandler.UploadForm)
		r.Get("/logout", authHandler.Logout)
		// Route spellings kept from the original site surface.
		r.Get("/leaderboad", pageHandler.Leaderboard)

		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/analyze", analyzeHandler.Analyze)

		// Session-gated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Require)
			r.Get("/profile", pageHandler.Profile)
			r.Get("/dashboad", pageHandler.Dashboard)
			r.Post("/performance", perfHandler.Submit)
		})
	})

	return r
}
