package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arya/athlete-insights/internal/api"
	"github.com/arya/athlete-insights/internal/config"
	"github.com/arya/athlete-insights/internal/logging"
	"github.com/arya/athlete-insights/internal/repository/postgres"
	"github.com/arya/athlete-insights/internal/service"
	"github.com/arya/athlete-insights/internal/session"
	"github.com/arya/athlete-insights/internal/view"
	"go.uber.org/zap"
)

func main() {
	logger, err := logging.Init(logging.ConfigFromEnv())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// The process must not accept connections without a database.
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	repos := postgres.NewRepositories(db)

	// Make sure the upload directory exists before the first multipart
	// request tries to write into it.
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal("failed to create upload directory", zap.Error(err))
	}

	// Session store: external cache when configured, process memory
	// otherwise.
	var store session.Store
	if cfg.ValkeyURL != "" {
		store, err = session.NewValkeyStore(cfg.ValkeyURL)
		if err != nil {
			logger.Fatal("failed to connect to valkey", zap.Error(err))
		}
		logger.Info("using valkey session store")
	} else {
		store = session.NewMemoryStore()
	}
	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL)

	renderer, err := view.NewRenderer(logger)
	if err != nil {
		logger.Fatal("failed to load templates", zap.Error(err))
	}

	services := service.NewServices(repos, cfg, logger)
	if !cfg.AIConfigured() {
		logger.Warn("GEMINI_API_KEY not set, AI analysis will use fallback responses")
	}

	router := api.NewRouter(services, sessions, renderer, cfg, logger)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
