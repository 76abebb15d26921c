package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/notespath/backend/docs"
	"github.com/notespath/backend/internal/app"
	"github.com/notespath/backend/internal/config"
	"github.com/notespath/backend/internal/handlers"
	"github.com/notespath/backend/internal/logger"
	"github.com/notespath/backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const maxRequestSize = 50 * 1024 * 1024 // 50MB for file uploads

// @title NotesPath API
// @version 1.0
// @description API for sharing study notes and materials

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting NotesPath API",
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("blob_driver", cfg.Blob.Driver),
		zap.String("consistency_mode", cfg.ConsistencyMode),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	application, err := app.New(startCtx, cfg, logger.Logger)
	cancelStart()
	if err != nil {
		logger.Logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(application.Catalog, logger.Logger)
	materialHandler := handlers.NewMaterialHandler(application.Materials, logger.Logger)
	uploadHandler := handlers.NewUploadHandler(application.Uploads, logger.Logger)
	authHandler := handlers.NewAuthHandler(logger.Logger)
	profileHandler := handlers.NewProfileHandler(logger.Logger)
	healthHandler := handlers.NewHealthHandler(application.DB, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))
	r.Handle("/metrics", promhttp.Handler())
	healthHandler.RegisterRoutes(r)

	// Local blobs are served at their public URLs
	if application.Files != nil {
		handlers.NewStorageHandler(application.Files, logger.Logger).RegisterRoutes(r)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(application.Auth, cfg.CookieSecure, cfg.JWT.RefreshTokenExpiry, logger.Logger))

		authHandler.RegisterRoutes(r)
		catalogHandler.RegisterRoutes(r)
		materialHandler.RegisterRoutes(r)
		uploadHandler.RegisterRoutes(r)
		profileHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second, // Longer timeout for file uploads
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
