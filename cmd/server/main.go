// @title AI Form Builder API
// @version 1.0
// @description Backend API for the AI form builder: generation, editing, submissions and dashboard analytics
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@example.com
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api

package main

import (
	"aiformbuilder-be/config"
	"aiformbuilder-be/internal/database"
	"aiformbuilder-be/internal/handlers"
	"aiformbuilder-be/internal/logging"
	"aiformbuilder-be/internal/repository"
	"aiformbuilder-be/internal/router"
	"aiformbuilder-be/internal/services"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logging.Init(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to MongoDB
	mongodb, err := database.NewMongoDB(cfg.MongoDBURI, cfg.MongoDBDatabase, log)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongodb.Disconnect()

	// Initialize repositories
	formRepo := repository.NewFormConfigRepository(mongodb.Database)
	submissionRepo := repository.NewFormSubmissionRepository(mongodb.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := formRepo.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to create form indexes", zap.Error(err))
	}
	if err := submissionRepo.EnsureIndexes(ctx); err != nil {
		log.Warn("Failed to create submission indexes", zap.Error(err))
	}
	cancel()

	// AI provider; the builder and submissions keep working without one
	prompts, err := services.LoadPrompts()
	if err != nil {
		log.Fatal("Failed to load prompts", zap.Error(err))
	}
	completer, err := services.NewCompleter(context.Background(), cfg)
	switch {
	case errors.Is(err, services.ErrAINotConfigured):
		log.Warn("AI provider not configured; generation, improvement and analysis are disabled",
			zap.String("provider", cfg.AIProvider))
		completer = nil
	case err != nil:
		log.Fatal("Failed to initialize AI provider", zap.Error(err))
	default:
		log.Info("AI provider ready", zap.String("provider", cfg.AIProvider))
	}

	if cfg.RenderTokenSecret == config.DefaultRenderTokenSecret {
		log.Warn("RENDER_TOKEN_SECRET is not set; using the development default")
	}

	// Initialize services
	formService := services.NewFormService(formRepo, completer, prompts, log)
	submissionService := services.NewSubmissionService(formRepo, submissionRepo, cfg.RenderTokenSecret, cfg.RenderTokenTTL, log)
	dashboardService := services.NewDashboardService(formRepo, submissionRepo, log)
	analysisService := services.NewAnalysisService(submissionRepo, completer, prompts, log)

	// Initialize handlers
	r := router.Setup(cfg, log, router.Handlers{
		Health:      handlers.NewHealthHandler(mongodb, completer != nil),
		Forms:       handlers.NewFormHandler(formService, log),
		Submissions: handlers.NewSubmissionHandler(submissionService, log),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, analysisService, log),
	})

	log.Info("Server starting", zap.String("port", cfg.Port), zap.String("database", cfg.MongoDBDatabase))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
