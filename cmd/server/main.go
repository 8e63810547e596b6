// @title           Talentfolio Backend API
// @version         1.0.0
// @description     Backend API for creator portfolios and creative talent search. Handles onboarding, creator profiles, project galleries, media storage, background analysis jobs and website scraping.

// @contact.name   API Support
// @contact.email  support@example.com

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"talentfolio-backend/docs"
	"talentfolio-backend/internal/cache"
	"talentfolio-backend/internal/config"
	"talentfolio-backend/internal/database"
	"talentfolio-backend/internal/handlers"
	"talentfolio-backend/internal/middleware"
	"talentfolio-backend/internal/models"
	"talentfolio-backend/internal/ratelimit"
	"talentfolio-backend/internal/sanity"
	"talentfolio-backend/internal/services"
	"talentfolio-backend/internal/supabase"
	"talentfolio-backend/internal/trigger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Environment)
	defer logger.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Swagger host follows the deployed base URL.
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("initializing database client", zap.Error(err))
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("initializing migrator", zap.Error(err))
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		logger.Fatal("running migrations", zap.Error(err))
	}
	migrator.Close()
	logger.Info("migrations completed")

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		logger.Fatal("initializing supabase client", zap.Error(err))
	}
	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		logger.Fatal("initializing storage client", zap.Error(err))
	}
	eventsClient := supabase.NewEventsClient(supabaseClient.Supabase)

	triggerClient := trigger.NewClient(cfg.TriggerAPIBaseURL, cfg.TriggerAPIKey)
	if !triggerClient.Configured() {
		logger.Warn("TRIGGER_API_KEY not set; analysis and scraping are disabled")
	}

	sanityClient := sanity.NewClient(cfg.SanityAPIURL, cfg.SanityDataset, cfg.SanityAPIVersion, cfg.SanityToken)
	if !sanityClient.Configured() {
		logger.Warn("Sanity not configured; content routes will report an error")
	}

	// The limiter is optional. Without Redis every request passes.
	var limiter *ratelimit.FixedWindowLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		limiter, err = ratelimit.NewFixedWindowLimiter(redisClient, "talentfolio:ratelimit", 120, time.Minute)
		if err != nil {
			logger.Fatal("initializing rate limiter", zap.Error(err))
		}
	} else {
		logger.Warn("REDIS_ADDR not set; rate limiting is disabled")
	}

	projectService := services.NewProjectService(dbClient, storageClient, eventsClient, logger)
	taskService := services.NewTaskService(dbClient, triggerClient, eventsClient, logger)

	randomCache := cache.NewTTL[[]models.CreatorResponse](nil)
	contentCache := cache.NewTTL[json.RawMessage](nil)

	onboardingHandler := handlers.NewOnboardingHandler(dbClient, storageClient, logger)
	creatorsHandler := handlers.NewCreatorsHandler(dbClient, randomCache, logger)
	organizationsHandler := handlers.NewOrganizationsHandler(dbClient, logger)
	projectsHandler := handlers.NewProjectsHandler(dbClient, projectService, logger)
	mediaHandler := handlers.NewMediaHandler(dbClient, projectService, logger)
	analysisHandler := handlers.NewAnalysisHandler(dbClient, taskService, logger)
	scraperHandler := handlers.NewScraperHandler(dbClient, taskService, logger)
	contentHandler := handlers.NewContentHandler(sanityClient, contentCache, logger)
	webhookHandler := handlers.NewWebhookHandler(taskService, cfg.TriggerWebhookSecret, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.HealthHandler)

	// Public reads. Optional auth lets profile reads mark ownership.
	public := router.Group("/api/v1")
	public.Use(middleware.RateLimitMiddleware(limiter))
	public.Use(middleware.OptionalAuthMiddleware(cfg))
	public.GET("/creators", creatorsHandler.Search)
	public.GET("/creators/random", creatorsHandler.Random)
	public.GET("/creators/:username", creatorsHandler.Get)
	public.GET("/projects/:project_id", projectsHandler.Get)
	public.GET("/content/:type", contentHandler.Get)

	// Worker callbacks authenticate with the shared webhook secret.
	router.POST("/api/v1/webhooks/tasks", webhookHandler.TaskStatus)

	// Auth runs first so limits key on the user id instead of the IP.
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	api.Use(middleware.RateLimitMiddleware(limiter))

	api.GET("/onboarding/status", onboardingHandler.Status)
	api.POST("/onboarding/role", onboardingHandler.SetRole)
	api.POST("/onboarding/organization", onboardingHandler.SetOrganization)
	api.POST("/onboarding/profile", onboardingHandler.SetProfileInfo)
	api.POST("/onboarding/social-links", onboardingHandler.SetSocialLinks)
	api.POST("/onboarding/username", onboardingHandler.SetUsername)
	api.POST("/onboarding/profile-image", onboardingHandler.UploadProfileImage)

	api.PUT("/creators/:username", creatorsHandler.Update)
	api.GET("/organizations/me", organizationsHandler.Me)
	api.PUT("/organizations/me", organizationsHandler.Update)

	api.POST("/projects", projectsHandler.Create)
	api.GET("/projects", projectsHandler.List)
	api.PUT("/projects/:project_id", projectsHandler.Update)
	api.DELETE("/projects/:project_id", projectsHandler.Delete)

	api.POST("/projects/:project_id/media", mediaHandler.Upload)
	api.POST("/projects/:project_id/media/import", mediaHandler.Import)
	api.POST("/projects/:project_id/videos", mediaHandler.AttachVideo)
	api.PUT("/projects/:project_id/images/order", mediaHandler.Reorder)
	api.PUT("/media/:media_id", mediaHandler.UpdateMetadata)
	api.DELETE("/media/batch", mediaHandler.BatchDelete)
	api.DELETE("/media/:media_id", mediaHandler.Delete)

	api.POST("/analysis/portfolio", analysisHandler.StartPortfolio)
	api.POST("/analysis/projects/:project_id", analysisHandler.StartProject)
	api.GET("/analysis/jobs/:job_id", analysisHandler.JobStatus)
	api.POST("/analysis/jobs/:job_id/cancel", analysisHandler.Cancel)

	api.POST("/scrape", scraperHandler.Start)
	api.GET("/scrape/history", scraperHandler.History)
	api.POST("/scrape/:scrape_id/cancel", scraperHandler.Cancel)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(environment string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger
}
