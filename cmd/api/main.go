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

	_ "github.com/seeg/recruiting-platform/docs" // swagger docs

	"github.com/seeg/recruiting-platform/internal/config"
	"github.com/seeg/recruiting-platform/internal/platform/auth"
	httpPlatform "github.com/seeg/recruiting-platform/internal/platform/http"
	"github.com/seeg/recruiting-platform/internal/platform/logger"
	"github.com/seeg/recruiting-platform/internal/platform/notify"
	"github.com/seeg/recruiting-platform/internal/platform/postgres"
	"github.com/seeg/recruiting-platform/internal/platform/redis"
	"github.com/seeg/recruiting-platform/internal/platform/sentry"
	"github.com/seeg/recruiting-platform/internal/platform/storage"

	authHandler "github.com/seeg/recruiting-platform/modules/auth/handler"
	authRepo "github.com/seeg/recruiting-platform/modules/auth/repository"
	authService "github.com/seeg/recruiting-platform/modules/auth/service"

	userHandler "github.com/seeg/recruiting-platform/modules/users/handler"
	userRepo "github.com/seeg/recruiting-platform/modules/users/repository"
	userService "github.com/seeg/recruiting-platform/modules/users/service"

	offerHandler "github.com/seeg/recruiting-platform/modules/offers/handler"
	offerRepo "github.com/seeg/recruiting-platform/modules/offers/repository"
	offerService "github.com/seeg/recruiting-platform/modules/offers/service"

	appHandler "github.com/seeg/recruiting-platform/modules/applications/handler"
	appRepo "github.com/seeg/recruiting-platform/modules/applications/repository"
	appService "github.com/seeg/recruiting-platform/modules/applications/service"

	evalHandler "github.com/seeg/recruiting-platform/modules/evaluations/handler"
	evalRepo "github.com/seeg/recruiting-platform/modules/evaluations/repository"
	evalService "github.com/seeg/recruiting-platform/modules/evaluations/service"

	notifHandler "github.com/seeg/recruiting-platform/modules/notifications/handler"
	notifRepo "github.com/seeg/recruiting-platform/modules/notifications/repository"
	notifService "github.com/seeg/recruiting-platform/modules/notifications/service"

	etlHandler "github.com/seeg/recruiting-platform/modules/etl/handler"
	etlRepo "github.com/seeg/recruiting-platform/modules/etl/repository"
	etlService "github.com/seeg/recruiting-platform/modules/etl/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Seeg Recruiting Platform API
// @version 1.0
// @description Backend for the HR recruitment platform: job offers, candidate accounts, MTP-based applications, evaluations, and interviews.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@seeg.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := sentry.Init(cfg.Sentry.DSN, cfg.Server.Env); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error reporting", zap.Error(err))
	}
	defer sentry.Flush(2 * time.Second)

	logger.Info("Starting recruiting platform API server",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	ctx := context.Background()

	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()
	logger.Info("Connected to PostgreSQL")

	migrationsPath := "./migrations"
	if err := postgres.RunMigrations(ctx, cfg.Database, logger, migrationsPath); err != nil {
		logger.Fatal("Failed to run database migrations",
			zap.Error(err),
			zap.String("migrations_path", migrationsPath),
		)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	lakeWriter, err := storage.NewLakeWriter(cfg.S3)
	if err != nil {
		logger.Fatal("Failed to initialize object lake writer", zap.Error(err))
	}
	logger.Info("Object lake writer initialized", zap.String("bucket", cfg.S3.Bucket))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(sentry.Middleware())
	router.Use(httpPlatform.RequestIDMiddleware())
	router.Use(httpPlatform.LoggerMiddleware(logger))
	router.Use(httpPlatform.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(httpPlatform.TimeoutMiddleware(cfg.Server.RequestTimeout))

	if cfg.Server.Env != "production" {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI available at /swagger/index.html")
	}

	router.GET("/health", healthCheckHandler(ctx, pgClient, redisClient))
	router.GET("/ping", pingHandler)

	jwtManager := auth.NewJWTManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
	)

	authMiddleware := auth.AuthMiddleware(jwtManager)
	adminOnly := auth.RequireRole(auth.RoleAdmin)

	// Repositories
	userRepository := userRepo.NewUserRepository(pgClient.Pool)
	profileRepository := userRepo.NewCandidateProfileRepository(pgClient.Pool)
	accessRequestRepository := userRepo.NewAccessRequestRepository(pgClient.Pool)
	tokenRepository := authRepo.NewRefreshTokenRepository(pgClient.Pool)
	offerRepository := offerRepo.NewOfferRepository(pgClient.Pool)
	applicationRepository := appRepo.NewApplicationRepository(pgClient.Pool)
	evaluationRepository := evalRepo.NewEvaluationRepository(pgClient.Pool)
	notificationRepository := notifRepo.NewNotificationRepository(pgClient.Pool)
	reconciliationRepository := etlRepo.NewReconciliationRepository(pgClient.Pool)

	// The Fan-out Dispatcher and ETL Projector form the async half of the
	// Application Writer pipeline: submitting an
	// application enqueues a webhook call that the Projector answers.
	dispatcher := etlService.NewDispatcher(cfg.Webhook, reconciliationRepository, logger)
	projector := etlService.NewProjector(pgClient.Pool, lakeWriter, logger)

	notifyClient := notify.New(cfg.Email.APIKey, cfg.Email.FromEmail)

	// Services
	authSvc := authService.NewAuthService(
		pgClient.Pool,
		userRepository,
		profileRepository,
		accessRequestRepository,
		tokenRepository,
		jwtManager,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	userSvc := userService.NewUserService(userRepository, profileRepository, accessRequestRepository)
	offerSvc := offerService.NewOfferService(offerRepository)
	notificationSvc := notifService.NewNotificationService(notificationRepository, notifyClient, logger)
	applicationSvc := appService.NewApplicationService(pgClient.Pool, applicationRepository, offerRepository, redisClient, dispatcher, notificationSvc, userRepository, cfg.Document.SizeCapBytes)
	evaluationSvc := evalService.NewEvaluationService(evaluationRepository)

	// Handlers
	authHdl := authHandler.NewAuthHandler(authSvc)
	userHdl := userHandler.NewUserHandler(userSvc)
	offerHdl := offerHandler.NewOfferHandler(offerSvc)
	applicationHdl := appHandler.NewApplicationHandler(applicationSvc)
	evaluationHdl := evalHandler.NewEvaluationHandler(evaluationSvc)
	notificationHdl := notifHandler.NewNotificationHandler(notificationSvc)
	webhookHdl := etlHandler.NewWebhookHandler(projector, reconciliationRepository, logger)

	v1 := router.Group("/api/v1")
	{
		authHdl.RegisterRoutes(v1, authMiddleware)
		userHdl.RegisterRoutes(v1, authMiddleware, adminOnly)
		offerHdl.RegisterRoutes(v1, authMiddleware)
		applicationHdl.RegisterRoutes(v1, authMiddleware)
		evaluationHdl.RegisterRoutes(v1, authMiddleware)
		notificationHdl.RegisterRoutes(v1, authMiddleware)
		webhookHdl.RegisterRoutes(v1, cfg.Webhook.Secret)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// healthCheckHandler godoc
// @Summary Health Check
// @Description Check the health status of the application and its dependencies
// @Tags system
// @Produce json
// @Success 200 {object} http.HealthResponse
// @Router /health [get]
func healthCheckHandler(ctx context.Context, pgClient *postgres.Client, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := make(map[string]string)

		if err := pgClient.Health(ctx); err != nil {
			services["postgres"] = "down"
		} else {
			services["postgres"] = "up"
		}

		if err := redisClient.Health(ctx); err != nil {
			services["redis"] = "down"
		} else {
			services["redis"] = "up"
		}

		httpPlatform.RespondWithHealth(c, services)
	}
}

// pingHandler godoc
// @Summary Ping
// @Description Simple ping endpoint to check if the API is responding
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
