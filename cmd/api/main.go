package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	_ "github.com/learnpath/backend/docs"
	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/database"
	"github.com/learnpath/backend/internal/handlers"
	"github.com/learnpath/backend/internal/repositories"
	"github.com/learnpath/backend/internal/services"
	"github.com/learnpath/backend/internal/session"
	"github.com/learnpath/backend/internal/tasks"
	"github.com/learnpath/backend/libs/auth/middleware"
	"github.com/learnpath/backend/libs/auth/service"
	"github.com/learnpath/backend/libs/config"
	"github.com/learnpath/backend/libs/logger"
	loggerMiddleware "github.com/learnpath/backend/libs/logger/middleware"
	sharedMiddleware "github.com/learnpath/backend/libs/middlewares"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title LearnPath API
// @version 1.0
// @description API for learning paths, lesson quizzes and course leaderboards

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
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

	logger.Logger.Info("Starting LearnPath API")

	// Connect to database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.MigrateUp(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis. The task queue always needs it, the cache and sessions only with the redis driver.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Create Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()
	enqueuer := tasks.NewEnqueuer(asynqClient)

	readCache := cache.New(cfg.Cache.Driver, rdb, cfg.Cache.TTL)
	sessions := session.New(cfg.Session.Driver, rdb, cfg.Session.TTL)

	// Initialize JWT token validator
	tokenValidator := service.NewTokenValidator(cfg.JWT.Secret)

	// Initialize repositories
	courseRepo := repositories.NewCourseRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	questionResponseRepo := repositories.NewQuestionResponseRepository(db)
	lessonResponseRepo := repositories.NewLessonResponseRepository(db)
	courseResponseRepo := repositories.NewCourseResponseRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Initialize services
	userLessonService := services.NewUserLessonService(courseRepo, lessonRepo, questionRepo, lessonResponseRepo, courseResponseRepo, readCache, logger.Logger)
	quizService := services.NewQuizService(lessonRepo, questionRepo, questionResponseRepo, lessonResponseRepo, courseResponseRepo, sessions, enqueuer, readCache, logger.Logger)
	rankService := services.NewRankService(courseRepo, lessonResponseRepo, courseResponseRepo, userRepo)
	adminService := services.NewAdminService(courseRepo, lessonRepo, questionRepo, readCache, logger.Logger)

	// Initialize handlers
	userLessonHandler := handlers.NewUserLessonHandler(userLessonService, logger.Logger)
	quizHandler := handlers.NewQuizHandler(quizService, logger.Logger)
	rankHandler := handlers.NewRankHandler(rankService, logger.Logger)
	adminHandler := handlers.NewAdminHandler(adminService, enqueuer, logger.Logger)

	// Initialize auth middleware
	authMiddleware := middleware.AuthMiddleware(tokenValidator)
	tutorMiddleware := middleware.RoleMiddleware(tokenValidator, service.RoleTutor)
	adminMiddleware := middleware.RoleMiddleware(tokenValidator, service.RoleAdmin)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(sharedMiddleware.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(sharedMiddleware.RecoveryMiddleware(logger.Logger))
	r.Use(sharedMiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(sharedMiddleware.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/swagger/doc.json", cfg.Server.PublicHost)),
	))

	r.Get("/health", healthHandler(db, rdb))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		userLessonHandler.RegisterRoutes(r, authMiddleware)
		quizHandler.RegisterRoutes(r, authMiddleware)
		rankHandler.RegisterRoutes(r, authMiddleware)
		adminHandler.RegisterRoutes(r, tutorMiddleware, adminMiddleware)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// healthHandler reports whether the database and Redis answer
func healthHandler(db *sql.DB, rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(ctx); err != nil {
			logger.Logger.Error("health check: database unavailable", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Logger.Error("health check: redis unavailable", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
