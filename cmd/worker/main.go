package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/database"
	"github.com/learnpath/backend/internal/repositories"
	"github.com/learnpath/backend/internal/services"
	"github.com/learnpath/backend/internal/tasks"
	"github.com/learnpath/backend/libs/config"
	"github.com/learnpath/backend/libs/logger"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

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

	logger.Logger.Info("Starting LearnPath Worker")

	// Connect to database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Reconciliation invalidates the API's cached reads, so it shares the API's cache driver
	readCache := cache.New(cfg.Cache.Driver, rdb, cfg.Cache.TTL)

	// Initialize repositories
	courseRepo := repositories.NewCourseRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	lessonResponseRepo := repositories.NewLessonResponseRepository(db)
	courseResponseRepo := repositories.NewCourseResponseRepository(db)
	userRepo := repositories.NewUserRepository(db)

	reconcileService := services.NewReconcileService(lessonResponseRepo, lessonRepo, lessonResponseRepo, courseResponseRepo, readCache, logger.Logger)

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				tasks.QueueNotifications: 5,
				tasks.QueueMaintenance:   1,
			},
		},
	)

	// Create worker instance
	worker := NewWorker(
		logger.Logger,
		userRepo,
		courseRepo,
		reconcileService,
		mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		cfg.SMTP.From,
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCourseCompleted, worker.HandleCourseCompleted)
	mux.HandleFunc(tasks.TypeReconcile, worker.HandleReconcile)

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()

	logger.Logger.Info("Worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}
