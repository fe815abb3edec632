package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buddyboost/internal/repo/persistent"
	"buddyboost/internal/usecase"
	"buddyboost/pkg/cache"
	"buddyboost/pkg/config"
	"buddyboost/pkg/database"
	"buddyboost/pkg/jwt"
	"buddyboost/pkg/logger"
	"buddyboost/pkg/queue"
	"buddyboost/pkg/s3"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	shutdownTimeout   = 5 * time.Second
	bucketInitTimeout = 10 * time.Second
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	notifier    *usecase.Notifier
	httpServer  *http.Server
}

// NewApp connects to the database and, when reachable, redis, S3 and RabbitMQ.
// Only the database is required.
func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET is not set; using the built-in default secret")
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (continuing without cache and rate limiting)", err)
		redisClient = nil
	}

	var s3Client *s3.Client
	if cfg.S3BucketName != "" {
		s3Client, err = s3.NewClient(cfg)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), bucketInitTimeout)
			err = s3Client.EnsureBucket(ctx)
			cancel()
		}
		if err != nil {
			log.Warn("Failed to initialise S3: %v (image upload disabled)", err)
			s3Client = nil
		}
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ: %v (continuing without notifications)", err)
		queueClient = nil
	}

	a := &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		queueClient: queueClient,
	}
	if queueClient != nil {
		a.notifier = usecase.NewNotifier(queueClient, persistent.NewPostRepository(db), log)
	}
	return a, nil
}

func (a *App) deps() Deps {
	deps := Deps{
		Config:   a.cfg,
		Logger:   a.log,
		DB:       a.db,
		JWT:      a.jwtService,
		Redis:    a.redisClient,
		Notifier: a.notifier,
	}
	// A typed nil pointer would make the interface non-nil.
	if a.s3Client != nil {
		deps.Images = a.s3Client
	}
	return deps
}

func (a *App) Run() error {
	gin.SetMode(gin.ReleaseMode)

	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           NewRouter(a.deps()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("BuddyBoost API starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down BuddyBoost API...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	// Publishes still in flight must reach the broker before the channel closes.
	if err := a.notifier.Wait(ctx); err != nil {
		a.log.Warn("Notifications still pending at shutdown: %v", err)
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("BuddyBoost API exited")
	return shutdownErr
}
