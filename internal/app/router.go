package app

import (
	"net/http"
	"time"

	apiHTTP "buddyboost/internal/controller/http"
	"buddyboost/internal/repo/persistent"
	"buddyboost/internal/usecase"
	"buddyboost/pkg/config"
	"buddyboost/pkg/jwt"
	"buddyboost/pkg/logger"
	"buddyboost/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "buddyboost/docs" // Swagger docs
)

// Deps are the collaborators the router wires into handlers. Redis, Images
// and Notifier may be nil; the features backed by them degrade.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *gorm.DB
	JWT      *jwt.Service
	Redis    *redis.Client
	Images   usecase.ImageStore
	Notifier *usecase.Notifier
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config

	// Repositories
	userRepo := persistent.NewUserRepository(deps.DB)
	postRepo := persistent.NewPostRepository(deps.DB)
	commentRepo := persistent.NewCommentRepository(deps.DB)
	reactionRepo := persistent.NewReactionRepository(deps.DB)

	// Use cases
	userUseCase := usecase.NewUserUseCase(userRepo, deps.JWT, deps.Logger)
	postUseCase := usecase.NewPostUseCase(postRepo, deps.Images, deps.Redis, deps.Logger)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, deps.Notifier, deps.Logger)
	reactionUseCase := usecase.NewReactionUseCase(reactionRepo, deps.Redis, deps.Notifier, deps.Logger)

	// HTTP handlers
	userHandler := apiHTTP.NewUserHandler(userUseCase)
	postHandler := apiHTTP.NewPostHandler(postUseCase)
	commentHandler := apiHTTP.NewCommentHandler(commentUseCase)
	reactionHandler := apiHTTP.NewReactionHandler(reactionUseCase)

	apiHTTP.RegisterValidation()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "BuddyBoost API is running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := middleware.RequireAuth(deps.JWT)
	limit := middleware.RateLimitMiddleware(deps.Redis, cfg.RateLimitPerMinute, time.Minute, deps.Logger)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		users.POST("/register", limit, userHandler.Register)
		users.POST("/login", limit, userHandler.Login)
		users.POST("/logout", userHandler.Logout)
		users.GET("/profile", authed(userHandler.Profile))
		users.DELETE("/delete", authed(userHandler.DeleteAccount))

		posts := api.Group("/posts")
		posts.POST("", limit, authed(postHandler.CreatePost))
		posts.POST("/images", limit, authed(postHandler.UploadImage))
		posts.GET("", postHandler.ListPosts)
		posts.GET("/user/:userId", postHandler.GetUserPosts)
		posts.GET("/:id", postHandler.GetPost)
		posts.PUT("/:id", limit, authed(postHandler.UpdatePost))
		posts.DELETE("/:id", authed(postHandler.DeletePost))

		comments := api.Group("/comments")
		comments.POST("", limit, authed(commentHandler.CreateComment))
		comments.GET("/post/:postId", commentHandler.GetPostComments)
		comments.GET("/user/:userId", commentHandler.GetUserComments)
		comments.GET("/:id", commentHandler.GetComment)
		comments.PUT("/:id", limit, authed(commentHandler.UpdateComment))
		comments.DELETE("/:id", authed(commentHandler.DeleteComment))

		reactions := api.Group("/reactions")
		reactions.POST("", limit, authed(reactionHandler.React))
		reactions.GET("/post/:postId", reactionHandler.GetPostReactions)
	}

	return r
}
