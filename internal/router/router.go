package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goal-board-api/internal/auth"
	"goal-board-api/internal/handler"
	"goal-board-api/internal/metrics"
	"goal-board-api/internal/middleware"
	"goal-board-api/internal/repository"
	"goal-board-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	JWTSecret      string
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Notifier       service.Notifier
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "goal-board-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "goal-board-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "goal-board-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "goal-board-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "goal-board-api"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Initialize repositories
	boardRepo := repository.NewBoardRepository(cfg.DB)
	userRepo := repository.NewUserRepository(cfg.DB)
	participantRepo := repository.NewParticipantRepository(cfg.DB)
	categoryRepo := repository.NewCategoryRepository(cfg.DB)
	goalRepo := repository.NewGoalRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	telegramLinkRepo := repository.NewTelegramLinkRepository(cfg.DB)

	// Initialize authorizer and services
	authorizer := auth.NewAuthorizer(participantRepo, categoryRepo, goalRepo)
	boardService := service.NewBoardService(boardRepo, userRepo, authorizer, cfg.Metrics, cfg.Logger)
	categoryService := service.NewCategoryService(categoryRepo, boardRepo, authorizer, cfg.Logger)
	goalService := service.NewGoalService(goalRepo, categoryRepo, authorizer, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, goalRepo, authorizer, cfg.Metrics, cfg.Logger)
	telegramService := service.NewTelegramService(telegramLinkRepo, cfg.Notifier, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	boardHandler := handler.NewBoardHandler(boardService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	goalHandler := handler.NewGoalHandler(goalService)
	commentHandler := handler.NewCommentHandler(commentService)
	telegramHandler := handler.NewTelegramHandler(telegramService)

	// API routes group
	api := r.Group(cfg.BasePath)
	api.Use(middleware.Auth(cfg.JWTSecret))

	boards := api.Group("/boards")
	{
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("", boardHandler.ListBoards)
		boards.GET("/:boardId", boardHandler.GetBoard)
		boards.PUT("/:boardId", boardHandler.UpdateBoard)
		boards.DELETE("/:boardId", boardHandler.DeleteBoard)
	}

	categories := api.Group("/categories")
	{
		categories.POST("", categoryHandler.CreateCategory)
		categories.GET("/board/:boardId", categoryHandler.ListCategories)
		categories.GET("/:categoryId", categoryHandler.GetCategory)
		categories.PUT("/:categoryId", categoryHandler.UpdateCategory)
		categories.DELETE("/:categoryId", categoryHandler.DeleteCategory)
	}

	goals := api.Group("/goals")
	{
		goals.POST("", goalHandler.CreateGoal)
		goals.GET("/category/:categoryId", goalHandler.ListGoals)
		goals.GET("/:goalId", goalHandler.GetGoal)
		goals.PUT("/:goalId", goalHandler.UpdateGoal)
		goals.DELETE("/:goalId", goalHandler.DeleteGoal)
	}

	comments := api.Group("/comments")
	{
		comments.POST("", commentHandler.CreateComment)
		comments.GET("/goal/:goalId", commentHandler.ListComments)
		comments.PUT("/:commentId", commentHandler.UpdateComment)
		comments.DELETE("/:commentId", commentHandler.DeleteComment)
	}

	telegram := api.Group("/telegram")
	{
		telegram.POST("/verify", telegramHandler.VerifyTelegram)
	}

	return r
}
