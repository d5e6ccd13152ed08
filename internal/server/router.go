package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/akarwowski/lingocards-backend/internal/handlers"
	"github.com/akarwowski/lingocards-backend/internal/middleware"
)

type RouterConfig struct {
	SessionMiddleware *middleware.SessionMiddleware
	FlashcardHandler  *handlers.FlashcardHandler
	SessionHandler    *handlers.SessionHandler
	ProgressHandler   *handlers.ProgressHandler
	UserHandler       *handlers.UserHandler
	AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.SessionMiddleware.Attach())
	{
		// Session
		api.GET("/session", cfg.SessionHandler.Current)
		api.POST("/session/demo/logout", cfg.SessionHandler.DemoLogout)

		// Flashcards
		api.POST("/flashcards/generate", cfg.FlashcardHandler.Generate)
		api.GET("/flashcards", cfg.FlashcardHandler.List)
		api.DELETE("/flashcards/:category", cfg.FlashcardHandler.DeleteCategory)
		api.POST("/flashcards/import", cfg.SessionHandler.Import)

		// Progress
		api.GET("/progress", cfg.ProgressHandler.Stats)
		api.POST("/reviews", cfg.ProgressHandler.RecordAnswer)

		// Profile
		api.GET("/profile", cfg.UserHandler.GetProfile)
		api.PATCH("/profile/daily-goal", cfg.UserHandler.UpdateDailyGoal)
	}

	return router
}
