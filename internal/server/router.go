package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/brightclass/brightclass-backend/internal/handlers"
	"github.com/brightclass/brightclass-backend/internal/middleware"
	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log                *logger.Logger
	AllowOrigins       []string
	MasteryHandler     *handlers.MasteryHandler
	AnalyticsHandler   *handlers.AnalyticsHandler
	LeaderboardHandler *handlers.LeaderboardHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog(cfg.Log))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/assessment-results", cfg.MasteryHandler.SubmitAssessmentResult)
		api.GET("/students/:id/mastery", cfg.MasteryHandler.GetStudentMastery)
		api.GET("/students/:id/analytics", cfg.AnalyticsHandler.GetStudentAnalytics)
		api.GET("/classes/:id/analytics", cfg.AnalyticsHandler.GetClassAnalytics)
		api.GET("/leaderboard", cfg.LeaderboardHandler.GetLeaderboard)
		api.POST("/leaderboard/batch", cfg.LeaderboardHandler.GetLeaderboards)
	}

	return router
}
