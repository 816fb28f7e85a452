package app

import (
	"github.com/gin-gonic/gin"

	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                log,
		AllowOrigins:       cfg.AllowOrigins,
		MasteryHandler:     handlerset.Mastery,
		AnalyticsHandler:   handlerset.Analytics,
		LeaderboardHandler: handlerset.Leaderboard,
	})
}
