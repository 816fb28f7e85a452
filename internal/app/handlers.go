package app

import (
	"github.com/brightclass/brightclass-backend/internal/handlers"
)

type Handlers struct {
	Mastery     *handlers.MasteryHandler
	Analytics   *handlers.AnalyticsHandler
	Leaderboard *handlers.LeaderboardHandler
}

func wireHandlers(serviceset Services, reposet Repos) Handlers {
	return Handlers{
		Mastery:     handlers.NewMasteryHandler(serviceset.Calculator, reposet.MasteryRecords),
		Analytics:   handlers.NewAnalyticsHandler(serviceset.Analytics),
		Leaderboard: handlers.NewLeaderboardHandler(serviceset.Partitions),
	}
}
