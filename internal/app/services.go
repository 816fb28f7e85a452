package app

import (
	redisclient "github.com/brightclass/brightclass-backend/internal/clients/redis"
	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/services"
)

type Services struct {
	Calculator services.CalculatorService
	Analytics  services.AnalyticsService
	Partitions services.PartitionService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	var cache services.PartitionCache
	switch cfg.CacheBackend {
	case "redis":
		redisCache, err := redisclient.NewPartitionCache(log)
		if err != nil {
			return Services{}, err
		}
		cache = redisCache
	case "memory":
		cache = services.NewMemoryCache(nil)
	default:
		// "none": partitions recompute on every request.
	}

	calculator := services.NewCalculatorService(
		reposet.TxRunner,
		reposet.MasteryRecords,
		reposet.AssessmentResults,
		reposet.Topics,
		reposet.Subjects,
		cfg.Mastery,
		log,
	)
	analytics := services.NewAnalyticsService(
		reposet.MasteryRecords,
		reposet.AssessmentResults,
		reposet.Enrollments,
		cfg.Mastery,
		log,
	)
	partitions := services.NewPartitionService(
		reposet.MasteryRecords,
		reposet.Enrollments,
		reposet.Students,
		cache,
		cfg.Mastery,
		log,
	)

	return Services{
		Calculator: calculator,
		Analytics:  analytics,
		Partitions: partitions,
	}, nil
}
