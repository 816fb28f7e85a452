package app

import (
	"strings"

	"github.com/brightclass/brightclass-backend/internal/masteryconf"
	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/platform/envutil"
)

type Config struct {
	Addr         string
	AllowOrigins []string
	// CacheBackend selects the partition cache: "redis", "memory", or "none".
	CacheBackend string
	Mastery      masteryconf.Config
}

func LoadConfig(log *logger.Logger) (Config, error) {
	masteryPath := envutil.String("MASTERY_CONFIG_PATH", "")
	mastery, err := masteryconf.Load(masteryPath)
	if err != nil {
		return Config{}, err
	}
	if masteryPath != "" {
		log.Info("Loaded mastery config overrides", "path", masteryPath)
	}

	origins := strings.Split(envutil.String("CORS_ALLOW_ORIGINS", "http://localhost:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return Config{
		Addr:         envutil.String("HTTP_ADDR", ":8080"),
		AllowOrigins: origins,
		CacheBackend: envutil.String("PARTITION_CACHE", "memory"),
		Mastery:      mastery,
	}, nil
}
