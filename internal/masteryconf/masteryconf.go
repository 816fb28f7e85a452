package masteryconf

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brightclass/brightclass-backend/internal/types"
)

// Config holds the mastery tunables. Weights, blend ratio, and bands are
// configuration, never re-derived at runtime.
type Config struct {
	// LevelWeights combine the six level scores into overall mastery.
	// Higher cognitive levels carry more weight.
	LevelWeights map[types.CognitiveLevel]float64 `yaml:"level_weights"`
	// BlendRatio is the weight a new assessment's percentage carries when
	// blended into the stored level score.
	BlendRatio float64 `yaml:"blend_ratio"`
	// ProficiencyThreshold marks scores below it as mastery gaps.
	ProficiencyThreshold float64 `yaml:"proficiency_threshold"`
	// GrowthWindow is the trailing window scanned for growth computation.
	GrowthWindow time.Duration `yaml:"-"`
	// Bands map overall mastery to a categorical label, ascending by Min.
	Bands []Band `yaml:"bands"`

	DefaultLeaderboardLimit int           `yaml:"default_leaderboard_limit"`
	MaxLeaderboardLimit     int           `yaml:"max_leaderboard_limit"`
	PartitionCacheTTL       time.Duration `yaml:"-"`
}

// fileConfig is the yaml overlay; durations arrive as plain integers.
type fileConfig struct {
	Config                   `yaml:",inline"`
	GrowthWindowDays         *int `yaml:"growth_window_days"`
	PartitionCacheTTLSeconds *int `yaml:"partition_cache_ttl_seconds"`
}

type Band struct {
	Min   float64            `yaml:"min"`
	Label types.MasteryLevel `yaml:"label"`
}

func Default() Config {
	return Config{
		LevelWeights: map[types.CognitiveLevel]float64{
			types.LevelRemember:   0.10,
			types.LevelUnderstand: 0.125,
			types.LevelApply:      0.15,
			types.LevelAnalyze:    0.175,
			types.LevelEvaluate:   0.20,
			types.LevelCreate:     0.25,
		},
		BlendRatio:           0.3,
		ProficiencyThreshold: 60,
		GrowthWindow:         30 * 24 * time.Hour,
		Bands: []Band{
			{Min: 0, Label: types.MasteryNovice},
			{Min: 40, Label: types.MasteryDeveloping},
			{Min: 60, Label: types.MasteryProficient},
			{Min: 75, Label: types.MasteryAdvanced},
			{Min: 90, Label: types.MasteryExpert},
		},
		DefaultLeaderboardLimit: 10,
		MaxLeaderboardLimit:     100,
		PartitionCacheTTL:       30 * time.Second,
	}
}

// Load reads overrides from a yaml file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read mastery config: %w", err)
	}
	overlay := fileConfig{Config: cfg}
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return cfg, fmt.Errorf("parse mastery config: %w", err)
	}
	cfg = overlay.Config
	if overlay.GrowthWindowDays != nil {
		cfg.GrowthWindow = time.Duration(*overlay.GrowthWindowDays) * 24 * time.Hour
	}
	if overlay.PartitionCacheTTLSeconds != nil {
		cfg.PartitionCacheTTL = time.Duration(*overlay.PartitionCacheTTLSeconds) * time.Second
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	sort.Slice(cfg.Bands, func(i, j int) bool { return cfg.Bands[i].Min < cfg.Bands[j].Min })
	return cfg, nil
}

func (c Config) validate() error {
	if c.BlendRatio <= 0 || c.BlendRatio > 1 {
		return fmt.Errorf("mastery config: blend_ratio must be in (0,1], got %v", c.BlendRatio)
	}
	if len(c.Bands) == 0 {
		return fmt.Errorf("mastery config: at least one band required")
	}
	var sum float64
	for _, level := range types.CognitiveLevels {
		w, ok := c.LevelWeights[level]
		if !ok {
			return fmt.Errorf("mastery config: missing weight for level %q", level)
		}
		if w < 0 {
			return fmt.Errorf("mastery config: weight for level %q must be >= 0", level)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("mastery config: level weights must sum to a positive value")
	}
	return nil
}

// Overall combines the six level scores with the configured weights.
func (c Config) Overall(levels types.LevelScores) float64 {
	var weighted, total float64
	levels.ForEachLevel(func(level types.CognitiveLevel, score float64) {
		w := c.LevelWeights[level]
		weighted += score * w
		total += w
	})
	if total == 0 {
		return 0
	}
	return weighted / total
}

// LevelFor returns the categorical label for an overall mastery score.
func (c Config) LevelFor(score float64) types.MasteryLevel {
	label := c.Bands[0].Label
	for _, b := range c.Bands {
		if score >= b.Min {
			label = b.Label
		}
	}
	return label
}
