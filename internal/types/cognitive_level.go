package types

// CognitiveLevel is one of the six ordered Bloom's Taxonomy categories
// describing depth of demonstrated understanding.
type CognitiveLevel string

const (
	LevelRemember   CognitiveLevel = "remember"
	LevelUnderstand CognitiveLevel = "understand"
	LevelApply      CognitiveLevel = "apply"
	LevelAnalyze    CognitiveLevel = "analyze"
	LevelEvaluate   CognitiveLevel = "evaluate"
	LevelCreate     CognitiveLevel = "create"
)

// CognitiveLevels lists all levels in ascending order of cognitive depth.
var CognitiveLevels = []CognitiveLevel{
	LevelRemember,
	LevelUnderstand,
	LevelApply,
	LevelAnalyze,
	LevelEvaluate,
	LevelCreate,
}

func (c CognitiveLevel) Valid() bool {
	switch c {
	case LevelRemember, LevelUnderstand, LevelApply, LevelAnalyze, LevelEvaluate, LevelCreate:
		return true
	}
	return false
}

// LevelScores holds one score per cognitive level as named fields rather than
// a keyed map, so lookups are type-checked.
type LevelScores struct {
	Remember   float64 `gorm:"not null;default:0" json:"remember"`
	Understand float64 `gorm:"not null;default:0" json:"understand"`
	Apply      float64 `gorm:"not null;default:0" json:"apply"`
	Analyze    float64 `gorm:"not null;default:0" json:"analyze"`
	Evaluate   float64 `gorm:"not null;default:0" json:"evaluate"`
	Create     float64 `gorm:"not null;default:0" json:"create"`
}

func (s LevelScores) Get(level CognitiveLevel) float64 {
	switch level {
	case LevelRemember:
		return s.Remember
	case LevelUnderstand:
		return s.Understand
	case LevelApply:
		return s.Apply
	case LevelAnalyze:
		return s.Analyze
	case LevelEvaluate:
		return s.Evaluate
	case LevelCreate:
		return s.Create
	}
	return 0
}

func (s *LevelScores) Set(level CognitiveLevel, score float64) {
	switch level {
	case LevelRemember:
		s.Remember = score
	case LevelUnderstand:
		s.Understand = score
	case LevelApply:
		s.Apply = score
	case LevelAnalyze:
		s.Analyze = score
	case LevelEvaluate:
		s.Evaluate = score
	case LevelCreate:
		s.Create = score
	}
}

// ForEachLevel visits every level in ascending order.
func (s LevelScores) ForEachLevel(fn func(level CognitiveLevel, score float64)) {
	for _, level := range CognitiveLevels {
		fn(level, s.Get(level))
	}
}
