package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/masteryconf"
	pkgerrors "github.com/brightclass/brightclass-backend/internal/pkg/errors"
	"github.com/brightclass/brightclass-backend/internal/types"
)

// PartitionKind selects the slicing dimension a leaderboard is ranked over.
type PartitionKind string

const (
	PartitionGlobal         PartitionKind = "global"
	PartitionSubject        PartitionKind = "subject"
	PartitionTopic          PartitionKind = "topic"
	PartitionClass          PartitionKind = "class"
	PartitionCognitiveLevel PartitionKind = "cognitive_level"
)

type PartitionQuery struct {
	Kind PartitionKind `json:"kind"`
	// ScopeID identifies the subject, topic, or class being ranked; required
	// for those kinds, forbidden meaning-wise for the others (ignored).
	ScopeID *uuid.UUID `json:"scope_id,omitempty"`
	// Level is required when Kind is cognitive_level; scores then come from
	// that level instead of overall mastery.
	Level            *types.CognitiveLevel `json:"level,omitempty"`
	Limit            int                   `json:"limit"`
	RequestingUserID *uuid.UUID            `json:"requesting_user_id,omitempty"`
}

// Validate fails fast before any store access.
func (q PartitionQuery) Validate() error {
	switch q.Kind {
	case PartitionGlobal:
	case PartitionSubject, PartitionTopic, PartitionClass:
		if q.ScopeID == nil || *q.ScopeID == uuid.Nil {
			return pkgerrors.NewValidation("scope_id", fmt.Sprintf("required for kind %q", q.Kind))
		}
	case PartitionCognitiveLevel:
		if q.Level == nil {
			return pkgerrors.NewValidation("level", `required for kind "cognitive_level"`)
		}
		if !q.Level.Valid() {
			return pkgerrors.NewValidation("level", fmt.Sprintf("unknown cognitive level %q", *q.Level))
		}
	default:
		return pkgerrors.NewValidation("kind", fmt.Sprintf("unknown partition kind %q", q.Kind))
	}
	if q.Limit < 0 {
		return pkgerrors.NewValidation("limit", "must not be negative")
	}
	return nil
}

// Key identifies the partition independent of limit and requester; it is the
// map key for batch results.
func (q PartitionQuery) Key() string {
	switch q.Kind {
	case PartitionSubject, PartitionTopic, PartitionClass:
		if q.ScopeID != nil {
			return fmt.Sprintf("%s:%s", q.Kind, *q.ScopeID)
		}
		return string(q.Kind)
	case PartitionCognitiveLevel:
		if q.Level != nil {
			return fmt.Sprintf("%s:%s", q.Kind, *q.Level)
		}
		return string(q.Kind)
	default:
		return string(q.Kind)
	}
}

func (q PartitionQuery) cacheKey() string {
	key := fmt.Sprintf("partition:%s:limit=%d", q.Key(), q.Limit)
	if q.RequestingUserID != nil {
		key += ":u=" + q.RequestingUserID.String()
	}
	return key
}

func (q *PartitionQuery) normalize(cfg masteryconf.Config) {
	if q.Limit <= 0 {
		q.Limit = cfg.DefaultLeaderboardLimit
	}
	if cfg.MaxLeaderboardLimit > 0 && q.Limit > cfg.MaxLeaderboardLimit {
		q.Limit = cfg.MaxLeaderboardLimit
	}
}

// PartitionEntry is one ranked row of a leaderboard partition.
type PartitionEntry struct {
	Rank             int                `json:"rank"`
	StudentID        uuid.UUID          `json:"student_id"`
	DisplayName      string             `json:"display_name"`
	Score            float64            `json:"score"`
	MasteryLevel     types.MasteryLevel `json:"mastery_level"`
	PerLevelAverages types.LevelScores  `json:"per_level_averages"`
}

type RankedEntry struct {
	Rank  int            `json:"rank"`
	Entry PartitionEntry `json:"entry"`
}

type PartitionResult struct {
	Entries []PartitionEntry `json:"entries"`
	// RequestingUser is set only when the requester contributed to the
	// partition but fell outside the returned slice.
	RequestingUser *RankedEntry `json:"requesting_user,omitempty"`
	TotalCount     int          `json:"total_count"`
}

// PartitionOutcome isolates per-key failures in a batch request.
type PartitionOutcome struct {
	Result *PartitionResult `json:"result,omitempty"`
	Err    error            `json:"-"`
}
