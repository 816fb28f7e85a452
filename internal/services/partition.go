package services

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/brightclass/brightclass-backend/internal/masteryconf"
	pkgerrors "github.com/brightclass/brightclass-backend/internal/pkg/errors"
	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/repos"
	"github.com/brightclass/brightclass-backend/internal/types"
)

const defaultFanoutLimit = 4

// PartitionService ranks per-student mastery over a partition dimension.
type PartitionService interface {
	GetPartition(ctx context.Context, query PartitionQuery) (*PartitionResult, error)
	// GetMultiplePartitions computes partitions concurrently; one partition's
	// failure never fails its siblings.
	GetMultiplePartitions(ctx context.Context, queries []PartitionQuery) map[string]PartitionOutcome
}

type partitionService struct {
	records     repos.MasteryRecordRepo
	enrollments repos.EnrollmentRepo
	students    repos.StudentRepo
	cache       PartitionCache
	cfg         masteryconf.Config
	log         *logger.Logger
	fanoutLimit int
}

func NewPartitionService(
	records repos.MasteryRecordRepo,
	enrollments repos.EnrollmentRepo,
	students repos.StudentRepo,
	cache PartitionCache,
	cfg masteryconf.Config,
	baseLog *logger.Logger,
) PartitionService {
	return &partitionService{
		records:     records,
		enrollments: enrollments,
		students:    students,
		cache:       cache,
		cfg:         cfg,
		log:         baseLog.With("service", "PartitionService"),
		fanoutLimit: defaultFanoutLimit,
	}
}

// studentScore is one student's aggregate inside a partition before slicing.
type studentScore struct {
	studentID uuid.UUID
	score     float64
	perLevel  types.LevelScores
}

func (s *partitionService) GetPartition(ctx context.Context, query PartitionQuery) (*PartitionResult, error) {
	query.normalize(s.cfg)
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cacheKey := query.cacheKey()
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	filter, err := s.buildFilter(ctx, query)
	if err != nil {
		return nil, err
	}

	records, err := s.records.GetByFilter(ctx, nil, filter)
	if err != nil {
		return nil, pkgerrors.Store("partition: load mastery records", err)
	}

	ranked := rankStudents(records, query.Level)

	result := &PartitionResult{
		Entries:    make([]PartitionEntry, 0, query.Limit),
		TotalCount: len(ranked),
	}

	limit := query.Limit
	if limit > len(ranked) {
		limit = len(ranked)
	}
	for i := 0; i < limit; i++ {
		result.Entries = append(result.Entries, s.toEntry(i+1, ranked[i]))
	}

	if query.RequestingUserID != nil {
		requester := *query.RequestingUserID
		for i := limit; i < len(ranked); i++ {
			if ranked[i].studentID == requester {
				result.RequestingUser = &RankedEntry{
					Rank:  i + 1,
					Entry: s.toEntry(i+1, ranked[i]),
				}
				break
			}
		}
	}

	if err := s.attachDisplayNames(ctx, result); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, result, s.cfg.PartitionCacheTTL)
	}
	return result, nil
}

func (s *partitionService) GetMultiplePartitions(ctx context.Context, queries []PartitionQuery) map[string]PartitionOutcome {
	outcomes := make(map[string]PartitionOutcome, len(queries))
	if len(queries) == 0 {
		return outcomes
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanoutLimit)

	for _, query := range queries {
		query := query
		g.Go(func() error {
			result, err := s.GetPartition(gctx, query)
			mu.Lock()
			outcomes[query.Key()] = PartitionOutcome{Result: result, Err: err}
			mu.Unlock()
			// Failures are isolated per key; never cancel siblings.
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (s *partitionService) buildFilter(ctx context.Context, query PartitionQuery) (repos.MasteryFilter, error) {
	var filter repos.MasteryFilter
	switch query.Kind {
	case PartitionSubject:
		filter.SubjectID = query.ScopeID
	case PartitionTopic:
		filter.TopicID = query.ScopeID
	case PartitionClass:
		roster, err := s.enrollments.ActiveStudentIDs(ctx, nil, *query.ScopeID)
		if err != nil {
			return filter, pkgerrors.Store("partition: load class roster", err)
		}
		if roster == nil {
			roster = []uuid.UUID{}
		}
		filter.StudentIDs = roster
	}
	return filter, nil
}

// rankStudents groups records per student, averages the partition score, and
// sorts descending. Ties break ascending by student id so rank order is a
// deterministic contract, not an artifact of store return order.
func rankStudents(records []*types.MasteryRecord, level *types.CognitiveLevel) []studentScore {
	type accumulator struct {
		count    int
		sum      float64
		levelSum types.LevelScores
	}
	accs := make(map[uuid.UUID]*accumulator)
	order := make([]uuid.UUID, 0)

	for _, record := range records {
		acc, ok := accs[record.StudentID]
		if !ok {
			acc = &accumulator{}
			accs[record.StudentID] = acc
			order = append(order, record.StudentID)
		}
		acc.count++
		if level != nil {
			acc.sum += record.Levels.Get(*level)
		} else {
			acc.sum += record.OverallMastery
		}
		record.Levels.ForEachLevel(func(l types.CognitiveLevel, score float64) {
			acc.levelSum.Set(l, acc.levelSum.Get(l)+score)
		})
	}

	ranked := make([]studentScore, 0, len(accs))
	for _, studentID := range order {
		acc := accs[studentID]
		var perLevel types.LevelScores
		acc.levelSum.ForEachLevel(func(l types.CognitiveLevel, sum float64) {
			perLevel.Set(l, sum/float64(acc.count))
		})
		ranked = append(ranked, studentScore{
			studentID: studentID,
			score:     acc.sum / float64(acc.count),
			perLevel:  perLevel,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].studentID.String() < ranked[j].studentID.String()
	})
	return ranked
}

func (s *partitionService) toEntry(rank int, score studentScore) PartitionEntry {
	var perLevel types.LevelScores
	score.perLevel.ForEachLevel(func(l types.CognitiveLevel, v float64) {
		perLevel.Set(l, round1(v))
	})
	return PartitionEntry{
		Rank:             rank,
		StudentID:        score.studentID,
		Score:            round1(score.score),
		MasteryLevel:     s.cfg.LevelFor(score.score),
		PerLevelAverages: perLevel,
	}
}

func (s *partitionService) attachDisplayNames(ctx context.Context, result *PartitionResult) error {
	ids := make([]uuid.UUID, 0, len(result.Entries)+1)
	for _, entry := range result.Entries {
		ids = append(ids, entry.StudentID)
	}
	if result.RequestingUser != nil {
		ids = append(ids, result.RequestingUser.Entry.StudentID)
	}
	if len(ids) == 0 {
		return nil
	}

	students, err := s.students.GetByIDs(ctx, nil, ids)
	if err != nil {
		return pkgerrors.Store("partition: load display names", err)
	}
	names := make(map[uuid.UUID]string, len(students))
	for _, student := range students {
		names[student.ID] = student.DisplayName
	}
	for i := range result.Entries {
		result.Entries[i].DisplayName = names[result.Entries[i].StudentID]
	}
	if result.RequestingUser != nil {
		result.RequestingUser.Entry.DisplayName = names[result.RequestingUser.Entry.StudentID]
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
