package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/masteryconf"
	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/repos"
	"github.com/brightclass/brightclass-backend/internal/types"
)

// AnalyticsService produces read-only rollups over mastery records. Store
// failures degrade to a zero-valued result with Degraded set instead of
// propagating; the shape is otherwise identical to the true-empty case.
type AnalyticsService interface {
	GetStudentAnalytics(ctx context.Context, studentID uuid.UUID, subjectID *uuid.UUID) (*StudentAnalytics, error)
	GetClassAnalytics(ctx context.Context, classID uuid.UUID, subjectID *uuid.UUID) (*ClassAnalytics, error)
}

type SubjectBreakdown struct {
	SubjectID      uuid.UUID `json:"subject_id"`
	AverageMastery float64   `json:"average_mastery"`
	TopicCount     int       `json:"topic_count"`
}

type TopicBreakdown struct {
	TopicID        uuid.UUID `json:"topic_id"`
	AverageMastery float64   `json:"average_mastery"`
	StudentCount   int       `json:"student_count"`
}

// MasteryGap is a topic below the configured proficiency threshold.
type MasteryGap struct {
	TopicID      uuid.UUID          `json:"topic_id"`
	Score        float64            `json:"score"`
	MasteryLevel types.MasteryLevel `json:"mastery_level"`
}

// GrowthReport is the score delta between the earliest and latest assessment
// in the trailing window. Fewer than two results yields all zeros, never nil.
type GrowthReport struct {
	Overall  float64           `json:"overall"`
	PerLevel types.LevelScores `json:"per_level"`
}

type StudentAnalytics struct {
	StudentID      uuid.UUID          `json:"student_id"`
	SubjectID      *uuid.UUID         `json:"subject_id,omitempty"`
	OverallMastery float64            `json:"overall_mastery"`
	MasteryLevel   types.MasteryLevel `json:"mastery_level"`
	TopicCount     int                `json:"topic_count"`
	PerSubject     []SubjectBreakdown `json:"per_subject"`
	PerLevel       types.LevelScores  `json:"per_level"`
	Gaps           []MasteryGap       `json:"gaps"`
	Growth         GrowthReport       `json:"growth"`
	// Degraded marks a store-failure fallback; a true-empty result has it false.
	Degraded bool `json:"degraded"`
}

type ClassAnalytics struct {
	ClassID        uuid.UUID                  `json:"class_id"`
	SubjectID      *uuid.UUID                 `json:"subject_id,omitempty"`
	StudentCount   int                        `json:"student_count"`
	AverageMastery float64                    `json:"average_mastery"`
	PerLevel       types.LevelScores          `json:"per_level"`
	PerTopic       []TopicBreakdown           `json:"per_topic"`
	Distribution   map[types.MasteryLevel]int `json:"distribution"`
	Gaps           []MasteryGap               `json:"gaps"`
	Degraded       bool                       `json:"degraded"`
}

type analyticsService struct {
	records     repos.MasteryRecordRepo
	results     repos.AssessmentResultRepo
	enrollments repos.EnrollmentRepo
	cfg         masteryconf.Config
	log         *logger.Logger
	now         func() time.Time
}

func NewAnalyticsService(
	records repos.MasteryRecordRepo,
	results repos.AssessmentResultRepo,
	enrollments repos.EnrollmentRepo,
	cfg masteryconf.Config,
	baseLog *logger.Logger,
) AnalyticsService {
	return &analyticsService{
		records:     records,
		results:     results,
		enrollments: enrollments,
		cfg:         cfg,
		log:         baseLog.With("service", "AnalyticsService"),
		now:         time.Now,
	}
}

func (s *analyticsService) GetStudentAnalytics(ctx context.Context, studentID uuid.UUID, subjectID *uuid.UUID) (*StudentAnalytics, error) {
	analytics := &StudentAnalytics{
		StudentID:    studentID,
		SubjectID:    subjectID,
		MasteryLevel: s.cfg.LevelFor(0),
		PerSubject:   []SubjectBreakdown{},
		Gaps:         []MasteryGap{},
	}

	records, err := s.records.GetByStudentID(ctx, nil, studentID, subjectID)
	if err != nil {
		s.log.Error("student analytics degraded to zero values", "student_id", studentID, "error", err)
		analytics.Degraded = true
		return analytics, nil
	}

	window := s.now().UTC().Add(-s.cfg.GrowthWindow)
	history, err := s.results.GetByStudentSince(ctx, nil, studentID, window, subjectID)
	if err != nil {
		s.log.Error("student analytics degraded to zero values", "student_id", studentID, "error", err)
		analytics.Degraded = true
		return analytics, nil
	}

	if len(records) == 0 {
		return analytics, nil
	}

	var overallSum float64
	var levelSums types.LevelScores
	subjectAccs := make(map[uuid.UUID]*SubjectBreakdown)
	subjectOrder := make([]uuid.UUID, 0)

	for _, record := range records {
		overallSum += record.OverallMastery
		record.Levels.ForEachLevel(func(level types.CognitiveLevel, score float64) {
			levelSums.Set(level, levelSums.Get(level)+score)
		})

		acc, ok := subjectAccs[record.SubjectID]
		if !ok {
			acc = &SubjectBreakdown{SubjectID: record.SubjectID}
			subjectAccs[record.SubjectID] = acc
			subjectOrder = append(subjectOrder, record.SubjectID)
		}
		acc.AverageMastery += record.OverallMastery
		acc.TopicCount++

		if record.OverallMastery < s.cfg.ProficiencyThreshold {
			analytics.Gaps = append(analytics.Gaps, MasteryGap{
				TopicID:      record.TopicID,
				Score:        round1(record.OverallMastery),
				MasteryLevel: s.cfg.LevelFor(record.OverallMastery),
			})
		}
	}

	count := float64(len(records))
	analytics.TopicCount = len(records)
	analytics.OverallMastery = round1(overallSum / count)
	analytics.MasteryLevel = s.cfg.LevelFor(overallSum / count)
	levelSums.ForEachLevel(func(level types.CognitiveLevel, sum float64) {
		analytics.PerLevel.Set(level, round1(sum/count))
	})

	for _, id := range subjectOrder {
		acc := subjectAccs[id]
		analytics.PerSubject = append(analytics.PerSubject, SubjectBreakdown{
			SubjectID:      acc.SubjectID,
			AverageMastery: round1(acc.AverageMastery / float64(acc.TopicCount)),
			TopicCount:     acc.TopicCount,
		})
	}

	// Worst gaps first.
	sort.SliceStable(analytics.Gaps, func(i, j int) bool {
		return analytics.Gaps[i].Score < analytics.Gaps[j].Score
	})

	analytics.Growth = s.computeGrowth(history)
	return analytics, nil
}

func (s *analyticsService) GetClassAnalytics(ctx context.Context, classID uuid.UUID, subjectID *uuid.UUID) (*ClassAnalytics, error) {
	analytics := &ClassAnalytics{
		ClassID:      classID,
		SubjectID:    subjectID,
		PerTopic:     []TopicBreakdown{},
		Distribution: map[types.MasteryLevel]int{},
		Gaps:         []MasteryGap{},
	}

	roster, err := s.enrollments.ActiveStudentIDs(ctx, nil, classID)
	if err != nil {
		s.log.Error("class analytics degraded to zero values", "class_id", classID, "error", err)
		analytics.Degraded = true
		return analytics, nil
	}
	if len(roster) == 0 {
		return analytics, nil
	}

	filter := repos.MasteryFilter{StudentIDs: roster, SubjectID: subjectID}
	records, err := s.records.GetByFilter(ctx, nil, filter)
	if err != nil {
		s.log.Error("class analytics degraded to zero values", "class_id", classID, "error", err)
		analytics.Degraded = true
		return analytics, nil
	}
	if len(records) == 0 {
		analytics.StudentCount = len(roster)
		return analytics, nil
	}

	var overallSum float64
	var levelSums types.LevelScores
	topicAccs := make(map[uuid.UUID]*TopicBreakdown)
	topicOrder := make([]uuid.UUID, 0)
	studentSums := make(map[uuid.UUID]*struct {
		sum   float64
		count int
	})

	for _, record := range records {
		overallSum += record.OverallMastery
		record.Levels.ForEachLevel(func(level types.CognitiveLevel, score float64) {
			levelSums.Set(level, levelSums.Get(level)+score)
		})

		acc, ok := topicAccs[record.TopicID]
		if !ok {
			acc = &TopicBreakdown{TopicID: record.TopicID}
			topicAccs[record.TopicID] = acc
			topicOrder = append(topicOrder, record.TopicID)
		}
		acc.AverageMastery += record.OverallMastery
		acc.StudentCount++

		st, ok := studentSums[record.StudentID]
		if !ok {
			st = &struct {
				sum   float64
				count int
			}{}
			studentSums[record.StudentID] = st
		}
		st.sum += record.OverallMastery
		st.count++
	}

	count := float64(len(records))
	analytics.StudentCount = len(roster)
	analytics.AverageMastery = round1(overallSum / count)
	levelSums.ForEachLevel(func(level types.CognitiveLevel, sum float64) {
		analytics.PerLevel.Set(level, round1(sum/count))
	})

	for _, id := range topicOrder {
		acc := topicAccs[id]
		avg := acc.AverageMastery / float64(acc.StudentCount)
		analytics.PerTopic = append(analytics.PerTopic, TopicBreakdown{
			TopicID:        acc.TopicID,
			AverageMastery: round1(avg),
			StudentCount:   acc.StudentCount,
		})
		if avg < s.cfg.ProficiencyThreshold {
			analytics.Gaps = append(analytics.Gaps, MasteryGap{
				TopicID:      acc.TopicID,
				Score:        round1(avg),
				MasteryLevel: s.cfg.LevelFor(avg),
			})
		}
	}

	sort.SliceStable(analytics.Gaps, func(i, j int) bool {
		return analytics.Gaps[i].Score < analytics.Gaps[j].Score
	})

	for _, st := range studentSums {
		analytics.Distribution[s.cfg.LevelFor(st.sum/float64(st.count))]++
	}

	return analytics, nil
}

// computeGrowth is the earliest-to-latest delta over the trailing window.
// History arrives sorted ascending by completion time.
func (s *analyticsService) computeGrowth(history []*types.AssessmentResult) GrowthReport {
	var growth GrowthReport
	if len(history) < 2 {
		return growth
	}

	earliest := history[0]
	latest := history[len(history)-1]

	growth.Overall = round1(s.assessmentOverall(latest) - s.assessmentOverall(earliest))
	for _, level := range types.CognitiveLevels {
		earlyPct, earlyOK := earliest.Percentage(level)
		latePct, lateOK := latest.Percentage(level)
		if !earlyOK || !lateOK {
			continue
		}
		growth.PerLevel.Set(level, round1(latePct-earlyPct))
	}
	return growth
}

// assessmentOverall weights the assessed levels only, normalizing the weights
// so a partially-assessed result still lands on the 0-100 scale.
func (s *analyticsService) assessmentOverall(result *types.AssessmentResult) float64 {
	var weighted, total float64
	for _, level := range types.CognitiveLevels {
		pct, assessed := result.Percentage(level)
		if !assessed {
			continue
		}
		w := s.cfg.LevelWeights[level]
		weighted += pct * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}
