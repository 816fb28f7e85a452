package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightclass/brightclass-backend/internal/masteryconf"
	pkgerrors "github.com/brightclass/brightclass-backend/internal/pkg/errors"
	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/repos"
	"github.com/brightclass/brightclass-backend/internal/types"
)

// CalculatorService is the only writer of mastery records. It folds one
// completed assessment into the (student, topic) record and keeps the
// persisted result history for growth analytics.
type CalculatorService interface {
	UpdateFromAssessmentResult(ctx context.Context, studentID uuid.UUID, result *types.AssessmentResult) (*types.MasteryRecord, error)
}

type calculatorService struct {
	txRunner repos.TxRunner
	records  repos.MasteryRecordRepo
	results  repos.AssessmentResultRepo
	topics   repos.TopicRepo
	subjects repos.SubjectRepo
	cfg      masteryconf.Config
	log      *logger.Logger
}

func NewCalculatorService(
	txRunner repos.TxRunner,
	records repos.MasteryRecordRepo,
	results repos.AssessmentResultRepo,
	topics repos.TopicRepo,
	subjects repos.SubjectRepo,
	cfg masteryconf.Config,
	baseLog *logger.Logger,
) CalculatorService {
	return &calculatorService{
		txRunner: txRunner,
		records:  records,
		results:  results,
		topics:   topics,
		subjects: subjects,
		cfg:      cfg,
		log:      baseLog.With("service", "CalculatorService"),
	}
}

func (s *calculatorService) UpdateFromAssessmentResult(ctx context.Context, studentID uuid.UUID, result *types.AssessmentResult) (*types.MasteryRecord, error) {
	if studentID == uuid.Nil {
		return nil, pkgerrors.NewValidation("student_id", "required")
	}
	if result == nil {
		return nil, pkgerrors.NewValidation("result", "required")
	}
	if result.TopicID == uuid.Nil {
		return nil, pkgerrors.NewValidation("topic_id", "required")
	}
	if result.SubjectID == uuid.Nil {
		return nil, pkgerrors.NewValidation("subject_id", "required")
	}

	topic, err := s.topics.GetByID(ctx, nil, result.TopicID)
	if err != nil {
		return nil, pkgerrors.Store("calculator: load topic", err)
	}
	if topic == nil {
		return nil, fmt.Errorf("topic %s: %w", result.TopicID, pkgerrors.ErrNotFound)
	}
	subject, err := s.subjects.GetByID(ctx, nil, result.SubjectID)
	if err != nil {
		return nil, pkgerrors.Store("calculator: load subject", err)
	}
	if subject == nil {
		return nil, fmt.Errorf("subject %s: %w", result.SubjectID, pkgerrors.ErrNotFound)
	}

	record, err := s.records.GetByStudentAndTopic(ctx, nil, studentID, result.TopicID)
	if err != nil {
		return nil, pkgerrors.Store("calculator: load mastery record", err)
	}

	firstAssessment := record == nil
	if firstAssessment {
		record = &types.MasteryRecord{
			ID:        uuid.New(),
			StudentID: studentID,
			TopicID:   result.TopicID,
			SubjectID: result.SubjectID,
		}
	}

	for _, level := range types.CognitiveLevels {
		pct, assessed := result.Percentage(level)
		if !assessed {
			continue
		}
		if firstAssessment {
			record.Levels.Set(level, pct)
			continue
		}
		blended := record.Levels.Get(level)*(1-s.cfg.BlendRatio) + pct*s.cfg.BlendRatio
		record.Levels.Set(level, clampScore(blended))
	}
	record.OverallMastery = clampScore(s.cfg.Overall(record.Levels))

	completedAt := result.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
		result.CompletedAt = completedAt
	}
	record.LastAssessmentDate = completedAt

	result.StudentID = studentID
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}

	err = s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.results.Create(ctx, tx, []*types.AssessmentResult{result}); err != nil {
			return fmt.Errorf("persist assessment result: %w", err)
		}
		if err := s.records.Upsert(ctx, tx, record); err != nil {
			return fmt.Errorf("upsert mastery record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Store("calculator: apply assessment", err)
	}

	s.log.Debug("mastery updated",
		"student_id", studentID,
		"topic_id", result.TopicID,
		"overall", record.OverallMastery,
	)
	return record, nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
