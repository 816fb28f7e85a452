package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/types"
)

type AssessmentResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.AssessmentResult) ([]*types.AssessmentResult, error)
	GetByStudentSince(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, since time.Time, subjectID *uuid.UUID) ([]*types.AssessmentResult, error)
}

type assessmentResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentResultRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentResultRepo {
	repoLog := baseLog.With("repo", "AssessmentResultRepo")
	return &assessmentResultRepo{db: db, log: repoLog}
}

func (r *assessmentResultRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AssessmentResult) ([]*types.AssessmentResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.AssessmentResult{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assessmentResultRepo) GetByStudentSince(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, since time.Time, subjectID *uuid.UUID) ([]*types.AssessmentResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AssessmentResult
	if studentID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("student_id = ? AND completed_at >= ?", studentID, since)
	if subjectID != nil {
		q = q.Where("subject_id = ?", *subjectID)
	}
	if err := q.Order("completed_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
