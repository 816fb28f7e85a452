package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/types"
)

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Enrollment) ([]*types.Enrollment, error)
	// ActiveStudentIDs returns the roster used by class partitions and
	// class analytics: active, non-deleted enrollments only.
	ActiveStudentIDs(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]uuid.UUID, error)
	Deactivate(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) error
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	repoLog := baseLog.With("repo", "EnrollmentRepo")
	return &enrollmentRepo{db: db, log: repoLog}
}

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Enrollment) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Enrollment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *enrollmentRepo) ActiveStudentIDs(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if classID == uuid.Nil {
		return ids, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("class_id = ? AND active = ?", classID, true).
		Pluck("student_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *enrollmentRepo) Deactivate(ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if classID == uuid.Nil || studentID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Update("active", false).Error
}
