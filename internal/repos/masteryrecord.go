package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/types"
)

// MasteryFilter narrows a record scan to one partition dimension. All nil/empty
// fields load every record.
type MasteryFilter struct {
	SubjectID  *uuid.UUID
	TopicID    *uuid.UUID
	StudentIDs []uuid.UUID
}

type MasteryRecordRepo interface {
	GetByFilter(ctx context.Context, tx *gorm.DB, filter MasteryFilter) ([]*types.MasteryRecord, error)
	GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, subjectID *uuid.UUID) ([]*types.MasteryRecord, error)
	GetByStudentAndTopic(ctx context.Context, tx *gorm.DB, studentID, topicID uuid.UUID) (*types.MasteryRecord, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.MasteryRecord) error
}

type masteryRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasteryRecordRepo(db *gorm.DB, baseLog *logger.Logger) MasteryRecordRepo {
	repoLog := baseLog.With("repo", "MasteryRecordRepo")
	return &masteryRecordRepo{db: db, log: repoLog}
}

func (r *masteryRecordRepo) GetByFilter(ctx context.Context, tx *gorm.DB, filter MasteryFilter) ([]*types.MasteryRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx)
	if filter.SubjectID != nil {
		q = q.Where("subject_id = ?", *filter.SubjectID)
	}
	if filter.TopicID != nil {
		q = q.Where("topic_id = ?", *filter.TopicID)
	}
	if filter.StudentIDs != nil {
		if len(filter.StudentIDs) == 0 {
			return []*types.MasteryRecord{}, nil
		}
		q = q.Where("student_id IN ?", filter.StudentIDs)
	}

	var results []*types.MasteryRecord
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *masteryRecordRepo) GetByStudentID(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, subjectID *uuid.UUID) ([]*types.MasteryRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MasteryRecord
	if studentID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).Where("student_id = ?", studentID)
	if subjectID != nil {
		q = q.Where("subject_id = ?", *subjectID)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *masteryRecordRepo) GetByStudentAndTopic(ctx context.Context, tx *gorm.DB, studentID, topicID uuid.UUID) (*types.MasteryRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.MasteryRecord
	err := transaction.WithContext(ctx).
		Where("student_id = ? AND topic_id = ?", studentID, topicID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Upsert writes by the unique (student_id, topic_id) key in one statement.
// Concurrent writers to the same key are last-write-wins.
func (r *masteryRecordRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.MasteryRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "topic_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"subject_id",
				"level_remember", "level_understand", "level_apply",
				"level_analyze", "level_evaluate", "level_create",
				"overall_mastery", "last_assessment_date", "metadata", "updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return err
	}
	return nil
}
