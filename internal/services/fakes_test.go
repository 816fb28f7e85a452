package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/repos"
	"github.com/brightclass/brightclass-backend/internal/types"
)

func testLogger() *logger.Logger {
	log, err := logger.New("test")
	if err != nil {
		panic(err)
	}
	return log
}

// fakeMasteryRecordRepo is an in-memory record store that counts calls so
// tests can assert whether the store was touched at all.
type fakeMasteryRecordRepo struct {
	records []*types.MasteryRecord
	err     error

	filterCalls  int
	studentCalls int
	pairCalls    int
	upsertCalls  int
}

func (f *fakeMasteryRecordRepo) calls() int {
	return f.filterCalls + f.studentCalls + f.pairCalls + f.upsertCalls
}

func (f *fakeMasteryRecordRepo) GetByFilter(_ context.Context, _ *gorm.DB, filter repos.MasteryFilter) ([]*types.MasteryRecord, error) {
	f.filterCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.MasteryRecord
	for _, r := range f.records {
		if filter.SubjectID != nil && r.SubjectID != *filter.SubjectID {
			continue
		}
		if filter.TopicID != nil && r.TopicID != *filter.TopicID {
			continue
		}
		if filter.StudentIDs != nil && !containsID(filter.StudentIDs, r.StudentID) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeMasteryRecordRepo) GetByStudentID(_ context.Context, _ *gorm.DB, studentID uuid.UUID, subjectID *uuid.UUID) ([]*types.MasteryRecord, error) {
	f.studentCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.MasteryRecord
	for _, r := range f.records {
		if r.StudentID != studentID {
			continue
		}
		if subjectID != nil && r.SubjectID != *subjectID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeMasteryRecordRepo) GetByStudentAndTopic(_ context.Context, _ *gorm.DB, studentID, topicID uuid.UUID) (*types.MasteryRecord, error) {
	f.pairCalls++
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.records {
		if r.StudentID == studentID && r.TopicID == topicID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMasteryRecordRepo) Upsert(_ context.Context, _ *gorm.DB, row *types.MasteryRecord) error {
	f.upsertCalls++
	if f.err != nil {
		return f.err
	}
	for i, r := range f.records {
		if r.StudentID == row.StudentID && r.TopicID == row.TopicID {
			f.records[i] = row
			return nil
		}
	}
	f.records = append(f.records, row)
	return nil
}

type fakeAssessmentResultRepo struct {
	results []*types.AssessmentResult
	err     error

	createCalls int
	sinceCalls  int
}

func (f *fakeAssessmentResultRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.AssessmentResult) ([]*types.AssessmentResult, error) {
	f.createCalls++
	if f.err != nil {
		return nil, f.err
	}
	f.results = append(f.results, rows...)
	return rows, nil
}

func (f *fakeAssessmentResultRepo) GetByStudentSince(_ context.Context, _ *gorm.DB, studentID uuid.UUID, since time.Time, subjectID *uuid.UUID) ([]*types.AssessmentResult, error) {
	f.sinceCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.AssessmentResult
	for _, r := range f.results {
		if r.StudentID != studentID || r.CompletedAt.Before(since) {
			continue
		}
		if subjectID != nil && r.SubjectID != *subjectID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeEnrollmentRepo struct {
	roster map[uuid.UUID][]uuid.UUID
	err    error

	rosterCalls int
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Enrollment) ([]*types.Enrollment, error) {
	return rows, nil
}

func (f *fakeEnrollmentRepo) ActiveStudentIDs(_ context.Context, _ *gorm.DB, classID uuid.UUID) ([]uuid.UUID, error) {
	f.rosterCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.roster[classID], nil
}

func (f *fakeEnrollmentRepo) Deactivate(_ context.Context, _ *gorm.DB, classID, studentID uuid.UUID) error {
	return nil
}

type fakeStudentRepo struct {
	students map[uuid.UUID]string
	err      error
}

func (f *fakeStudentRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Student) ([]*types.Student, error) {
	return rows, nil
}

func (f *fakeStudentRepo) GetByIDs(_ context.Context, _ *gorm.DB, ids []uuid.UUID) ([]*types.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Student
	for _, id := range ids {
		if name, ok := f.students[id]; ok {
			out = append(out, &types.Student{ID: id, DisplayName: name})
		}
	}
	return out, nil
}

type fakeTopicRepo struct {
	topics map[uuid.UUID]*types.Topic
	err    error
}

func (f *fakeTopicRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Topic) ([]*types.Topic, error) {
	return rows, nil
}

func (f *fakeTopicRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Topic, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.topics[id], nil
}

func (f *fakeTopicRepo) GetBySubjectID(_ context.Context, _ *gorm.DB, subjectID uuid.UUID) ([]*types.Topic, error) {
	return nil, nil
}

type fakeSubjectRepo struct {
	subjects map[uuid.UUID]*types.Subject
	err      error
}

func (f *fakeSubjectRepo) Create(_ context.Context, _ *gorm.DB, rows []*types.Subject) ([]*types.Subject, error) {
	return rows, nil
}

func (f *fakeSubjectRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.subjects[id], nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
