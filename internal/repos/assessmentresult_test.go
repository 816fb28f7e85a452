package repos

import (
	"context"
	"testing"
	"time"

	"github.com/brightclass/brightclass-backend/internal/repos/testutil"
	"github.com/brightclass/brightclass-backend/internal/types"
)

func TestAssessmentResultGetByStudentSince(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewAssessmentResultRepo(db, testutil.Logger(t))

	student := testutil.SeedStudent(t, ctx, tx, "since@test.dev")
	subject := testutil.SeedSubject(t, ctx, tx, "Math")
	topic := testutil.SeedTopic(t, ctx, tx, subject.ID, "Fractions")

	now := time.Now().UTC()
	stale := now.Add(-60 * 24 * time.Hour)
	mid := now.Add(-10 * 24 * time.Hour)
	recent := now.Add(-1 * 24 * time.Hour)

	rows := []*types.AssessmentResult{
		{StudentID: student.ID, TopicID: topic.ID, SubjectID: subject.ID, CompletedAt: recent},
		{StudentID: student.ID, TopicID: topic.ID, SubjectID: subject.ID, CompletedAt: stale},
		{StudentID: student.ID, TopicID: topic.ID, SubjectID: subject.ID, CompletedAt: mid},
	}
	for i := range rows {
		rows[i].MaxScores.Set(types.LevelApply, 100)
		rows[i].Scores.Set(types.LevelApply, 75)
	}
	if _, err := repo.Create(ctx, tx, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByStudentSince(ctx, tx, student.ID, now.Add(-30*24*time.Hour), nil)
	if err != nil {
		t.Fatalf("GetByStudentSince: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results inside window, got %d", len(got))
	}
	if !got[0].CompletedAt.Before(got[1].CompletedAt) {
		t.Fatalf("results must be ordered ascending by completion: %v then %v",
			got[0].CompletedAt, got[1].CompletedAt)
	}
}

func TestAssessmentResultSubjectScope(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewAssessmentResultRepo(db, testutil.Logger(t))

	student := testutil.SeedStudent(t, ctx, tx, "scope@test.dev")
	math := testutil.SeedSubject(t, ctx, tx, "Math")
	science := testutil.SeedSubject(t, ctx, tx, "Science")
	fractions := testutil.SeedTopic(t, ctx, tx, math.ID, "Fractions")
	cells := testutil.SeedTopic(t, ctx, tx, science.ID, "Cells")

	now := time.Now().UTC()
	rows := []*types.AssessmentResult{
		{StudentID: student.ID, TopicID: fractions.ID, SubjectID: math.ID, CompletedAt: now.Add(-2 * time.Hour)},
		{StudentID: student.ID, TopicID: cells.ID, SubjectID: science.ID, CompletedAt: now.Add(-1 * time.Hour)},
	}
	if _, err := repo.Create(ctx, tx, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByStudentSince(ctx, tx, student.ID, now.Add(-24*time.Hour), &science.ID)
	if err != nil {
		t.Fatalf("GetByStudentSince: %v", err)
	}
	if len(got) != 1 || got[0].TopicID != cells.ID {
		t.Fatalf("expected science result only, got %+v", got)
	}
}
