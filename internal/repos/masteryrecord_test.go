package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/repos/testutil"
	"github.com/brightclass/brightclass-backend/internal/types"
)

func TestMasteryRecordUpsertSingleRowPerPair(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewMasteryRecordRepo(db, testutil.Logger(t))

	student := testutil.SeedStudent(t, ctx, tx, "upsert@test.dev")
	subject := testutil.SeedSubject(t, ctx, tx, "Math")
	topic := testutil.SeedTopic(t, ctx, tx, subject.ID, "Fractions")

	row := &types.MasteryRecord{
		StudentID:      student.ID,
		TopicID:        topic.ID,
		SubjectID:      subject.ID,
		OverallMastery: 40,
	}
	row.Levels.Set(types.LevelApply, 40)
	if err := repo.Upsert(ctx, tx, row); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	update := &types.MasteryRecord{
		StudentID:      student.ID,
		TopicID:        topic.ID,
		SubjectID:      subject.ID,
		OverallMastery: 72,
	}
	update.Levels.Set(types.LevelApply, 72)
	if err := repo.Upsert(ctx, tx, update); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	if err := tx.Model(&types.MasteryRecord{}).
		Where("student_id = ? AND topic_id = ?", student.ID, topic.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row per (student, topic), got %d", count)
	}

	got, err := repo.GetByStudentAndTopic(ctx, tx, student.ID, topic.ID)
	if err != nil {
		t.Fatalf("GetByStudentAndTopic: %v", err)
	}
	if got == nil {
		t.Fatal("expected record after upsert")
	}
	if got.OverallMastery != 72 {
		t.Fatalf("expected overall 72 after second upsert, got %v", got.OverallMastery)
	}
	if got.Levels.Get(types.LevelApply) != 72 {
		t.Fatalf("expected level score 72, got %v", got.Levels.Get(types.LevelApply))
	}
}

func TestMasteryRecordGetByStudentAndTopicMissing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewMasteryRecordRepo(db, testutil.Logger(t))

	got, err := repo.GetByStudentAndTopic(context.Background(), tx, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("GetByStudentAndTopic: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing pair, got %+v", got)
	}
}

func TestMasteryRecordGetByFilter(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewMasteryRecordRepo(db, testutil.Logger(t))

	alice := testutil.SeedStudent(t, ctx, tx, "alice@test.dev")
	bob := testutil.SeedStudent(t, ctx, tx, "bob@test.dev")
	math := testutil.SeedSubject(t, ctx, tx, "Math")
	science := testutil.SeedSubject(t, ctx, tx, "Science")
	fractions := testutil.SeedTopic(t, ctx, tx, math.ID, "Fractions")
	cells := testutil.SeedTopic(t, ctx, tx, science.ID, "Cells")

	testutil.SeedMasteryRecord(t, ctx, tx, alice.ID, fractions.ID, math.ID, 80)
	testutil.SeedMasteryRecord(t, ctx, tx, alice.ID, cells.ID, science.ID, 65)
	testutil.SeedMasteryRecord(t, ctx, tx, bob.ID, fractions.ID, math.ID, 50)

	t.Run("by_subject", func(t *testing.T) {
		got, err := repo.GetByFilter(ctx, tx, MasteryFilter{SubjectID: &math.ID})
		if err != nil {
			t.Fatalf("GetByFilter: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 math records, got %d", len(got))
		}
	})

	t.Run("by_topic", func(t *testing.T) {
		got, err := repo.GetByFilter(ctx, tx, MasteryFilter{TopicID: &cells.ID})
		if err != nil {
			t.Fatalf("GetByFilter: %v", err)
		}
		if len(got) != 1 || got[0].StudentID != alice.ID {
			t.Fatalf("expected alice's cells record, got %+v", got)
		}
	})

	t.Run("by_students", func(t *testing.T) {
		got, err := repo.GetByFilter(ctx, tx, MasteryFilter{StudentIDs: []uuid.UUID{bob.ID}})
		if err != nil {
			t.Fatalf("GetByFilter: %v", err)
		}
		if len(got) != 1 || got[0].OverallMastery != 50 {
			t.Fatalf("expected bob's single record, got %+v", got)
		}
	})

	t.Run("empty_student_set", func(t *testing.T) {
		got, err := repo.GetByFilter(ctx, tx, MasteryFilter{StudentIDs: []uuid.UUID{}})
		if err != nil {
			t.Fatalf("GetByFilter: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("empty student set must match no rows, got %d", len(got))
		}
	})
}

func TestMasteryRecordGetByStudentIDSubjectScope(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewMasteryRecordRepo(db, testutil.Logger(t))

	student := testutil.SeedStudent(t, ctx, tx, "scoped@test.dev")
	math := testutil.SeedSubject(t, ctx, tx, "Math")
	science := testutil.SeedSubject(t, ctx, tx, "Science")
	fractions := testutil.SeedTopic(t, ctx, tx, math.ID, "Fractions")
	cells := testutil.SeedTopic(t, ctx, tx, science.ID, "Cells")

	testutil.SeedMasteryRecord(t, ctx, tx, student.ID, fractions.ID, math.ID, 80)
	testutil.SeedMasteryRecord(t, ctx, tx, student.ID, cells.ID, science.ID, 65)

	all, err := repo.GetByStudentID(ctx, tx, student.ID, nil)
	if err != nil {
		t.Fatalf("GetByStudentID: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records unscoped, got %d", len(all))
	}

	scoped, err := repo.GetByStudentID(ctx, tx, student.ID, &science.ID)
	if err != nil {
		t.Fatalf("GetByStudentID: %v", err)
	}
	if len(scoped) != 1 || scoped[0].TopicID != cells.ID {
		t.Fatalf("expected science record only, got %+v", scoped)
	}
}
