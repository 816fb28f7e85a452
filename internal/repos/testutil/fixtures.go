package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightclass/brightclass-backend/internal/types"
)

func SeedStudent(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.Student {
	tb.Helper()
	s := &types.Student{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: email,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}

func SeedSubject(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Subject {
	tb.Helper()
	s := &types.Subject{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed subject: %v", err)
	}
	return s
}

func SeedTopic(tb testing.TB, ctx context.Context, tx *gorm.DB, subjectID uuid.UUID, name string) *types.Topic {
	tb.Helper()
	t := &types.Topic{
		ID:        uuid.New(),
		SubjectID: subjectID,
		Name:      name,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed topic: %v", err)
	}
	return t
}

func SeedClass(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Class {
	tb.Helper()
	c := &types.Class{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed class: %v", err)
	}
	return c
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, classID, studentID uuid.UUID, active bool) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{
		ID:        uuid.New(),
		ClassID:   classID,
		StudentID: studentID,
		Active:    active,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedMasteryRecord(tb testing.TB, ctx context.Context, tx *gorm.DB, studentID, topicID, subjectID uuid.UUID, overall float64) *types.MasteryRecord {
	tb.Helper()
	m := &types.MasteryRecord{
		ID:                 uuid.New(),
		StudentID:          studentID,
		TopicID:            topicID,
		SubjectID:          subjectID,
		OverallMastery:     overall,
		LastAssessmentDate: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed mastery record: %v", err)
	}
	return m
}
