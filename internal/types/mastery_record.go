package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MasteryRecord tracks one student's demonstrated competency in one topic.
// Exactly one row exists per (student, topic) pair; the calculator upserts,
// every other component reads.
type MasteryRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index:idx_student_topic,unique" json:"student_id"`
	Student   *Student  `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	TopicID   uuid.UUID `gorm:"type:uuid;not null;index:idx_student_topic,unique" json:"topic_id"`
	Topic     *Topic    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"topic,omitempty"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject   *Subject  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`

	Levels         LevelScores `gorm:"embedded;embeddedPrefix:level_" json:"levels"`
	OverallMastery float64     `gorm:"column:overall_mastery;not null;default:0" json:"overall_mastery"`

	LastAssessmentDate time.Time      `gorm:"column:last_assessment_date;not null" json:"last_assessment_date"`
	Metadata           datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MasteryRecord) TableName() string { return "mastery_record" }
