package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentResult is one completed assessment, with raw and maximum points
// per cognitive level. A level with MaxScore 0 was not assessed.
type AssessmentResult struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   *Student  `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	TopicID   uuid.UUID `gorm:"type:uuid;not null;index" json:"topic_id"`
	Topic     *Topic    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"topic,omitempty"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject   *Subject  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`

	Scores    LevelScores `gorm:"embedded;embeddedPrefix:raw_" json:"scores"`
	MaxScores LevelScores `gorm:"embedded;embeddedPrefix:max_" json:"max_scores"`

	CompletedAt time.Time      `gorm:"column:completed_at;not null;index" json:"completed_at"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AssessmentResult) TableName() string { return "assessment_result" }

// Percentage returns the level's score as a 0-100 percentage, and whether the
// level was assessed at all.
func (r *AssessmentResult) Percentage(level CognitiveLevel) (float64, bool) {
	max := r.MaxScores.Get(level)
	if max <= 0 {
		return 0, false
	}
	pct := r.Scores.Get(level) / max * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}
