package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightclass/brightclass-backend/internal/repos"
	"github.com/brightclass/brightclass-backend/internal/services"
	"github.com/brightclass/brightclass-backend/internal/types"
)

type MasteryHandler struct {
	calculator services.CalculatorService
	records    repos.MasteryRecordRepo
}

func NewMasteryHandler(calculator services.CalculatorService, records repos.MasteryRecordRepo) *MasteryHandler {
	return &MasteryHandler{calculator: calculator, records: records}
}

// SubmitAssessmentResult folds one completed assessment into the student's
// mastery record for the topic.
func (h *MasteryHandler) SubmitAssessmentResult(c *gin.Context) {
	var req struct {
		StudentID   uuid.UUID         `json:"student_id" binding:"required"`
		TopicID     uuid.UUID         `json:"topic_id" binding:"required"`
		SubjectID   uuid.UUID         `json:"subject_id" binding:"required"`
		Scores      types.LevelScores `json:"scores"`
		MaxScores   types.LevelScores `json:"max_scores"`
		CompletedAt time.Time         `json:"completed_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := &types.AssessmentResult{
		StudentID:   req.StudentID,
		TopicID:     req.TopicID,
		SubjectID:   req.SubjectID,
		Scores:      req.Scores,
		MaxScores:   req.MaxScores,
		CompletedAt: req.CompletedAt,
	}
	record, err := h.calculator.UpdateFromAssessmentResult(c.Request.Context(), req.StudentID, result)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record})
}

func (h *MasteryHandler) GetStudentMastery(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	var subjectID *uuid.UUID
	if raw := c.Query("subject_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject id"})
			return
		}
		subjectID = &id
	}

	records, err := h.records.GetByStudentID(c.Request.Context(), nil, studentID, subjectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
