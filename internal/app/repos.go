package app

import (
	"gorm.io/gorm"

	"github.com/brightclass/brightclass-backend/internal/pkg/logger"
	"github.com/brightclass/brightclass-backend/internal/repos"
)

type Repos struct {
	TxRunner          repos.TxRunner
	MasteryRecords    repos.MasteryRecordRepo
	AssessmentResults repos.AssessmentResultRepo
	Enrollments       repos.EnrollmentRepo
	Topics            repos.TopicRepo
	Subjects          repos.SubjectRepo
	Students          repos.StudentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		TxRunner:          repos.NewGormTxRunner(db),
		MasteryRecords:    repos.NewMasteryRecordRepo(db, log),
		AssessmentResults: repos.NewAssessmentResultRepo(db, log),
		Enrollments:       repos.NewEnrollmentRepo(db, log),
		Topics:            repos.NewTopicRepo(db, log),
		Subjects:          repos.NewSubjectRepo(db, log),
		Students:          repos.NewStudentRepo(db, log),
	}
}
