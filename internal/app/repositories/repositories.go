package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    *StudentRepository
	AdminRepository      *AdminRepository
	ProgramRepository    *ProgramRepository
	TestRepository       *TestRepository
	QuestionRepository   *QuestionRepository
	EnrollmentRepository *EnrollmentRepository
	SubmissionRepository *SubmissionRepository
	AnswerRepository     *AnswerRepository
	EnquiryRepository    *EnquiryRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository:    NewStudentRepository(db),
		AdminRepository:      NewAdminRepository(db),
		ProgramRepository:    NewProgramRepository(db),
		TestRepository:       NewTestRepository(db),
		QuestionRepository:   NewQuestionRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		SubmissionRepository: NewSubmissionRepository(db),
		AnswerRepository:     NewAnswerRepository(db),
		EnquiryRepository:    NewEnquiryRepository(db),
	}
}
