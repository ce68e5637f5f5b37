package services

import (
	"context"
	"time"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/repositories"
)

// Store interfaces abstract the repository layer so services can be exercised
// against in-memory fakes. The pgx repositories satisfy them.

// StudentStore persists student identities
type StudentStore interface {
	Create(ctx context.Context, s *models.Student) error
	GetByMobile(ctx context.Context, mobile string) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
}

// AdminStore persists admin identities
type AdminStore interface {
	Create(ctx context.Context, a *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
}

// ProgramStore persists catalog programs
type ProgramStore interface {
	Create(ctx context.Context, p *models.Program) error
	GetByID(ctx context.Context, id int64) (*models.Program, error)
	List(ctx context.Context) ([]models.Program, error)
	Update(ctx context.Context, p *models.Program) error
	Delete(ctx context.Context, id int64) error
}

// TestStore persists catalog tests
type TestStore interface {
	Create(ctx context.Context, t *models.Test) error
	GetByID(ctx context.Context, id int64) (*models.Test, error)
	List(ctx context.Context, programID *int64, activeOnly bool) ([]models.Test, error)
	Update(ctx context.Context, t *models.Test) error
	Delete(ctx context.Context, id int64) error
}

// QuestionStore persists catalog questions
type QuestionStore interface {
	Create(ctx context.Context, q *models.Question) error
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	ListByTest(ctx context.Context, testID int64) ([]models.Question, error)
	Delete(ctx context.Context, id int64) error
}

// EnrollmentStore persists enrollment requests and decisions
type EnrollmentStore interface {
	Create(ctx context.Context, e *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetByStudentAndTest(ctx context.Context, studentID, testID int64) (*models.Enrollment, error)
	Decide(ctx context.Context, id int64, status models.EnrollmentStatus, adminID int64, notes string, decidedAt time.Time, expiresAt *time.Time) (bool, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error)
	List(ctx context.Context, filter *dto.EnrollmentListFilter) ([]models.Enrollment, error)
}

// SubmissionStore persists attempts and their compound writes
type SubmissionStore interface {
	InsertIfAbsent(ctx context.Context, s *models.Submission) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	GetByStudentAndTest(ctx context.Context, studentID, testID int64) (*models.Submission, error)
	SubmitWithAnswers(ctx context.Context, submissionID int64, answers []models.Answer, submittedAt time.Time, timeTaken int) error
	ReviewWithScores(ctx context.Context, update repositories.ReviewUpdate) (totalScore, percentage float64, err error)
	Release(ctx context.Context, id int64, adminNotes string, releasedAt time.Time) (*models.Submission, error)
	ListForReview(ctx context.Context, filter *dto.SubmissionListFilter) ([]models.Submission, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Submission, error)
	Stats(ctx context.Context, testID, programID *int64) (*repositories.SubmissionStats, error)
}

// AnswerStore reads persisted answers
type AnswerStore interface {
	ListBySubmission(ctx context.Context, submissionID int64) ([]models.Answer, error)
}

// EnquiryStore persists prospect enquiries
type EnquiryStore interface {
	Create(ctx context.Context, e *models.Enquiry) error
	List(ctx context.Context, filter *dto.EnquiryListFilter) ([]models.Enquiry, error)
	Delete(ctx context.Context, id int64) error
}
