package dto

import (
	"time"

	"github.com/prasadasw/examportal/internal/app/models"
)

// AnswerScore is one per-answer grading entry in a review payload
type AnswerScore struct {
	QuestionID    int64    `json:"questionId"`
	MarksObtained *float64 `json:"marksObtained"`
	AdminNotes    string   `json:"adminNotes"`
}

// ReviewSubmissionRequest is the admin grading payload. When TotalScore is
// nil the total is recomputed from all persisted answers.
type ReviewSubmissionRequest struct {
	Answers    []AnswerScore `json:"answers"`
	AdminNotes string        `json:"adminNotes"`
	TotalScore *float64      `json:"totalScore"`
}

// ReviewSubmissionResponse is returned after a review pass
type ReviewSubmissionResponse struct {
	SubmissionID int64                   `json:"submissionId"`
	TotalScore   float64                 `json:"totalScore"`
	MaxScore     int                     `json:"maxScore"`
	Percentage   float64                 `json:"percentage"`
	Status       models.SubmissionStatus `json:"status"`
}

// ReleaseResultRequest is the payload for releasing a reviewed result
type ReleaseResultRequest struct {
	AdminNotes string `json:"adminNotes"`
}

// ReleaseResultResponse is returned after a result release
type ReleaseResultResponse struct {
	SubmissionID     int64                   `json:"submissionId"`
	Status           models.SubmissionStatus `json:"status"`
	TotalScore       *float64                `json:"totalScore,omitempty"`
	MaxScore         int                     `json:"maxScore"`
	Percentage       *float64                `json:"percentage,omitempty"`
	ResultReleasedAt time.Time               `json:"resultReleasedAt"`
}

// ReviewAnswer is one answer in the admin review detail, including the
// correct option which is never shown to students.
type ReviewAnswer struct {
	QuestionID     int64            `json:"questionId"`
	Question       *models.Question `json:"question,omitempty"`
	SelectedOption string           `json:"selectedOption"`
	CorrectOption  string           `json:"correctOption"`
	IsCorrect      *bool            `json:"isCorrect,omitempty"`
	MarksObtained  *float64         `json:"marksObtained,omitempty"`
	MaxMarks       int              `json:"maxMarks"`
	AdminNotes     string           `json:"adminNotes,omitempty"`
}

// ReviewDetailResponse is the full submission view for admin grading
type ReviewDetailResponse struct {
	SubmissionID int64                   `json:"submissionId"`
	StudentName  string                  `json:"studentName,omitempty"`
	Test         TestSummary             `json:"test"`
	StartedAt    time.Time               `json:"startedAt"`
	SubmittedAt  *time.Time              `json:"submittedAt,omitempty"`
	TimeTaken    *int                    `json:"timeTaken,omitempty"`
	Status       models.SubmissionStatus `json:"status"`
	Answers      []ReviewAnswer          `json:"answers"`
}

// SubmissionListFilter narrows the admin review listing. Page and PageSize
// are normalized before the query runs.
type SubmissionListFilter struct {
	Status    *models.SubmissionStatus
	TestID    *int64
	ProgramID *int64
	StudentID *int64
	Page      int
	PageSize  int
}

// SubmissionStatsResponse is the aggregate reporting view
type SubmissionStatsResponse struct {
	TotalSubmissions int                    `json:"totalSubmissions"`
	StatusBreakdown  SubmissionStatusCounts `json:"statusBreakdown"`
	PerformanceStats PerformanceStats       `json:"performanceStats"`
}

// SubmissionStatusCounts are per-status submission counts
type SubmissionStatusCounts struct {
	InProgress  int `json:"inProgress"`
	Submitted   int `json:"submitted"`
	UnderReview int `json:"underReview"`
	Released    int `json:"resultReleased"`
}

// PerformanceStats aggregate released results only
type PerformanceStats struct {
	AverageScore      float64 `json:"averageScore"`
	AveragePercentage float64 `json:"averagePercentage"`
	TotalCompleted    int     `json:"totalCompleted"`
}
