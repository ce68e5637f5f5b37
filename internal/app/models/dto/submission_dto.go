package dto

import (
	"time"

	"github.com/prasadasw/examportal/internal/app/models"
)

// AnswerEntry is one answer in a submit payload. Entries missing either field
// or referencing questions outside the test are dropped, not rejected.
type AnswerEntry struct {
	QuestionID     int64  `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
}

// SubmitTestRequest is the payload for submitting a test attempt
type SubmitTestRequest struct {
	Answers []AnswerEntry `json:"answers"`
}

// StartTestResponse is returned when an attempt starts or resumes
type StartTestResponse struct {
	SubmissionID int64                   `json:"submissionId"`
	Test         TestSummary             `json:"test"`
	Questions    []StudentQuestion       `json:"questions"`
	StartedAt    time.Time               `json:"startedAt"`
	Status       models.SubmissionStatus `json:"status"`
	Resumed      bool                    `json:"resumed"`
}

// SubmitTestResponse is returned after a successful submit
type SubmitTestResponse struct {
	SubmissionID int64                   `json:"submissionId"`
	SubmittedAt  time.Time               `json:"submittedAt"`
	TimeTaken    int                     `json:"timeTaken"`
	AnswersSaved int                     `json:"answersSaved"`
	Status       models.SubmissionStatus `json:"status"`
}

// SubmissionStatusResponse reports the state of a student's attempt
type SubmissionStatusResponse struct {
	SubmissionID int64                   `json:"submissionId"`
	Status       models.SubmissionStatus `json:"status"`
	StartedAt    time.Time               `json:"startedAt"`
	SubmittedAt  *time.Time              `json:"submittedAt,omitempty"`
	TimeTaken    *int                    `json:"timeTaken,omitempty"`
	Test         TestSummary             `json:"test"`
}

// ReleasedAnswer is one scored answer as shown to the student after release
type ReleasedAnswer struct {
	Question       StudentQuestion `json:"question"`
	SelectedOption string          `json:"selectedOption"`
	IsCorrect      *bool           `json:"isCorrect,omitempty"`
	MarksObtained  *float64        `json:"marksObtained,omitempty"`
	MaxMarks       int             `json:"maxMarks"`
}

// SubmittedAnswersResponse is the student's post-release view of an attempt
type SubmittedAnswersResponse struct {
	SubmissionID int64            `json:"submissionId"`
	Test         TestSummary      `json:"test"`
	SubmittedAt  *time.Time       `json:"submittedAt,omitempty"`
	TimeTaken    *int             `json:"timeTaken,omitempty"`
	TotalScore   *float64         `json:"totalScore,omitempty"`
	MaxScore     int              `json:"maxScore"`
	Percentage   *float64         `json:"percentage,omitempty"`
	Answers      []ReleasedAnswer `json:"answers"`
}

// StudentResult is one row of a student's results listing
type StudentResult struct {
	SubmissionID int64      `json:"submissionId"`
	TestTitle    string     `json:"testTitle"`
	Score        float64    `json:"score"`
	TotalMarks   int        `json:"totalMarks"`
	Percentage   float64    `json:"percentage"`
	Status       string     `json:"status"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt   *time.Time `json:"reviewedAt,omitempty"`
}
