package models

import "time"

// Answer is one student answer within a submission. is_correct and
// marks_obtained stay null until an admin reviews the answer; max_marks is
// copied from the question at submit time.
type Answer struct {
	ID             int64      `json:"id"`
	SubmissionID   int64      `json:"submissionId"`
	QuestionID     int64      `json:"questionId"`
	SelectedOption string     `json:"selectedOption"`
	IsCorrect      *bool      `json:"isCorrect,omitempty"`
	MarksObtained  *float64   `json:"marksObtained,omitempty"`
	MaxMarks       int        `json:"maxMarks"`
	AdminNotes     string     `json:"adminNotes,omitempty"`
	ReviewedBy     *int64     `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	Question *Question `json:"question,omitempty"`
}
