package models

import "time"

// SubmissionStatus is the stored state of a test attempt. Transitions are
// forward-only: in_progress -> submitted -> under_review -> result_released.
type SubmissionStatus string

const (
	SubmissionInProgress     SubmissionStatus = "in_progress"
	SubmissionSubmitted      SubmissionStatus = "submitted"
	SubmissionUnderReview    SubmissionStatus = "under_review"
	SubmissionResultReleased SubmissionStatus = "result_released"
)

// Completed reports whether the attempt is past the point of answering.
func (s SubmissionStatus) Completed() bool {
	return s == SubmissionSubmitted || s == SubmissionUnderReview || s == SubmissionResultReleased
}

// Reviewable reports whether an admin may (re-)review the attempt.
func (s SubmissionStatus) Reviewable() bool {
	return s == SubmissionSubmitted || s == SubmissionUnderReview
}

// Submission is one student's single timed attempt at a test. Exactly one row
// exists per (student, test); it is causally tied to the enrollment that
// granted access.
type Submission struct {
	ID               int64            `json:"id"`
	StudentID        int64            `json:"studentId"`
	TestID           int64            `json:"testId"`
	EnrollmentID     int64            `json:"enrollmentId"`
	Status           SubmissionStatus `json:"status"`
	StartedAt        time.Time        `json:"startedAt"`
	SubmittedAt      *time.Time       `json:"submittedAt,omitempty"`
	TimeTaken        *int             `json:"timeTaken,omitempty"`
	TotalScore       *float64         `json:"totalScore,omitempty"`
	MaxScore         int              `json:"maxScore"`
	Percentage       *float64         `json:"percentage,omitempty"`
	AdminNotes       string           `json:"adminNotes,omitempty"`
	ReviewedBy       *int64           `json:"reviewedBy,omitempty"`
	ReviewedAt       *time.Time       `json:"reviewedAt,omitempty"`
	ResultReleasedAt *time.Time       `json:"resultReleasedAt,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`

	StudentName string `json:"studentName,omitempty"`
	TestTitle   string `json:"testTitle,omitempty"`
	ProgramName string `json:"programName,omitempty"`
}
