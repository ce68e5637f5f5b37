package dto

import (
	"time"

	"github.com/prasadasw/examportal/internal/app/models"
)

// RequestEnrollmentRequest is the payload for a student enrollment request
type RequestEnrollmentRequest struct {
	TestID         int64  `json:"testId" binding:"required"`
	RequestMessage string `json:"requestMessage"`
}

// EnrollmentResponse is returned after a successful enrollment request
type EnrollmentResponse struct {
	EnrollmentID int64                   `json:"enrollmentId"`
	TestTitle    string                  `json:"testTitle"`
	ProgramName  string                  `json:"programName,omitempty"`
	Status       models.EnrollmentStatus `json:"status"`
	RequestedAt  time.Time               `json:"requestedAt"`
}

// DecideEnrollmentRequest is the admin decision payload. ExpiresAt is only
// honored when the status is approved.
type DecideEnrollmentRequest struct {
	Status     models.EnrollmentStatus `json:"status" binding:"required,oneof=approved rejected"`
	AdminNotes string                  `json:"adminNotes"`
	ExpiresAt  *time.Time              `json:"expiresAt"`
}

// EnrollmentDecisionResponse is returned after an admin decision
type EnrollmentDecisionResponse struct {
	EnrollmentID int64                   `json:"enrollmentId"`
	StudentName  string                  `json:"studentName,omitempty"`
	TestTitle    string                  `json:"testTitle,omitempty"`
	Status       models.EnrollmentStatus `json:"status"`
	AdminNotes   string                  `json:"adminNotes,omitempty"`
	ApprovedAt   time.Time               `json:"approvedAt"`
	ExpiresAt    *time.Time              `json:"expiresAt,omitempty"`
}

// EnrollmentListFilter narrows the admin enrollment listing. Page and
// PageSize are normalized before the query runs.
type EnrollmentListFilter struct {
	Status    *models.EnrollmentStatus
	TestID    *int64
	ProgramID *int64
	Page      int
	PageSize  int
}

// TestAccessResponse reports whether a student may take a test right now
type TestAccessResponse struct {
	HasAccess    bool         `json:"hasAccess"`
	Message      string       `json:"message"`
	EnrollmentID int64        `json:"enrollmentId,omitempty"`
	Test         *TestSummary `json:"test,omitempty"`
	ApprovedAt   *time.Time   `json:"approvedAt,omitempty"`
	ExpiresAt    *time.Time   `json:"expiresAt,omitempty"`
}
