package models

import "time"

// EnrollmentStatus is the stored state of an enrollment request.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// Valid reports whether s is one of the known enrollment states.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
		return true
	}
	return false
}

// Enrollment binds a student to a test. At most one row ever exists per
// (student, test); a rejected request is a closed decision, not retryable.
type Enrollment struct {
	ID             int64            `json:"id"`
	StudentID      int64            `json:"studentId"`
	TestID         int64            `json:"testId"`
	Status         EnrollmentStatus `json:"status"`
	RequestMessage string           `json:"requestMessage,omitempty"`
	AdminNotes     string           `json:"adminNotes,omitempty"`
	ApprovedBy     *int64           `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time       `json:"approvedAt,omitempty"`
	ExpiresAt      *time.Time       `json:"expiresAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`

	StudentName string `json:"studentName,omitempty"`
	TestTitle   string `json:"testTitle,omitempty"`
	ProgramName string `json:"programName,omitempty"`
}

// AccessGrantedAt reports whether this enrollment grants test access at the
// given instant. Expiry is derived at read time from expires_at; there is no
// stored "expired" state that could drift from wall-clock reality.
func (e *Enrollment) AccessGrantedAt(now time.Time) bool {
	if e == nil || e.Status != EnrollmentApproved {
		return false
	}
	return e.ExpiresAt == nil || e.ExpiresAt.After(now)
}
