package models

import "time"

// EnquiryStatus is the follow-up state of a prospect enquiry.
type EnquiryStatus string

const (
	EnquiryPending   EnquiryStatus = "pending"
	EnquiryContacted EnquiryStatus = "contacted"
	EnquiryEnrolled  EnquiryStatus = "enrolled"
	EnquiryRejected  EnquiryStatus = "rejected"
)

// Valid reports whether s is one of the known enquiry states.
func (s EnquiryStatus) Valid() bool {
	switch s {
	case EnquiryPending, EnquiryContacted, EnquiryEnrolled, EnquiryRejected:
		return true
	}
	return false
}

// Enquiry is a prospect's interest in a program, submitted without an
// account. Admins work the follow-up queue; nothing here links to a student
// identity.
type Enquiry struct {
	ID           int64         `json:"id"`
	FullName     string        `json:"fullName"`
	MobileNumber string        `json:"mobileNumber"`
	EmailAddress string        `json:"emailAddress,omitempty"`
	Message      string        `json:"message,omitempty"`
	ProgramName  string        `json:"programName"`
	Status       EnquiryStatus `json:"status"`
	Source       string        `json:"source"`
	AdminNotes   string        `json:"adminNotes,omitempty"`
	ContactedAt  *time.Time    `json:"contactedAt,omitempty"`
	ContactedBy  *int64        `json:"contactedBy,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
