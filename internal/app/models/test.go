package models

import "time"

// Test belongs to a Program. Duration is in minutes and is advisory metadata
// returned to the client; the server does not cut off late submissions.
type Test struct {
	ID          int64     `json:"id"`
	ProgramID   int64     `json:"programId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Duration    int       `json:"duration"`
	TotalMarks  int       `json:"totalMarks"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	ProgramName string `json:"programName,omitempty"`
}
