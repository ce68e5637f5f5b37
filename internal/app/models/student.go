package models

import "time"

// Student represents a registered student identity. The mobile number is the
// unique login identifier.
type Student struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Mobile        string    `json:"mobile"`
	Qualification string    `json:"qualification,omitempty"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
