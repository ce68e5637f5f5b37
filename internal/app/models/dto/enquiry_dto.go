package dto

import "github.com/prasadasw/examportal/internal/app/models"

// CreateEnquiryRequest is the public enquiry intake payload
type CreateEnquiryRequest struct {
	FullName     string `json:"fullName" binding:"required,min=2,max=100"`
	MobileNumber string `json:"mobileNumber" binding:"required,min=10,max=15"`
	EmailAddress string `json:"emailAddress" binding:"omitempty,email"`
	Message      string `json:"message"`
	ProgramName  string `json:"programName" binding:"required,max=100"`
	Source       string `json:"source"`
}

// EnquiryListFilter narrows the admin enquiry listing. Search matches the
// full name or mobile number.
type EnquiryListFilter struct {
	Status   *models.EnquiryStatus
	Search   string
	Page     int
	PageSize int
}
