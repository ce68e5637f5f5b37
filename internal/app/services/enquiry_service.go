package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

const defaultEnquirySource = "mobile_app"

// EnquiryService handles prospect enquiries: unauthenticated intake and the
// admin follow-up queue.
type EnquiryService interface {
	Create(ctx context.Context, req *dto.CreateEnquiryRequest) (*models.Enquiry, error)
	List(ctx context.Context, filter *dto.EnquiryListFilter) ([]models.Enquiry, error)
	Delete(ctx context.Context, id int64) error
}

type enquiryService struct {
	enquiries EnquiryStore
}

// NewEnquiryService creates a new EnquiryService
func NewEnquiryService(enquiries EnquiryStore) EnquiryService {
	return &enquiryService{enquiries: enquiries}
}

// Create records a new enquiry. The endpoint is public, so fields are trimmed
// and the source defaults when the client omits it.
func (s *enquiryService) Create(ctx context.Context, req *dto.CreateEnquiryRequest) (*models.Enquiry, error) {
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = defaultEnquirySource
	}

	enquiry := &models.Enquiry{
		FullName:     strings.TrimSpace(req.FullName),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		EmailAddress: strings.TrimSpace(req.EmailAddress),
		Message:      strings.TrimSpace(req.Message),
		ProgramName:  strings.TrimSpace(req.ProgramName),
		Status:       models.EnquiryPending,
		Source:       source,
	}
	if err := s.enquiries.Create(ctx, enquiry); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("enquiryId", enquiry.ID).
		Str("program", enquiry.ProgramName).
		Msg("Enquiry submitted")

	return enquiry, nil
}

// List returns the admin enquiry queue.
func (s *enquiryService) List(ctx context.Context, filter *dto.EnquiryListFilter) ([]models.Enquiry, error) {
	return s.enquiries.List(ctx, filter)
}

// Delete removes an enquiry.
func (s *enquiryService) Delete(ctx context.Context, id int64) error {
	err := s.enquiries.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewResourceNotFoundError("Enquiry not found")
	}
	return err
}
