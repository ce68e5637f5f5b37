package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/repositories"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

// EnrollmentService handles enrollment requests, admin decisions and access
// checks.
type EnrollmentService interface {
	Request(ctx context.Context, studentID int64, req *dto.RequestEnrollmentRequest) (*dto.EnrollmentResponse, error)
	Decide(ctx context.Context, enrollmentID, adminID int64, req *dto.DecideEnrollmentRequest) (*dto.EnrollmentDecisionResponse, error)
	CheckAccess(ctx context.Context, studentID, testID int64) (*dto.TestAccessResponse, error)
	ListMine(ctx context.Context, studentID int64) ([]models.Enrollment, error)
	ListAll(ctx context.Context, filter *dto.EnrollmentListFilter) ([]models.Enrollment, error)
}

type enrollmentService struct {
	enrollments EnrollmentStore
	tests       TestStore
	now         func() time.Time
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollments EnrollmentStore, tests TestStore) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		tests:       tests,
		now:         time.Now,
	}
}

// Request creates a pending enrollment request for the student. The
// (student, test) pair admits a single row ever: a pending, approved or
// rejected row all block a new request, each with its own conflict message.
func (s *enrollmentService) Request(ctx context.Context, studentID int64, req *dto.RequestEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	test, err := s.tests.GetByID(ctx, req.TestID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, apperrors.NewResourceNotFoundError("Test not found")
	}

	existing, err := s.enrollments.GetByStudentAndTest(ctx, studentID, req.TestID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, enrollmentConflict(existing.Status)
	}

	enrollment := &models.Enrollment{
		StudentID:      studentID,
		TestID:         req.TestID,
		Status:         models.EnrollmentPending,
		RequestMessage: req.RequestMessage,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		// Lost the race against a concurrent request for the same pair;
		// report the same conflict the pre-check would have.
		if errors.Is(err, repositories.ErrDuplicateEnrollment) {
			winner, lookupErr := s.enrollments.GetByStudentAndTest(ctx, studentID, req.TestID)
			if lookupErr == nil && winner != nil {
				return nil, enrollmentConflict(winner.Status)
			}
			return nil, enrollmentConflict(models.EnrollmentPending)
		}
		return nil, err
	}

	logger.Info().
		Int64("studentId", studentID).
		Int64("testId", req.TestID).
		Int64("enrollmentId", enrollment.ID).
		Msg("Enrollment requested")

	return &dto.EnrollmentResponse{
		EnrollmentID: enrollment.ID,
		TestTitle:    test.Title,
		ProgramName:  test.ProgramName,
		Status:       enrollment.Status,
		RequestedAt:  enrollment.CreatedAt,
	}, nil
}

// Decide applies an admin decision to a pending enrollment. The decision is
// one-shot: only a pending row can be decided, and the pending guard lives in
// the store's UPDATE so concurrent decisions cannot both win.
func (s *enrollmentService) Decide(ctx context.Context, enrollmentID, adminID int64, req *dto.DecideEnrollmentRequest) (*dto.EnrollmentDecisionResponse, error) {
	if req.Status != models.EnrollmentApproved && req.Status != models.EnrollmentRejected {
		return nil, apperrors.NewValidationError("Status must be approved or rejected")
	}

	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, apperrors.NewResourceNotFoundError("Enrollment request not found")
	}

	var expiresAt *time.Time
	if req.Status == models.EnrollmentApproved {
		expiresAt = req.ExpiresAt
	}

	decidedAt := s.now()
	won, err := s.enrollments.Decide(ctx, enrollmentID, req.Status, adminID, req.AdminNotes, decidedAt, expiresAt)
	if err != nil {
		return nil, err
	}
	if !won {
		current, lookupErr := s.enrollments.GetByID(ctx, enrollmentID)
		status := enrollment.Status
		if lookupErr == nil && current != nil {
			status = current.Status
		}
		return nil, apperrors.NewConflictError(fmt.Sprintf("Enrollment request has already been %s", status))
	}

	logger.Info().
		Int64("enrollmentId", enrollmentID).
		Int64("adminId", adminID).
		Str("status", string(req.Status)).
		Msg("Enrollment decided")

	return &dto.EnrollmentDecisionResponse{
		EnrollmentID: enrollmentID,
		StudentName:  enrollment.StudentName,
		TestTitle:    enrollment.TestTitle,
		Status:       req.Status,
		AdminNotes:   req.AdminNotes,
		ApprovedAt:   decidedAt,
		ExpiresAt:    expiresAt,
	}, nil
}

// CheckAccess reports whether the student may take the test right now. Access
// is a pure derivation over the enrollment row: approved, and not expired at
// this instant. Nothing is stored; the same row can flip to denied the moment
// expires_at passes.
func (s *enrollmentService) CheckAccess(ctx context.Context, studentID, testID int64) (*dto.TestAccessResponse, error) {
	test, err := s.tests.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, apperrors.NewResourceNotFoundError("Test not found")
	}

	enrollment, err := s.enrollments.GetByStudentAndTest(ctx, studentID, testID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !enrollment.AccessGrantedAt(now) {
		return &dto.TestAccessResponse{
			HasAccess: false,
			Message:   accessDeniedMessage(enrollment, now),
		}, nil
	}

	return &dto.TestAccessResponse{
		HasAccess:    true,
		Message:      "You have access to this test",
		EnrollmentID: enrollment.ID,
		Test:         testSummary(test),
		ApprovedAt:   enrollment.ApprovedAt,
		ExpiresAt:    enrollment.ExpiresAt,
	}, nil
}

// ListMine returns the student's own enrollment requests.
func (s *enrollmentService) ListMine(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	return s.enrollments.ListByStudent(ctx, studentID)
}

// ListAll returns enrollment requests for the admin view, optionally filtered
// by status, test or program.
func (s *enrollmentService) ListAll(ctx context.Context, filter *dto.EnrollmentListFilter) ([]models.Enrollment, error) {
	if filter != nil && filter.Status != nil && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("Invalid enrollment status filter")
	}
	return s.enrollments.List(ctx, filter)
}

func enrollmentConflict(status models.EnrollmentStatus) error {
	switch status {
	case models.EnrollmentApproved:
		return apperrors.NewConflictError("You are already enrolled in this test")
	case models.EnrollmentRejected:
		return apperrors.NewConflictError("Your previous enrollment request was rejected. Please contact the admin for more information")
	default:
		return apperrors.NewConflictError("You already have a pending enrollment request for this test")
	}
}

func accessDeniedMessage(e *models.Enrollment, now time.Time) string {
	switch {
	case e == nil:
		return "You do not have access to this test. Please request enrollment first"
	case e.Status == models.EnrollmentPending:
		return "Your enrollment request is pending approval"
	case e.Status == models.EnrollmentRejected:
		return "Your enrollment request was rejected"
	case e.ExpiresAt != nil && !e.ExpiresAt.After(now):
		return "Your access to this test has expired"
	default:
		return "You do not have access to this test"
	}
}
