package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
)

// TestService handles catalog test management.
type TestService interface {
	Create(ctx context.Context, req *dto.CreateTestRequest) (*models.Test, error)
	Get(ctx context.Context, id int64) (*models.Test, error)
	List(ctx context.Context, programID *int64, activeOnly bool) ([]models.Test, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTestRequest) (*models.Test, error)
	Delete(ctx context.Context, id int64) error
}

type testService struct {
	tests    TestStore
	programs ProgramStore
}

// NewTestService creates a new TestService
func NewTestService(tests TestStore, programs ProgramStore) TestService {
	return &testService{tests: tests, programs: programs}
}

func (s *testService) Create(ctx context.Context, req *dto.CreateTestRequest) (*models.Test, error) {
	program, err := s.programs.GetByID(ctx, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, apperrors.NewResourceNotFoundError("Program not found")
	}

	test := &models.Test{
		ProgramID:   req.ProgramID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		TotalMarks:  req.TotalMarks,
		Active:      true,
		ProgramName: program.Name,
	}
	if err := s.tests.Create(ctx, test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *testService) Get(ctx context.Context, id int64) (*models.Test, error) {
	test, err := s.tests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, apperrors.NewResourceNotFoundError("Test not found")
	}
	return test, nil
}

func (s *testService) List(ctx context.Context, programID *int64, activeOnly bool) ([]models.Test, error) {
	return s.tests.List(ctx, programID, activeOnly)
}

func (s *testService) Update(ctx context.Context, id int64, req *dto.UpdateTestRequest) (*models.Test, error) {
	test, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, apperrors.NewValidationError("Duration must be positive")
		}
		test.Duration = *req.Duration
	}
	if req.TotalMarks != nil {
		if *req.TotalMarks < 0 {
			return nil, apperrors.NewValidationError("Total marks cannot be negative")
		}
		test.TotalMarks = *req.TotalMarks
	}
	if req.Active != nil {
		test.Active = *req.Active
	}

	if err := s.tests.Update(ctx, test); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Test not found")
		}
		return nil, err
	}
	return test, nil
}

func (s *testService) Delete(ctx context.Context, id int64) error {
	err := s.tests.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewResourceNotFoundError("Test not found")
	}
	return err
}
