package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
)

// ProgramService handles catalog program management.
type ProgramService interface {
	Create(ctx context.Context, req *dto.CreateProgramRequest) (*models.Program, error)
	Get(ctx context.Context, id int64) (*models.Program, error)
	List(ctx context.Context) ([]models.Program, error)
	Update(ctx context.Context, id int64, req *dto.UpdateProgramRequest) (*models.Program, error)
	Delete(ctx context.Context, id int64) error
}

type programService struct {
	programs ProgramStore
}

// NewProgramService creates a new ProgramService
func NewProgramService(programs ProgramStore) ProgramService {
	return &programService{programs: programs}
}

func (s *programService) Create(ctx context.Context, req *dto.CreateProgramRequest) (*models.Program, error) {
	program := &models.Program{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.programs.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *programService) Get(ctx context.Context, id int64) (*models.Program, error) {
	program, err := s.programs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, apperrors.NewResourceNotFoundError("Program not found")
	}
	return program, nil
}

func (s *programService) List(ctx context.Context) ([]models.Program, error) {
	return s.programs.List(ctx)
}

func (s *programService) Update(ctx context.Context, id int64, req *dto.UpdateProgramRequest) (*models.Program, error) {
	program, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		program.Name = *req.Name
	}
	if req.Description != nil {
		program.Description = *req.Description
	}

	if err := s.programs.Update(ctx, program); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Program not found")
		}
		return nil, err
	}
	return program, nil
}

func (s *programService) Delete(ctx context.Context, id int64) error {
	err := s.programs.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewResourceNotFoundError("Program not found")
	}
	return err
}
