package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
)

// QuestionImages carries the stored references of any images uploaded with a
// question. The controller saves the files; the service only records the refs.
type QuestionImages struct {
	Question string
	OptionA  string
	OptionB  string
	OptionC  string
	OptionD  string
}

// QuestionService handles catalog question management.
type QuestionService interface {
	Create(ctx context.Context, req *dto.CreateQuestionRequest, images QuestionImages) (*models.Question, error)
	Get(ctx context.Context, id int64) (*models.Question, error)
	ListByTest(ctx context.Context, testID int64) ([]models.Question, error)
	Delete(ctx context.Context, id int64) error
}

type questionService struct {
	questions QuestionStore
	tests     TestStore
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(questions QuestionStore, tests TestStore) QuestionService {
	return &questionService{questions: questions, tests: tests}
}

// Create adds a question to a test. Each question needs either text or an
// image, and every option must carry text or an image.
func (s *questionService) Create(ctx context.Context, req *dto.CreateQuestionRequest, images QuestionImages) (*models.Question, error) {
	test, err := s.tests.GetByID(ctx, req.TestID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, apperrors.NewResourceNotFoundError("Test not found")
	}

	if req.QuestionText == "" && images.Question == "" {
		return nil, apperrors.NewValidationError("Question needs text or an image")
	}
	options := []struct {
		name  string
		text  string
		image string
	}{
		{"A", req.OptionA, images.OptionA},
		{"B", req.OptionB, images.OptionB},
		{"C", req.OptionC, images.OptionC},
		{"D", req.OptionD, images.OptionD},
	}
	for _, opt := range options {
		if opt.text == "" && opt.image == "" {
			return nil, apperrors.NewValidationError("Option " + opt.name + " needs text or an image")
		}
	}

	question := &models.Question{
		TestID:        req.TestID,
		QuestionText:  req.QuestionText,
		QuestionImage: images.Question,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		OptionAImage:  images.OptionA,
		OptionBImage:  images.OptionB,
		OptionCImage:  images.OptionC,
		OptionDImage:  images.OptionD,
		CorrectOption: req.CorrectOption,
		Marks:         req.Marks,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *questionService) Get(ctx context.Context, id int64) (*models.Question, error) {
	question, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, apperrors.NewResourceNotFoundError("Question not found")
	}
	return question, nil
}

// ListByTest returns a test's questions with grading fields included. This is
// the admin view; student-facing callers go through the submission flow.
func (s *questionService) ListByTest(ctx context.Context, testID int64) ([]models.Question, error) {
	test, err := s.tests.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, apperrors.NewResourceNotFoundError("Test not found")
	}
	return s.questions.ListByTest(ctx, testID)
}

func (s *questionService) Delete(ctx context.Context, id int64) error {
	err := s.questions.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewResourceNotFoundError("Question not found")
	}
	return err
}
