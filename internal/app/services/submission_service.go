package services

import (
	"context"
	"errors"
	"time"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/repositories"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
	"github.com/prasadasw/examportal/internal/pkg/helpers"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

// SubmissionService handles the student side of the attempt lifecycle: start
// (or resume), submit, status and post-release result views.
type SubmissionService interface {
	Start(ctx context.Context, studentID, testID int64) (*dto.StartTestResponse, error)
	Submit(ctx context.Context, submissionID, studentID int64, req *dto.SubmitTestRequest) (*dto.SubmitTestResponse, error)
	Status(ctx context.Context, studentID, testID int64) (*dto.SubmissionStatusResponse, error)
	SubmittedAnswers(ctx context.Context, submissionID, studentID int64) (*dto.SubmittedAnswersResponse, error)
	MyResults(ctx context.Context, studentID int64) ([]dto.StudentResult, error)
}

type submissionService struct {
	submissions SubmissionStore
	enrollments EnrollmentStore
	tests       TestStore
	questions   QuestionStore
	answers     AnswerStore
	now         func() time.Time
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(submissions SubmissionStore, enrollments EnrollmentStore, tests TestStore, questions QuestionStore, answers AnswerStore) SubmissionService {
	return &submissionService{
		submissions: submissions,
		enrollments: enrollments,
		tests:       tests,
		questions:   questions,
		answers:     answers,
		now:         time.Now,
	}
}

// Start begins the student's attempt at a test, or resumes the in_progress one.
// Access requires an approved, unexpired enrollment. Creation is an atomic
// insert-or-nothing keyed on (student, test), so two concurrent starts converge
// on the same attempt and the loser resumes the winner's row.
func (s *submissionService) Start(ctx context.Context, studentID, testID int64) (*dto.StartTestResponse, error) {
	enrollment, err := s.enrollments.GetByStudentAndTest(ctx, studentID, testID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !enrollment.AccessGrantedAt(now) {
		return nil, apperrors.NewForbiddenError(accessDeniedMessage(enrollment, now))
	}

	test, err := s.tests.GetByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, apperrors.NewResourceNotFoundError("Test not found")
	}

	resumed := true
	existing, err := s.submissions.GetByStudentAndTest(ctx, studentID, testID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		candidate := &models.Submission{
			StudentID:    studentID,
			TestID:       testID,
			EnrollmentID: enrollment.ID,
			Status:       models.SubmissionInProgress,
			StartedAt:    now,
			MaxScore:     test.TotalMarks,
		}
		created, err := s.submissions.InsertIfAbsent(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if created {
			existing = candidate
			resumed = false
			logger.Info().
				Int64("studentId", studentID).
				Int64("testId", testID).
				Int64("submissionId", candidate.ID).
				Msg("Test attempt started")
		} else {
			// A concurrent start won the insert; read its row.
			existing, err = s.submissions.GetByStudentAndTest(ctx, studentID, testID)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				return nil, apperrors.NewResourceNotFoundError("Submission not found")
			}
		}
	}

	if existing.Status.Completed() {
		return nil, apperrors.NewConflictError("You have already completed this test")
	}

	questions, err := s.questions.ListByTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	studentQuestions := make([]dto.StudentQuestion, 0, len(questions))
	for i := range questions {
		studentQuestions = append(studentQuestions, studentQuestion(&questions[i]))
	}

	return &dto.StartTestResponse{
		SubmissionID: existing.ID,
		Test:         *testSummary(test),
		Questions:    studentQuestions,
		StartedAt:    existing.StartedAt,
		Status:       existing.Status,
		Resumed:      resumed,
	}, nil
}

// Submit persists the student's answers and flips the attempt to submitted.
// Answer entries are filtered best-effort: entries missing a question id,
// carrying an option outside a-d, referencing questions outside the test, or
// repeating a question already answered in the same payload are dropped, never
// rejected.
// A late submit (past the advisory duration) is still accepted.
func (s *submissionService) Submit(ctx context.Context, submissionID, studentID int64, req *dto.SubmitTestRequest) (*dto.SubmitTestResponse, error) {
	if req.Answers == nil {
		return nil, apperrors.NewValidationError("Answers must be provided as a list")
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil || submission.StudentID != studentID {
		return nil, apperrors.NewResourceNotFoundError("Submission not found")
	}
	if submission.Status != models.SubmissionInProgress {
		return nil, apperrors.NewConflictError("This test has already been submitted")
	}

	questions, err := s.questions.ListByTest(ctx, submission.TestID)
	if err != nil {
		return nil, err
	}
	marksByQuestion := make(map[int64]int, len(questions))
	for _, q := range questions {
		marksByQuestion[q.ID] = q.Marks
	}

	var accepted []models.Answer
	seen := make(map[int64]bool, len(req.Answers))
	dropped := 0
	for _, entry := range req.Answers {
		maxMarks, known := marksByQuestion[entry.QuestionID]
		if entry.QuestionID == 0 || !validOption(entry.SelectedOption) || !known || seen[entry.QuestionID] {
			dropped++
			continue
		}
		seen[entry.QuestionID] = true
		accepted = append(accepted, models.Answer{
			SubmissionID:   submissionID,
			QuestionID:     entry.QuestionID,
			SelectedOption: entry.SelectedOption,
			MaxMarks:       maxMarks,
		})
	}
	if dropped > 0 {
		logger.Warn().
			Int64("submissionId", submissionID).
			Int("dropped", dropped).
			Int("accepted", len(accepted)).
			Msg("Dropped malformed answer entries on submit")
	}

	submittedAt := s.now()
	timeTaken := helpers.MinutesBetween(submission.StartedAt, submittedAt)

	err = s.submissions.SubmitWithAnswers(ctx, submissionID, accepted, submittedAt, timeTaken)
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotInProgress) {
			return nil, apperrors.NewConflictError("This test has already been submitted")
		}
		return nil, err
	}

	logger.Info().
		Int64("submissionId", submissionID).
		Int64("studentId", studentID).
		Int("answersSaved", len(accepted)).
		Int("timeTaken", timeTaken).
		Msg("Test submitted")

	return &dto.SubmitTestResponse{
		SubmissionID: submissionID,
		SubmittedAt:  submittedAt,
		TimeTaken:    timeTaken,
		AnswersSaved: len(accepted),
		Status:       models.SubmissionSubmitted,
	}, nil
}

func validOption(option string) bool {
	switch option {
	case "a", "b", "c", "d":
		return true
	}
	return false
}

// Status reports the state of the student's attempt at a test.
func (s *submissionService) Status(ctx context.Context, studentID, testID int64) (*dto.SubmissionStatusResponse, error) {
	submission, err := s.submissions.GetByStudentAndTest(ctx, studentID, testID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperrors.NewResourceNotFoundError("You have not started this test")
	}

	return &dto.SubmissionStatusResponse{
		SubmissionID: submission.ID,
		Status:       submission.Status,
		StartedAt:    submission.StartedAt,
		SubmittedAt:  submission.SubmittedAt,
		TimeTaken:    submission.TimeTaken,
		Test: dto.TestSummary{
			ID:          submission.TestID,
			Title:       submission.TestTitle,
			ProgramName: submission.ProgramName,
		},
	}, nil
}

// SubmittedAnswers returns the student's scored answers for an attempt. The
// view only opens once the result is released; before that even the student's
// own selections stay hidden, and correct options are never included.
func (s *submissionService) SubmittedAnswers(ctx context.Context, submissionID, studentID int64) (*dto.SubmittedAnswersResponse, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil || submission.StudentID != studentID {
		return nil, apperrors.NewResourceNotFoundError("Submission not found")
	}
	if submission.Status != models.SubmissionResultReleased {
		return nil, apperrors.NewForbiddenError("Results have not been released for this test yet")
	}

	answers, err := s.answers.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	released := make([]dto.ReleasedAnswer, 0, len(answers))
	for i := range answers {
		a := &answers[i]
		ra := dto.ReleasedAnswer{
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.IsCorrect,
			MarksObtained:  a.MarksObtained,
			MaxMarks:       a.MaxMarks,
		}
		if a.Question != nil {
			ra.Question = studentQuestion(a.Question)
		}
		released = append(released, ra)
	}

	return &dto.SubmittedAnswersResponse{
		SubmissionID: submission.ID,
		Test: dto.TestSummary{
			ID:          submission.TestID,
			Title:       submission.TestTitle,
			ProgramName: submission.ProgramName,
		},
		SubmittedAt: submission.SubmittedAt,
		TimeTaken:   submission.TimeTaken,
		TotalScore:  submission.TotalScore,
		MaxScore:    submission.MaxScore,
		Percentage:  submission.Percentage,
		Answers:     released,
	}, nil
}

// MyResults lists the student's completed attempts. Scores only appear on
// released results; a submitted-but-unreviewed attempt shows zeros.
func (s *submissionService) MyResults(ctx context.Context, studentID int64) ([]dto.StudentResult, error) {
	submissions, err := s.submissions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	results := make([]dto.StudentResult, 0, len(submissions))
	for _, sub := range submissions {
		result := dto.StudentResult{
			SubmissionID: sub.ID,
			TestTitle:    sub.TestTitle,
			TotalMarks:   sub.MaxScore,
			Status:       string(sub.Status),
			SubmittedAt:  sub.SubmittedAt,
		}
		if sub.Status == models.SubmissionResultReleased {
			if sub.TotalScore != nil {
				result.Score = *sub.TotalScore
			}
			if sub.Percentage != nil {
				result.Percentage = *sub.Percentage
			}
			result.ReviewedAt = sub.ReviewedAt
		}
		results = append(results, result)
	}
	return results, nil
}
