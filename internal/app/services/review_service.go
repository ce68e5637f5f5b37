package services

import (
	"context"
	"errors"
	"time"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/repositories"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
	"github.com/prasadasw/examportal/internal/pkg/logger"
)

// ReviewService handles the admin side of the attempt lifecycle: the review
// queue, grading passes, result release and aggregate reporting.
type ReviewService interface {
	List(ctx context.Context, filter *dto.SubmissionListFilter) ([]models.Submission, error)
	Detail(ctx context.Context, submissionID int64) (*dto.ReviewDetailResponse, error)
	Review(ctx context.Context, submissionID, adminID int64, req *dto.ReviewSubmissionRequest) (*dto.ReviewSubmissionResponse, error)
	Release(ctx context.Context, submissionID, adminID int64, req *dto.ReleaseResultRequest) (*dto.ReleaseResultResponse, error)
	Stats(ctx context.Context, testID, programID *int64) (*dto.SubmissionStatsResponse, error)
}

type reviewService struct {
	submissions SubmissionStore
	answers     AnswerStore
	now         func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(submissions SubmissionStore, answers AnswerStore) ReviewService {
	return &reviewService{
		submissions: submissions,
		answers:     answers,
		now:         time.Now,
	}
}

// List returns the admin review queue. Without a status filter it shows
// submitted and under_review attempts.
func (s *reviewService) List(ctx context.Context, filter *dto.SubmissionListFilter) ([]models.Submission, error) {
	return s.submissions.ListForReview(ctx, filter)
}

// Detail returns the full attempt for grading, including each question's
// correct option. This view is admin-only; students never see it.
func (s *reviewService) Detail(ctx context.Context, submissionID int64) (*dto.ReviewDetailResponse, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperrors.NewResourceNotFoundError("Submission not found")
	}

	answers, err := s.answers.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	reviewAnswers := make([]dto.ReviewAnswer, 0, len(answers))
	for i := range answers {
		a := &answers[i]
		ra := dto.ReviewAnswer{
			QuestionID:     a.QuestionID,
			Question:       a.Question,
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.IsCorrect,
			MarksObtained:  a.MarksObtained,
			MaxMarks:       a.MaxMarks,
			AdminNotes:     a.AdminNotes,
		}
		if a.Question != nil {
			ra.CorrectOption = a.Question.CorrectOption
		}
		reviewAnswers = append(reviewAnswers, ra)
	}

	return &dto.ReviewDetailResponse{
		SubmissionID: submission.ID,
		StudentName:  submission.StudentName,
		Test: dto.TestSummary{
			ID:          submission.TestID,
			Title:       submission.TestTitle,
			ProgramName: submission.ProgramName,
		},
		StartedAt:   submission.StartedAt,
		SubmittedAt: submission.SubmittedAt,
		TimeTaken:   submission.TimeTaken,
		Status:      submission.Status,
		Answers:     reviewAnswers,
	}, nil
}

// Review applies a grading pass. Reviews are repeatable while the attempt is
// submitted or under_review; each pass recomputes the total over all persisted
// answers unless an explicit total override is supplied. An answer is marked
// correct exactly when it earned positive marks.
func (s *reviewService) Review(ctx context.Context, submissionID, adminID int64, req *dto.ReviewSubmissionRequest) (*dto.ReviewSubmissionResponse, error) {
	if req.Answers == nil {
		return nil, apperrors.NewValidationError("Answers must be provided as a list")
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperrors.NewResourceNotFoundError("Submission not found")
	}
	if !submission.Status.Reviewable() {
		return nil, apperrors.NewConflictError("This submission is not available for review")
	}

	scores := make([]repositories.AnswerScoreUpdate, 0, len(req.Answers))
	skipped := 0
	for _, entry := range req.Answers {
		if entry.QuestionID == 0 || entry.MarksObtained == nil {
			skipped++
			continue
		}
		scores = append(scores, repositories.AnswerScoreUpdate{
			QuestionID:    entry.QuestionID,
			MarksObtained: *entry.MarksObtained,
			IsCorrect:     models.IsCorrectFromMarks(*entry.MarksObtained),
			AdminNotes:    entry.AdminNotes,
		})
	}
	if skipped > 0 {
		logger.Warn().
			Int64("submissionId", submissionID).
			Int("skipped", skipped).
			Msg("Skipped incomplete grading entries on review")
	}

	totalScore, percentage, err := s.submissions.ReviewWithScores(ctx, repositories.ReviewUpdate{
		SubmissionID: submissionID,
		AdminID:      adminID,
		AdminNotes:   req.AdminNotes,
		Scores:       scores,
		TotalScore:   req.TotalScore,
		ReviewedAt:   s.now(),
	})
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotReviewable) {
			return nil, apperrors.NewConflictError("This submission is not available for review")
		}
		return nil, err
	}

	logger.Info().
		Int64("submissionId", submissionID).
		Int64("adminId", adminID).
		Float64("totalScore", totalScore).
		Msg("Submission reviewed")

	return &dto.ReviewSubmissionResponse{
		SubmissionID: submissionID,
		TotalScore:   totalScore,
		MaxScore:     submission.MaxScore,
		Percentage:   percentage,
		Status:       models.SubmissionUnderReview,
	}, nil
}

// Release moves a reviewed attempt to result_released, opening the student's
// result view. Only an under_review attempt qualifies; release is terminal.
func (s *reviewService) Release(ctx context.Context, submissionID, adminID int64, req *dto.ReleaseResultRequest) (*dto.ReleaseResultResponse, error) {
	adminNotes := ""
	if req != nil {
		adminNotes = req.AdminNotes
	}

	released, err := s.submissions.Release(ctx, submissionID, adminNotes, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrSubmissionNotReviewed) {
			current, lookupErr := s.submissions.GetByID(ctx, submissionID)
			if lookupErr == nil && current == nil {
				return nil, apperrors.NewResourceNotFoundError("Submission not found")
			}
			return nil, apperrors.NewConflictError("This submission must be reviewed before its result can be released")
		}
		return nil, err
	}

	logger.Info().
		Int64("submissionId", submissionID).
		Int64("adminId", adminID).
		Msg("Result released")

	resp := &dto.ReleaseResultResponse{
		SubmissionID: released.ID,
		Status:       released.Status,
		TotalScore:   released.TotalScore,
		MaxScore:     released.MaxScore,
		Percentage:   released.Percentage,
	}
	if released.ResultReleasedAt != nil {
		resp.ResultReleasedAt = *released.ResultReleasedAt
	}
	return resp, nil
}

// Stats aggregates submission counts by status plus average score and
// percentage over released results, optionally scoped to a test or program.
func (s *reviewService) Stats(ctx context.Context, testID, programID *int64) (*dto.SubmissionStatsResponse, error) {
	stats, err := s.submissions.Stats(ctx, testID, programID)
	if err != nil {
		return nil, err
	}

	return &dto.SubmissionStatsResponse{
		TotalSubmissions: stats.Total,
		StatusBreakdown: dto.SubmissionStatusCounts{
			InProgress:  stats.InProgress,
			Submitted:   stats.Submitted,
			UnderReview: stats.UnderReview,
			Released:    stats.Released,
		},
		PerformanceStats: dto.PerformanceStats{
			AverageScore:      stats.AverageScore,
			AveragePercentage: stats.AveragePercentage,
			TotalCompleted:    stats.Released,
		},
	}, nil
}
