package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
)

type submissionFixture struct {
	svc         *submissionService
	submissions *fakeSubmissionStore
	enrollments *fakeEnrollmentStore
	questions   *fakeQuestionStore
	now         time.Time
}

func newSubmissionFixture() *submissionFixture {
	submissions := newFakeSubmissionStore()
	enrollments := newFakeEnrollmentStore()
	questions := newFakeQuestionStore()
	tests := newFakeTestStore(models.Test{
		ID: 10, ProgramID: 1, Title: "Algebra Basics", Duration: 60, TotalMarks: 10, Active: true,
	})

	questions.questions[10] = []models.Question{
		{ID: 101, TestID: 10, QuestionText: "2+2?", OptionA: "3", OptionB: "4", CorrectOption: "b", Marks: 4},
		{ID: 102, TestID: 10, QuestionText: "3*3?", OptionA: "9", OptionB: "6", CorrectOption: "a", Marks: 6},
	}

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := NewSubmissionService(submissions, enrollments, tests, questions, submissions).(*submissionService)
	svc.now = func() time.Time { return now }

	return &submissionFixture{
		svc:         svc,
		submissions: submissions,
		enrollments: enrollments,
		questions:   questions,
		now:         now,
	}
}

func (f *submissionFixture) approveEnrollment(studentID int64, expiresAt *time.Time) *models.Enrollment {
	return f.enrollments.seed(models.Enrollment{
		StudentID: studentID, TestID: 10,
		Status: models.EnrollmentApproved, ExpiresAt: expiresAt,
	})
}

func TestStartCreatesAttempt(t *testing.T) {
	f := newSubmissionFixture()
	f.approveEnrollment(1, nil)

	resp, err := f.svc.Start(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, resp.Resumed)
	assert.Equal(t, models.SubmissionInProgress, resp.Status)
	assert.Len(t, resp.Questions, 2)
	assert.Equal(t, f.now, resp.StartedAt)

	stored, _ := f.submissions.GetByID(context.Background(), resp.SubmissionID)
	require.NotNil(t, stored)
	assert.Equal(t, 10, stored.MaxScore, "max score snapshots the test's total marks")
}

func TestStartResumesInProgressAttempt(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)
	startedAt := f.now.Add(-10 * time.Minute)
	seeded := f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
		Status: models.SubmissionInProgress, StartedAt: startedAt, MaxScore: 10,
	})

	resp, err := f.svc.Start(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, resp.Resumed)
	assert.Equal(t, seeded.ID, resp.SubmissionID)
	assert.Equal(t, startedAt, resp.StartedAt, "the original start time is kept")
}

func TestStartDeniedWithoutApproval(t *testing.T) {
	f := newSubmissionFixture()
	f.enrollments.seed(models.Enrollment{StudentID: 1, TestID: 10, Status: models.EnrollmentPending})

	_, err := f.svc.Start(context.Background(), 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestStartDeniedAfterExpiry(t *testing.T) {
	f := newSubmissionFixture()
	expired := f.now.Add(-time.Minute)
	f.approveEnrollment(1, &expired)

	_, err := f.svc.Start(context.Background(), 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "expired")
}

func TestStartCompletedAttemptConflicts(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)
	f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
		Status: models.SubmissionSubmitted, StartedAt: f.now.Add(-time.Hour), MaxScore: 10,
	})

	_, err := f.svc.Start(context.Background(), 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubmitFiltersMalformedEntries(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)
	seeded := f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
		Status: models.SubmissionInProgress, StartedAt: f.now.Add(-25 * time.Minute), MaxScore: 10,
	})

	resp, err := f.svc.Submit(context.Background(), seeded.ID, 1, &dto.SubmitTestRequest{
		Answers: []dto.AnswerEntry{
			{QuestionID: 101, SelectedOption: "b"}, // valid
			{QuestionID: 102, SelectedOption: "a"}, // valid
			{QuestionID: 0, SelectedOption: "a"},   // missing question id
			{QuestionID: 101, SelectedOption: "c"}, // duplicate question
			{QuestionID: 999, SelectedOption: "a"}, // not in this test
			{QuestionID: 102, SelectedOption: "x"}, // option outside a-d
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.AnswersSaved, "malformed entries are dropped, not rejected")
	assert.Equal(t, 25, resp.TimeTaken)
	assert.Equal(t, models.SubmissionSubmitted, resp.Status)

	saved, _ := f.submissions.ListBySubmission(context.Background(), seeded.ID)
	require.Len(t, saved, 2)
	assert.Equal(t, 4, saved[0].MaxMarks, "max marks copied from the question")
}

func TestSubmitRequiresAnswerList(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)
	seeded := f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
		Status: models.SubmissionInProgress, StartedAt: f.now, MaxScore: 10,
	})

	_, err := f.svc.Submit(context.Background(), seeded.ID, 1, &dto.SubmitTestRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// An explicitly empty list is a valid zero-answer submit.
	resp, err := f.svc.Submit(context.Background(), seeded.ID, 1, &dto.SubmitTestRequest{
		Answers: []dto.AnswerEntry{},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.AnswersSaved)
}

func TestSubmitTwiceConflicts(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)
	seeded := f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
		Status: models.SubmissionInProgress, StartedAt: f.now, MaxScore: 10,
	})

	_, err := f.svc.Submit(context.Background(), seeded.ID, 1, &dto.SubmitTestRequest{
		Answers: []dto.AnswerEntry{{QuestionID: 101, SelectedOption: "b"}},
	})
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), seeded.ID, 1, &dto.SubmitTestRequest{
		Answers: []dto.AnswerEntry{{QuestionID: 102, SelectedOption: "a"}},
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubmitLateIsAccepted(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)
	// Started three hours ago on a 60-minute test.
	seeded := f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
		Status: models.SubmissionInProgress, StartedAt: f.now.Add(-3 * time.Hour), MaxScore: 10,
	})

	resp, err := f.svc.Submit(context.Background(), seeded.ID, 1, &dto.SubmitTestRequest{
		Answers: []dto.AnswerEntry{{QuestionID: 101, SelectedOption: "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 180, resp.TimeTaken, "duration is advisory; late submits still land")
}

func TestSubmitOtherStudentsAttemptIsHidden(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)
	seeded := f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
		Status: models.SubmissionInProgress, StartedAt: f.now, MaxScore: 10,
	})

	_, err := f.svc.Submit(context.Background(), seeded.ID, 2, &dto.SubmitTestRequest{
		Answers: []dto.AnswerEntry{},
	})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound,
		"another student's attempt reads as not found, not forbidden")
}

func TestSubmittedAnswersGatedUntilRelease(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)

	for _, status := range []models.SubmissionStatus{
		models.SubmissionInProgress, models.SubmissionSubmitted, models.SubmissionUnderReview,
	} {
		seeded := f.submissions.seed(models.Submission{
			StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
			Status: status, StartedAt: f.now, MaxScore: 10,
		})
		_, err := f.svc.SubmittedAnswers(context.Background(), seeded.ID, 1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, string(status))
		delete(f.submissions.submissions, seeded.ID)
	}
}

func TestSubmittedAnswersAfterRelease(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)
	score := 4.0
	correct := true
	seeded := f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
		Status: models.SubmissionResultReleased, StartedAt: f.now, MaxScore: 10,
		TotalScore: &score,
	})
	q := f.questions.questions[10][0]
	f.submissions.answers[seeded.ID] = []models.Answer{{
		SubmissionID: seeded.ID, QuestionID: 101, SelectedOption: "b",
		IsCorrect: &correct, MarksObtained: &score, MaxMarks: 4, Question: &q,
	}}

	resp, err := f.svc.SubmittedAnswers(context.Background(), seeded.ID, 1)
	require.NoError(t, err)
	require.Len(t, resp.Answers, 1)
	assert.Equal(t, "b", resp.Answers[0].SelectedOption)
	assert.Equal(t, int64(101), resp.Answers[0].Question.ID,
		"released answers embed the question stripped of its answer key")
}

func TestMyResultsHidesScoresUntilRelease(t *testing.T) {
	f := newSubmissionFixture()
	enrollment := f.approveEnrollment(1, nil)
	score := 5.0
	pct := 50.0
	submittedAt := f.now.Add(-time.Hour)

	f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 10, EnrollmentID: enrollment.ID,
		Status: models.SubmissionSubmitted, StartedAt: f.now.Add(-2 * time.Hour),
		SubmittedAt: &submittedAt, MaxScore: 10, TotalScore: &score, Percentage: &pct,
	})
	f.submissions.seed(models.Submission{
		StudentID: 1, TestID: 11, EnrollmentID: enrollment.ID,
		Status: models.SubmissionResultReleased, StartedAt: f.now.Add(-2 * time.Hour),
		SubmittedAt: &submittedAt, MaxScore: 10, TotalScore: &score, Percentage: &pct,
	})

	results, err := f.svc.MyResults(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		switch models.SubmissionStatus(r.Status) {
		case models.SubmissionSubmitted:
			assert.Zero(t, r.Score, "unreleased scores stay hidden")
			assert.Zero(t, r.Percentage)
		case models.SubmissionResultReleased:
			assert.Equal(t, 5.0, r.Score)
			assert.Equal(t, 50.0, r.Percentage)
		}
	}
}
