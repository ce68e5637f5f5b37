package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasadasw/examportal/internal/app/models"
	"github.com/prasadasw/examportal/internal/app/models/dto"
	"github.com/prasadasw/examportal/internal/app/repositories"
	"github.com/prasadasw/examportal/internal/pkg/apperrors"
)

func newEnrollmentFixture() (*enrollmentService, *fakeEnrollmentStore, *fakeTestStore) {
	enrollments := newFakeEnrollmentStore()
	tests := newFakeTestStore(models.Test{
		ID: 10, ProgramID: 1, Title: "Algebra Basics", Duration: 60, TotalMarks: 100, Active: true,
	})
	svc := NewEnrollmentService(enrollments, tests).(*enrollmentService)
	return svc, enrollments, tests
}

func TestRequestEnrollmentCreatesPending(t *testing.T) {
	svc, store, _ := newEnrollmentFixture()

	resp, err := svc.Request(context.Background(), 1, &dto.RequestEnrollmentRequest{
		TestID:         10,
		RequestMessage: "please enroll me",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentPending, resp.Status)
	assert.Equal(t, "Algebra Basics", resp.TestTitle)

	stored, err := store.GetByStudentAndTest(context.Background(), 1, 10)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.EnrollmentPending, stored.Status)
	assert.Equal(t, "please enroll me", stored.RequestMessage)
}

func TestRequestEnrollmentUnknownTest(t *testing.T) {
	svc, _, _ := newEnrollmentFixture()

	_, err := svc.Request(context.Background(), 1, &dto.RequestEnrollmentRequest{TestID: 999})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRequestEnrollmentConflictPerStatus(t *testing.T) {
	tests := []struct {
		name        string
		status      models.EnrollmentStatus
		wantMessage string
	}{
		{"pending blocks re-request", models.EnrollmentPending, "pending enrollment request"},
		{"approved blocks re-request", models.EnrollmentApproved, "already enrolled"},
		{"rejected is a closed decision", models.EnrollmentRejected, "was rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newEnrollmentFixture()
			store.seed(models.Enrollment{StudentID: 1, TestID: 10, Status: tt.status})

			_, err := svc.Request(context.Background(), 1, &dto.RequestEnrollmentRequest{TestID: 10})
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrConflict)
			assert.Contains(t, err.Error(), tt.wantMessage)
		})
	}
}

func TestDecideApprovesPendingWithExpiry(t *testing.T) {
	svc, store, _ := newEnrollmentFixture()
	seeded := store.seed(models.Enrollment{StudentID: 1, TestID: 10, Status: models.EnrollmentPending})

	expiry := time.Now().Add(48 * time.Hour)
	resp, err := svc.Decide(context.Background(), seeded.ID, 77, &dto.DecideEnrollmentRequest{
		Status:     models.EnrollmentApproved,
		AdminNotes: "good standing",
		ExpiresAt:  &expiry,
	})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentApproved, resp.Status)
	require.NotNil(t, resp.ExpiresAt)
	assert.True(t, resp.ExpiresAt.Equal(expiry))

	stored, _ := store.GetByID(context.Background(), seeded.ID)
	assert.Equal(t, models.EnrollmentApproved, stored.Status)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, int64(77), *stored.ApprovedBy)
}

func TestDecideRejectIgnoresExpiry(t *testing.T) {
	svc, store, _ := newEnrollmentFixture()
	seeded := store.seed(models.Enrollment{StudentID: 1, TestID: 10, Status: models.EnrollmentPending})

	expiry := time.Now().Add(48 * time.Hour)
	resp, err := svc.Decide(context.Background(), seeded.ID, 77, &dto.DecideEnrollmentRequest{
		Status:    models.EnrollmentRejected,
		ExpiresAt: &expiry,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.ExpiresAt)

	stored, _ := store.GetByID(context.Background(), seeded.ID)
	assert.Nil(t, stored.ExpiresAt)
}

func TestDecideIsOneShot(t *testing.T) {
	svc, store, _ := newEnrollmentFixture()
	seeded := store.seed(models.Enrollment{StudentID: 1, TestID: 10, Status: models.EnrollmentApproved})

	_, err := svc.Decide(context.Background(), seeded.ID, 77, &dto.DecideEnrollmentRequest{
		Status: models.EnrollmentRejected,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	stored, _ := store.GetByID(context.Background(), seeded.ID)
	assert.Equal(t, models.EnrollmentApproved, stored.Status, "the first decision stands")
}

func TestDecideUnknownEnrollment(t *testing.T) {
	svc, _, _ := newEnrollmentFixture()

	_, err := svc.Decide(context.Background(), 404, 77, &dto.DecideEnrollmentRequest{
		Status: models.EnrollmentApproved,
	})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCheckAccess(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name       string
		enrollment *models.Enrollment
		wantAccess bool
	}{
		{"no enrollment", nil, false},
		{"pending", &models.Enrollment{StudentID: 1, TestID: 10, Status: models.EnrollmentPending}, false},
		{"rejected", &models.Enrollment{StudentID: 1, TestID: 10, Status: models.EnrollmentRejected}, false},
		{"approved open-ended", &models.Enrollment{StudentID: 1, TestID: 10, Status: models.EnrollmentApproved}, true},
		{"approved unexpired", &models.Enrollment{StudentID: 1, TestID: 10, Status: models.EnrollmentApproved, ExpiresAt: &future}, true},
		{"approved expired", &models.Enrollment{StudentID: 1, TestID: 10, Status: models.EnrollmentApproved, ExpiresAt: &past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newEnrollmentFixture()
			svc.now = func() time.Time { return now }
			if tt.enrollment != nil {
				store.seed(*tt.enrollment)
			}

			resp, err := svc.CheckAccess(context.Background(), 1, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAccess, resp.HasAccess)
		})
	}
}

func TestRequestEnrollmentLostRaceMapsToConflict(t *testing.T) {
	svc, store, _ := newEnrollmentFixture()
	svc.enrollments = &racingEnrollmentStore{fakeEnrollmentStore: store}

	_, err := svc.Request(context.Background(), 1, &dto.RequestEnrollmentRequest{TestID: 10})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "pending enrollment request",
		"the conflict reflects the winner's status")
}

// racingEnrollmentStore simulates a concurrent duplicate request slipping in
// between the pre-check and the insert: the first read misses, the insert hits
// the unique constraint, and the re-read finds the winner's row.
type racingEnrollmentStore struct {
	*fakeEnrollmentStore
	insertAttempted bool
}

func (r *racingEnrollmentStore) GetByStudentAndTest(ctx context.Context, studentID, testID int64) (*models.Enrollment, error) {
	if !r.insertAttempted {
		return nil, nil
	}
	return r.fakeEnrollmentStore.GetByStudentAndTest(ctx, studentID, testID)
}

func (r *racingEnrollmentStore) Create(ctx context.Context, e *models.Enrollment) error {
	r.insertAttempted = true
	r.fakeEnrollmentStore.seed(models.Enrollment{
		StudentID: e.StudentID, TestID: e.TestID, Status: models.EnrollmentPending,
	})
	return repositories.ErrDuplicateEnrollment
}
