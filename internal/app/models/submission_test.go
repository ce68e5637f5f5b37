package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionStatusCompleted(t *testing.T) {
	assert.False(t, SubmissionInProgress.Completed())
	assert.True(t, SubmissionSubmitted.Completed())
	assert.True(t, SubmissionUnderReview.Completed())
	assert.True(t, SubmissionResultReleased.Completed())
}

func TestSubmissionStatusReviewable(t *testing.T) {
	assert.False(t, SubmissionInProgress.Reviewable())
	assert.True(t, SubmissionSubmitted.Reviewable())
	assert.True(t, SubmissionUnderReview.Reviewable(), "re-review before release is allowed")
	assert.False(t, SubmissionResultReleased.Reviewable(), "release is terminal")
}
