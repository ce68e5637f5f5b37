package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccessGrantedAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	soon := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name       string
		enrollment *Enrollment
		want       bool
	}{
		{"nil enrollment", nil, false},
		{"pending", &Enrollment{Status: EnrollmentPending}, false},
		{"rejected", &Enrollment{Status: EnrollmentRejected}, false},
		{"approved without expiry", &Enrollment{Status: EnrollmentApproved}, true},
		{"approved not yet expired", &Enrollment{Status: EnrollmentApproved, ExpiresAt: &soon}, true},
		{"approved expired", &Enrollment{Status: EnrollmentApproved, ExpiresAt: &past}, false},
		{"approved expiring exactly now", &Enrollment{Status: EnrollmentApproved, ExpiresAt: &now}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.enrollment.AccessGrantedAt(now))
		})
	}
}

func TestAccessFlipsAtExpiry(t *testing.T) {
	expiry := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	e := &Enrollment{Status: EnrollmentApproved, ExpiresAt: &expiry}

	assert.True(t, e.AccessGrantedAt(expiry.Add(-time.Second)))
	assert.False(t, e.AccessGrantedAt(expiry.Add(time.Second)),
		"the same row reads as denied once the expiry passes")
}

func TestEnrollmentStatusValid(t *testing.T) {
	assert.True(t, EnrollmentPending.Valid())
	assert.True(t, EnrollmentApproved.Valid())
	assert.True(t, EnrollmentRejected.Valid())
	assert.False(t, EnrollmentStatus("expired").Valid())
	assert.False(t, EnrollmentStatus("").Valid())
}
