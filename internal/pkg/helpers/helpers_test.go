package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values pass through", 3, 50, 3, 50},
		{"zero page falls back", 0, 10, DefaultPage, 10},
		{"negative page falls back", -2, 10, DefaultPage, 10},
		{"zero page size falls back", 1, 0, 1, DefaultPageSize},
		{"oversized page size falls back", 1, 500, 1, DefaultPageSize},
		{"max page size is allowed", 1, MaxPageSize, 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := NormalizePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("90m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
}

func TestMinutesBetween(t *testing.T) {
	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 25, MinutesBetween(base, base.Add(25*time.Minute)))
	assert.Equal(t, 25, MinutesBetween(base, base.Add(25*time.Minute+10*time.Second)))
	assert.Equal(t, 26, MinutesBetween(base, base.Add(25*time.Minute+40*time.Second)))
	assert.Equal(t, 0, MinutesBetween(base, base))
}
