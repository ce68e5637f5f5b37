package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePercentage(t *testing.T) {
	tests := []struct {
		name       string
		totalScore float64
		maxScore   int
		want       float64
	}{
		{"half marks", 5, 10, 50},
		{"full marks", 10, 10, 100},
		{"zero score", 0, 10, 0},
		{"fractional score", 7.5, 20, 37.5},
		{"zero max score", 5, 0, 0},
		{"negative max score", 5, -10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputePercentage(tt.totalScore, tt.maxScore), 0.0001)
		})
	}
}

func TestIsCorrectFromMarks(t *testing.T) {
	assert.True(t, IsCorrectFromMarks(1))
	assert.True(t, IsCorrectFromMarks(0.5), "partial credit reads as correct")
	assert.False(t, IsCorrectFromMarks(0))
	assert.False(t, IsCorrectFromMarks(-1))
}
