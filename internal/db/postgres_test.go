package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollbackErrorKeepsSentinelMatchable(t *testing.T) {
	sentinel := errors.New("submission is not in progress")
	opErr := fmt.Errorf("submit failed: %w", sentinel)
	rbErr := errors.New("connection closed")

	joined := rollbackError(opErr, rbErr)

	assert.ErrorIs(t, joined, sentinel, "callback sentinel survives a failed rollback")
	assert.ErrorIs(t, joined, rbErr)
	assert.Contains(t, joined.Error(), "rollback failed")
}
