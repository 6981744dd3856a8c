package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	excl := &pq.Error{Code: CodeExclusionViolation, Constraint: "reservations_slot_active_no_overlap"}
	wrapped := fmt.Errorf("repo: insert: %w", excl)

	assert.True(t, IsExclusionViolation(wrapped))
	assert.False(t, IsUniqueViolation(wrapped))
	assert.Equal(t, "reservations_slot_active_no_overlap", Constraint(wrapped))

	assert.True(t, IsRetryable(&pq.Error{Code: CodeSerializationFailure}))
	assert.True(t, IsRetryable(&pq.Error{Code: CodeDeadlockDetected}))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.Equal(t, "", Code(nil))
}
