package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name              string
		input             *StandardError
		expectedCode      string
		expectedRetries   int
		expectedRetryable bool
	}{
		{"invalid input is a parse error", NewInvalidInputError(cause), "PARSE_ERROR", 0, false},
		{"validation failure", NewValidationFailedError("budget", map[string]string{"range": "Budget range is required"}), "ASSESSMENT_VALIDATION_FAILED", 0, false},
		{"persistence is retried", NewPersistenceFailedError("set", "assessmentState_x", cause), "PERSISTENCE_FAILED", 3, true},
		{"timeout is retried", NewTimeoutError("zeebe", cause), "TIMEOUT_ERROR", 3, true},
		{"scoring failure", NewScoringFailedError(cause), "SCORING_FAILED", 0, false},
		{"corruption is not retried", NewStateCorruptedError("assessmentState_x", cause), "STATE_CORRUPTED", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.input)
			assert.Equal(t, tt.expectedCode, bpmn.Code)
			assert.Equal(t, tt.expectedRetries, bpmn.Retries)
			assert.Equal(t, tt.expectedRetryable, bpmn.Retryable)
			assert.Equal(t, string(tt.input.Code), bpmn.ErrorVariables["originalErrorCode"])

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.expectedCode, vars["errorCode"])
		})
	}
}

func TestStandardError_Fields(t *testing.T) {
	err := NewValidationFailedError("demographics", map[string]string{"industry": "Industry is required"})
	fields := err.Fields()

	assert.Equal(t, "VALIDATION_FAILED", fields["errorCode"])
	assert.Equal(t, "VALIDATION", fields["errorCategory"])
	assert.Equal(t, false, fields["retryable"])
	assert.Equal(t, "demographics", fields["step"])
	assert.Equal(t, "Industry is required", fields["field.industry"])
}

func TestAsStandardErrorAndHasCode(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	wrapped := fmt.Errorf("open storage: %w", NewStorageUnavailableError("redis", cause))

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeStorageUnavailable, stdErr.Code)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, HasCode(wrapped, ErrCodeStorageUnavailable))
	assert.False(t, HasCode(wrapped, ErrCodeTimeout))

	_, ok = AsStandardError(cause)
	assert.False(t, ok)
	assert.False(t, HasCode(nil, ErrCodeTimeout))
}
