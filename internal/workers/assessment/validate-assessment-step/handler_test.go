// internal/workers/assessment/validate-assessment-step/handler_test.go
package validateassessmentstep

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maturity-assessment/internal/common/errors"
	"maturity-assessment/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 3 * time.Second}, nil, logger.NewTestLogger(t))
}

func createTestInput(stepID, data string) *Input {
	in := &Input{StepID: stepID}
	if data != "" {
		in.Data = json.RawMessage(data)
	}
	return in
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "valid demographics",
			input: createTestInput("demographics", `{"industry":"technology","companySize":"51-200","role":"CTO"}`),
			validateOutput: func(t *testing.T, output *Output) {
				assert.True(t, output.IsValid)
				assert.Empty(t, output.Errors)
			},
		},
		{
			name:  "invalid option and missing field",
			input: createTestInput("demographics", `{"industry":"mining","companySize":"51-200"}`),
			validateOutput: func(t *testing.T, output *Output) {
				assert.False(t, output.IsValid)
				assert.Equal(t, map[string]string{
					"industry": "Invalid industry selection",
					"role":     "Role is required",
				}, output.Errors)
				assert.Equal(t, []string{"industry", "role"}, output.Fields)
			},
		},
		{
			name:  "no goals selected",
			input: createTestInput("goals", `{"selectedGoals":[]}`),
			validateOutput: func(t *testing.T, output *Output) {
				assert.False(t, output.IsValid)
				assert.Equal(t, "At least one goal must be selected", output.Errors["selectedGoals"])
			},
		},
		{
			name:  "missing data validates as empty",
			input: createTestInput("budget", ""),
			validateOutput: func(t *testing.T, output *Output) {
				assert.False(t, output.IsValid)
				assert.Equal(t, map[string]string{
					"range":    "Budget range is required",
					"timeline": "Timeline is required",
				}, output.Errors)
			},
		},
		{
			name:  "unknown step is an invalid result",
			input: createTestInput("security", `{}`),
			validateOutput: func(t *testing.T, output *Output) {
				assert.False(t, output.IsValid)
				assert.Equal(t, map[string]string{"step": "Invalid step"}, output.Errors)
			},
		},
		{
			name:  "results step collects nothing",
			input: createTestInput("results", `{}`),
			validateOutput: func(t *testing.T, output *Output) {
				assert.False(t, output.IsValid)
				assert.Equal(t, map[string]string{"step": "Invalid step"}, output.Errors)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := createTestHandler(t).Execute(context.Background(), tt.input)
			require.NoError(t, err)
			require.NotNil(t, output)
			tt.validateOutput(t, output)
		})
	}
}

func TestHandler_Execute_MalformedData(t *testing.T) {
	_, err := createTestHandler(t).Execute(context.Background(),
		createTestInput("goals", `{"selectedGoals":"automate_operations"}`))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	stdErr, ok := errors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, "PARSE_ERROR", errors.ConvertToBPMNError(stdErr).Code)
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name        string
		variables   string
		expectError bool
	}{
		{"valid", `{"stepId":"goals","data":{"selectedGoals":["reduce_costs"]}}`, false},
		{"null data", `{"stepId":"goals","data":null}`, false},
		{"missing step", `{"data":{}}`, true},
		{"empty step", `{"stepId":""}`, true},
		{"data is a list", `{"stepId":"goals","data":["reduce_costs"]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseInput([]byte(tt.variables))
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
				return
			}
			assert.NoError(t, err)
		})
	}
}
