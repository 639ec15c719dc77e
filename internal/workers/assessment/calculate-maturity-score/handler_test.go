// internal/workers/assessment/calculate-maturity-score/handler_test.go
package calculatematurityscore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maturity-assessment/internal/common/config"
	"maturity-assessment/internal/common/errors"
	"maturity-assessment/internal/common/logger"
	"maturity-assessment/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 3 * time.Second}
}

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), nil, nil, logger.NewTestLogger(t))
}

func createTestInput(journey string, goals []string, budgetRange, timeline string) *Input {
	a := models.NewAssessment()
	a.JourneyStatus.Type = journey
	a.SelectedGoals = goals
	a.BudgetInfo = models.BudgetInfo{Range: budgetRange, Timeline: timeline}
	return &Input{Assessment: a}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "documented scenario",
			input: createTestInput("implementing", []string{"automate_operations", "improve_decision_making"}, "200k-500k", "6m-1y"),
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 57, output.Score)
				assert.Equal(t, "Developing", output.MaturityLevel)
				assert.NotEmpty(t, output.MaturityDescription)
				assert.Equal(t, models.ScoreBreakdown{Journey: 60, Goals: 40, Budget: 70}, output.ScoreBreakdown)
			},
		},
		{
			name:  "empty assessment",
			input: &Input{Assessment: models.NewAssessment()},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 0, output.Score)
				assert.Equal(t, "Initial", output.MaturityLevel)
			},
		},
		{
			name:  "duplicate goals in payload count once",
			input: createTestInput("leading", []string{"reduce_costs", "reduce_costs"}, "500k+", "6m-1y"),
			validateOutput: func(t *testing.T, output *Output) {
				// 100*0.4 + 10*0.3 + 80*0.3 = 40 + 3 + 24
				assert.Equal(t, 67, output.Score)
				assert.Equal(t, "Intermediate", output.MaturityLevel)
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

func TestHandler_Execute_NilInput(t *testing.T) {
	_, err := createTestHandler(t).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}

func TestHandler_Execute_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := createTestHandler(t).Execute(ctx, createTestInput("planning", nil, "", ""))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTimeout))
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name        string
		variables   string
		expectError bool
	}{
		{"valid", `{"assessment":{"journeyStatus":{"type":"planning"},"selectedGoals":["reduce_costs"],"budgetInfo":{"range":"0-50k"}}}`, false},
		{"extra process variables ignored", `{"assessment":{},"processId":"p-1"}`, false},
		{"missing assessment", `{"stepId":"goals"}`, true},
		{"assessment wrong type", `{"assessment":"nope"}`, true},
		{"goals wrong type", `{"assessment":{"selectedGoals":"reduce_costs"}}`, true},
		{"not json", `{assessment`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := parseInput([]byte(tt.variables))
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, input)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, 5*time.Second, LoadConfig(config.WorkerConfig{Timeout: 5000}).Timeout)
	assert.Equal(t, 30*time.Second, LoadConfig(config.WorkerConfig{}).Timeout)
}
