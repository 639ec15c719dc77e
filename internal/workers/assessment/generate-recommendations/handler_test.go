// internal/workers/assessment/generate-recommendations/handler_test.go
package generaterecommendations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func createTestHandler(t *testing.T, config *Config) *Handler {
	if config == nil {
		config = createTestConfig()
	}
	return NewHandler(config, nil, nil, logger.NewTestLogger(t))
}

func createTestInput(journey string, goals []string, budgetRange, timeline string) *Input {
	a := models.NewAssessment()
	a.JourneyStatus.Type = journey
	a.SelectedGoals = goals
	a.BudgetInfo = models.BudgetInfo{Range: budgetRange, Timeline: timeline}
	return &Input{Assessment: a}
}

func recommendationIDs(output *Output) []string {
	ids := make([]string, 0, len(output.Recommendations))
	for _, r := range output.Recommendations {
		ids = append(ids, r.ID)
	}
	return ids
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
			name:  "developing with two goals",
			input: createTestInput("implementing", []string{"automate_operations", "improve_decision_making"}, "200k-500k", "6m-1y"),
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, "Developing", output.MaturityLevel)
				assert.Equal(t, []string{"rec3", "goal-automate_operations", "goal-improve_decision_making"}, recommendationIDs(output))
				assert.Equal(t, 3, output.Count)
			},
		},
		{
			name: "stored intermediate level filtered by tight budget",
			input: func() *Input {
				in := createTestInput("", []string{"enhance_customer_experience"}, "0-50k", "0-6m")
				in.Assessment.Results = &models.Results{Score: 65, MaturityLevel: "Intermediate"}
				return in
			}(),
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, "Intermediate", output.MaturityLevel)
				assert.Equal(t, []string{"goal-enhance_customer_experience"}, recommendationIDs(output))
				assert.Equal(t, 1, output.Count)
			},
		},
		{
			name:  "empty assessment gets foundation template",
			input: &Input{Assessment: models.NewAssessment()},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, "Initial", output.MaturityLevel)
				assert.Equal(t, []string{"rec1"}, recommendationIDs(output))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := createTestHandler(t, nil).Execute(context.Background(), tt.input)
			require.NoError(t, err)
			require.NotNil(t, output)
			tt.validateOutput(t, output)
		})
	}
}

func TestHandler_Execute_MaxItems(t *testing.T) {
	h := createTestHandler(t, &Config{Timeout: time.Second, MaxItems: 2})
	input := createTestInput("planning", []string{"automate_operations", "reduce_costs", "improve_security"}, "", "")

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Len(t, output.Recommendations, 2)
	assert.Equal(t, 2, output.Count)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	_, err := createTestHandler(t, nil).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name        string
		variables   string
		expectError bool
	}{
		{"valid", `{"assessment":{"selectedGoals":["reduce_costs"],"budgetInfo":{"range":"0-50k","timeline":"0-6m"}}}`, false},
		{"with results", `{"assessment":{"results":{"score":10,"maturityLevel":"Initial"}}}`, false},
		{"missing assessment", `{}`, true},
		{"range wrong type", `{"assessment":{"budgetInfo":{"range":50000}}}`, true},
		{"not json", `[`, true},
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
