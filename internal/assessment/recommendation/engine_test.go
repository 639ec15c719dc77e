package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"maturity-assessment/internal/models"
)

func createTestAssessment(journey string, goals []string, budgetRange, timeline string) models.Assessment {
	a := models.NewAssessment()
	a.JourneyStatus.Type = journey
	a.SelectedGoals = goals
	a.BudgetInfo = models.BudgetInfo{Range: budgetRange, Timeline: timeline}
	return a
}

func ids(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestGenerate(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name        string
		input       models.Assessment
		expectedIDs []string
	}{
		{
			name:        "developing level then goals in stored order",
			input:       createTestAssessment("implementing", []string{"improve_decision_making", "automate_operations"}, "200k-500k", "6m-1y"),
			expectedIDs: []string{"rec3", "goal-improve_decision_making", "goal-automate_operations"},
		},
		{
			name:        "empty assessment is initial",
			input:       models.NewAssessment(),
			expectedIDs: []string{"rec1"},
		},
		{
			name: "stored result level wins over recomputation",
			input: func() models.Assessment {
				a := createTestAssessment("", nil, "", "")
				a.Results = &models.Results{Score: 85, MaturityLevel: "Advanced"}
				return a
			}(),
			expectedIDs: []string{"rec5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedIDs, ids(e.Generate(tt.input)))
		})
	}
}

func TestGoalRecommendationText(t *testing.T) {
	tests := []struct {
		goal          string
		expectedTitle string
		expectedCat   string
		expectedDesc  string
	}{
		{"automate_operations", "Implement Process Automation", "Automation", "Implement RPA and AI-driven process automation for key operational workflows."},
		{"enhance_customer_experience", "AI-Powered Customer Service", "Customer Service", "Deploy AI chatbots and personalization engines to enhance customer interactions."},
		{"improve_decision_making", "Predictive Analytics Implementation", "Analytics", "Implement predictive analytics and decision support systems."},
		{"develop_new_products", "Develop New Products Enhancement", "Technology", "Strategic implementation plan for Develop New Products."},
		{"mystery", "mystery Enhancement", "Technology", "Strategic implementation plan for mystery."},
	}

	for _, tt := range tests {
		t.Run(tt.goal, func(t *testing.T) {
			r := goalRecommendation(tt.goal)
			assert.Equal(t, "goal-"+tt.goal, r.ID)
			assert.Equal(t, tt.expectedTitle, r.Title)
			assert.Equal(t, tt.expectedCat, r.Category)
			assert.Equal(t, tt.expectedDesc, r.Description)
			assert.Equal(t, "medium", r.Cost)
			assert.Equal(t, "medium", r.Timeframe)
		})
	}
}

func TestFilter(t *testing.T) {
	e := New(nil)
	recs := []models.Recommendation{
		{ID: "a", Cost: "low", Timeframe: "short"},
		{ID: "b", Cost: "high", Timeframe: "medium"},
		{ID: "c", Cost: "medium", Timeframe: "long"},
		{ID: "d", Cost: "very_high", Timeframe: "very_long"},
		{ID: "e", Cost: "medium", Timeframe: "medium"},
	}

	tests := []struct {
		name        string
		budgetRange string
		timeline    string
		expectedIDs []string
	}{
		{"tight budget and timeline", "0-50k", "0-6m", []string{"a", "e"}},
		{"mid budget, one year", "50k-200k", "6m-1y", []string{"a", "b", "c", "e"}},
		{"large budget, long horizon", "500k+", "1y+", []string{"a", "b", "c", "d", "e"}},
		{"unset means no ceiling", "", "", []string{"a", "b", "c", "d", "e"}},
		{"only timeline set", "", "0-6m", []string{"a", "b", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := createTestAssessment("", nil, tt.budgetRange, tt.timeline)
			assert.Equal(t, tt.expectedIDs, ids(e.Filter(recs, a)))
		})
	}
}

func TestRecommend_FiltersIntermediateTemplateOnTightBudget(t *testing.T) {
	e := New(nil)
	a := createTestAssessment("", []string{"automate_operations"}, "0-50k", "0-6m")
	a.Results = &models.Results{MaturityLevel: "Intermediate"}

	assert.Equal(t, []string{"goal-automate_operations"}, ids(e.Recommend(a)))
}

func TestRecommend_IsDeterministic(t *testing.T) {
	e := New(nil)
	a := createTestAssessment("optimizing",
		[]string{"reduce_costs", "enhance_customer_experience", "improve_security"}, "50k-200k", "1y+")

	first := e.Recommend(a)
	second := e.Recommend(a)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
