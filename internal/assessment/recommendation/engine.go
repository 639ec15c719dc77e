// Package recommendation builds the recommendation list for a completed
// assessment: templates keyed by maturity level, one item per selected goal,
// then a stable filter against the declared budget and timeline.
package recommendation

import (
	"fmt"

	"maturity-assessment/internal/assessment/catalog"
	"maturity-assessment/internal/assessment/scoring"
	"maturity-assessment/internal/models"
)

var templates = map[string][]models.Recommendation{
	"Initial": {{
		ID:          "rec1",
		Title:       "Establish AI Foundation",
		Description: "Begin with basic AI education and awareness training for key stakeholders.",
		Priority:    "high",
		Category:    "Education",
		Cost:        "low",
		Timeframe:   "short",
	}},
	"Basic": {{
		ID:          "rec2",
		Title:       "Data Strategy Development",
		Description: "Develop a comprehensive data strategy and governance framework.",
		Priority:    "high",
		Category:    "Strategy",
		Cost:        "medium",
		Timeframe:   "medium",
	}},
	"Developing": {{
		ID:          "rec3",
		Title:       "AI Pilot Projects",
		Description: "Implement pilot projects in key business areas.",
		Priority:    "medium",
		Category:    "Implementation",
		Cost:        "medium",
		Timeframe:   "medium",
	}},
	"Intermediate": {{
		ID:          "rec4",
		Title:       "Scale AI Solutions",
		Description: "Scale successful pilot projects across the organization.",
		Priority:    "high",
		Category:    "Scale",
		Cost:        "high",
		Timeframe:   "long",
	}},
	"Advanced": {{
		ID:          "rec5",
		Title:       "Innovation Leadership",
		Description: "Lead industry innovation through advanced AI applications.",
		Priority:    "medium",
		Category:    "Innovation",
		Cost:        "high",
		Timeframe:   "long",
	}},
}

type goalText struct {
	title       string
	description string
	category    string
}

var goalRecommendations = map[string]goalText{
	"automate_operations": {
		title:       "Implement Process Automation",
		description: "Implement RPA and AI-driven process automation for key operational workflows.",
		category:    "Automation",
	},
	"enhance_customer_experience": {
		title:       "AI-Powered Customer Service",
		description: "Deploy AI chatbots and personalization engines to enhance customer interactions.",
		category:    "Customer Service",
	},
	"improve_decision_making": {
		title:       "Predictive Analytics Implementation",
		description: "Implement predictive analytics and decision support systems.",
		category:    "Analytics",
	},
}

// Engine generates and filters recommendations.
type Engine struct {
	scorer *scoring.Engine
}

// New returns an engine that falls back to scorer for the maturity level when
// an assessment has no results yet. A nil scorer uses the default tables.
func New(scorer *scoring.Engine) *Engine {
	if scorer == nil {
		scorer = scoring.NewDefault()
	}
	return &Engine{scorer: scorer}
}

// Recommend is Filter(Generate(a), a).
func (e *Engine) Recommend(a models.Assessment) []models.Recommendation {
	return e.Filter(e.Generate(a), a)
}

// Generate returns the level templates followed by one item per selected goal
// in stored order.
func (e *Engine) Generate(a models.Assessment) []models.Recommendation {
	level := e.Level(a)

	out := make([]models.Recommendation, 0, len(templates[level])+len(a.SelectedGoals))
	out = append(out, templates[level]...)
	for _, id := range a.SelectedGoals {
		out = append(out, goalRecommendation(id))
	}
	return out
}

// Filter drops items whose cost exceeds the budget ceiling or whose
// timeframe exceeds the timeline ceiling. Order is preserved.
func (e *Engine) Filter(recs []models.Recommendation, a models.Assessment) []models.Recommendation {
	costCeiling, hasCost := catalog.CostCeiling(a.BudgetInfo.Range)
	timeCeiling, hasTime := catalog.TimeframeCeiling(a.BudgetInfo.Timeline)

	out := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		if hasCost && catalog.CostRank(r.Cost) > catalog.CostRank(costCeiling) {
			continue
		}
		if hasTime && catalog.TimeframeRank(r.Timeframe) > catalog.TimeframeRank(timeCeiling) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Level is the maturity level recommendations are generated for. It prefers
// the stored result so recommendations agree with the score already shown.
func (e *Engine) Level(a models.Assessment) string {
	if a.Results != nil {
		if _, ok := templates[a.Results.MaturityLevel]; ok {
			return a.Results.MaturityLevel
		}
	}
	return e.scorer.Evaluate(a).Band.Label
}

func goalRecommendation(id string) models.Recommendation {
	title := id
	if g, ok := catalog.GoalByID(id); ok {
		title = g.Title
	}

	text, ok := goalRecommendations[id]
	if !ok {
		text = goalText{
			title:       fmt.Sprintf("%s Enhancement", title),
			description: fmt.Sprintf("Strategic implementation plan for %s.", title),
			category:    "Technology",
		}
	}

	return models.Recommendation{
		ID:          "goal-" + id,
		Title:       text.title,
		Description: text.description,
		Priority:    "high",
		Category:    text.category,
		Cost:        "medium",
		Timeframe:   "medium",
	}
}
