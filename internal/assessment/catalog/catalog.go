// Package catalog holds the closed option sets a questionnaire answer must be
// drawn from, the goal metadata used by scoring and recommendations, and the
// cost and timeframe scales used to filter recommendations.
package catalog

// Option is one selectable answer.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var Industries = []Option{
	{Value: "technology", Label: "Technology"},
	{Value: "healthcare", Label: "Healthcare"},
	{Value: "finance", Label: "Finance"},
	{Value: "manufacturing", Label: "Manufacturing"},
	{Value: "retail", Label: "Retail"},
	{Value: "other", Label: "Other"},
}

var CompanySizes = []Option{
	{Value: "1-50", Label: "1-50 employees"},
	{Value: "51-200", Label: "51-200 employees"},
	{Value: "201-500", Label: "201-500 employees"},
	{Value: "501-1000", Label: "501-1000 employees"},
	{Value: "1000+", Label: "1000+ employees"},
}

var Roles = []Option{
	{Value: "CTO", Label: "CTO"},
	{Value: "CIO", Label: "CIO"},
	{Value: "IT Director", Label: "IT Director"},
	{Value: "IT Manager", Label: "IT Manager"},
	{Value: "Other", Label: "Other"},
}

var JourneyTypes = []Option{
	{Value: "not_started", Label: "Not started"},
	{Value: "exploring", Label: "Exploring AI possibilities"},
	{Value: "planning", Label: "Planning AI implementation"},
	{Value: "implementing", Label: "Implementing AI solutions"},
	{Value: "optimizing", Label: "Optimizing AI systems"},
	{Value: "leading", Label: "Leading with AI innovation"},
}

var BudgetRanges = []Option{
	{Value: "0-50k", Label: "$0 - $50,000"},
	{Value: "50k-200k", Label: "$50,000 - $200,000"},
	{Value: "200k-500k", Label: "$200,000 - $500,000"},
	{Value: "500k+", Label: "$500,000+"},
}

var Timelines = []Option{
	{Value: "0-6m", Label: "0-6 months"},
	{Value: "6m-1y", Label: "6 months - 1 year"},
	{Value: "1y+", Label: "More than 1 year"},
}

// Values returns the raw values of opts in declaration order.
func Values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// Contains reports whether v is one of opts.
func Contains(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Goal is a selectable business goal.
type Goal struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

var Goals = []Goal{
	{
		ID:          "automate_operations",
		Title:       "Automate Operations",
		Description: "Reduce manual work and improve efficiency through automation.",
		Priority:    PriorityHigh,
	},
	{
		ID:          "enhance_customer_experience",
		Title:       "Enhance Customer Experience",
		Description: "Improve customer satisfaction and engagement through AI-powered insights.",
		Priority:    PriorityHigh,
	},
	{
		ID:          "improve_decision_making",
		Title:       "Improve Decision Making",
		Description: "Make better business decisions with AI-driven analytics and predictions.",
		Priority:    PriorityHigh,
	},
	{
		ID:          "develop_new_products",
		Title:       "Develop New Products",
		Description: "Create innovative AI-powered products and services.",
		Priority:    PriorityMedium,
	},
	{
		ID:          "improve_security",
		Title:       "Improve Security",
		Description: "Detect threats and anomalies earlier with AI-assisted monitoring.",
		Priority:    PriorityMedium,
	},
	{
		ID:          "reduce_costs",
		Title:       "Reduce Costs",
		Description: "Lower operating costs by targeting AI at high-spend processes.",
		Priority:    PriorityLow,
	},
}

// GoalByID looks up goal metadata.
func GoalByID(id string) (Goal, bool) {
	for _, g := range Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// GoalIDs returns every goal id in declaration order.
func GoalIDs() []string {
	out := make([]string, len(Goals))
	for i, g := range Goals {
		out[i] = g.ID
	}
	return out
}

// Journey follow-up question ids (extended flow). Prompts are UI content.
var JourneyQuestionIDs = []string{"q1", "q2"}

// Ordered cost and timeframe scales. A value's position is its rank.
var (
	CostScale      = []string{"low", "medium", "high", "very_high"}
	TimeframeScale = []string{"short", "medium", "long", "very_long"}
)

// CostRank returns the position of c on CostScale, or -1.
func CostRank(c string) int {
	return rank(CostScale, c)
}

// TimeframeRank returns the position of t on TimeframeScale, or -1.
func TimeframeRank(t string) int {
	return rank(TimeframeScale, t)
}

var costCeilings = map[string]string{
	"0-50k":     "medium",
	"50k-200k":  "high",
	"200k-500k": "very_high",
	"500k+":     "very_high",
}

var timeframeCeilings = map[string]string{
	"0-6m":  "medium",
	"6m-1y": "long",
	"1y+":   "very_long",
}

// CostCeiling returns the highest cost a budget range affords. ok is false
// when the range is unset or unknown, meaning no ceiling applies.
func CostCeiling(budgetRange string) (string, bool) {
	c, ok := costCeilings[budgetRange]
	return c, ok
}

// TimeframeCeiling returns the longest timeframe a timeline allows.
func TimeframeCeiling(timeline string) (string, bool) {
	t, ok := timeframeCeilings[timeline]
	return t, ok
}

func rank(scale []string, v string) int {
	for i, s := range scale {
		if s == v {
			return i
		}
	}
	return -1
}
