// internal/models/assessment.go
package models

// StepID identifies one wizard step.
type StepID string

const (
	StepDemographics        StepID = "demographics"
	StepJourneyStatus       StepID = "journey_status"
	StepJourneyQuestions    StepID = "journey_questions"
	StepGoals               StepID = "goals"
	StepQualifyingQuestions StepID = "qualifying_questions"
	StepBudget              StepID = "budget"
	StepResults             StepID = "results"
)

// KnownSteps lists every step id that may appear in any flow, in flow order.
var KnownSteps = []StepID{
	StepDemographics,
	StepJourneyStatus,
	StepJourneyQuestions,
	StepGoals,
	StepQualifyingQuestions,
	StepBudget,
	StepResults,
}

// IsKnownStep reports whether s belongs to the canonical step vocabulary.
func IsKnownStep(s StepID) bool {
	for _, k := range KnownSteps {
		if k == s {
			return true
		}
	}
	return false
}

// Assessment is the single aggregate a wizard session mutates and persists.
type Assessment struct {
	CurrentStep         StepID            `json:"currentStep"`
	Organization        Organization      `json:"organization"`
	JourneyStatus       JourneyStatus     `json:"journeyStatus"`
	SelectedGoals       []string          `json:"selectedGoals"`
	QualifyingResponses map[string]string `json:"qualifyingResponses,omitempty"`
	BudgetInfo          BudgetInfo        `json:"budgetInfo"`
	Errors              map[string]string `json:"errors"`
	Results             *Results          `json:"results,omitempty"`
}

type Organization struct {
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Role        string `json:"role"`
}

type JourneyStatus struct {
	Type           string            `json:"type"`
	Description    string            `json:"description"`
	CompletedSteps []StepID          `json:"completedSteps"`
	Responses      map[string]string `json:"responses,omitempty"`
}

type BudgetInfo struct {
	Range    string `json:"range"`
	Timeline string `json:"timeline"`
}

// Results is filled once the terminal step is reached.
type Results struct {
	Score               int              `json:"score"`
	MaturityLevel       string           `json:"maturityLevel"`
	MaturityDescription string           `json:"maturityDescription"`
	Breakdown           ScoreBreakdown   `json:"breakdown"`
	Recommendations     []Recommendation `json:"recommendations"`
}

// ScoreBreakdown holds the three unweighted component scores.
type ScoreBreakdown struct {
	Journey int `json:"journey"`
	Goals   int `json:"goals"`
	Budget  int `json:"budget"`
}

type Recommendation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	Cost        string `json:"cost"`
	Timeframe   string `json:"timeframe"`
}

// NewAssessment returns the default aggregate for a fresh session.
func NewAssessment() Assessment {
	return Assessment{
		CurrentStep: StepDemographics,
		JourneyStatus: JourneyStatus{
			CompletedSteps: []StepID{},
		},
		SelectedGoals: []string{},
		Errors:        map[string]string{},
	}
}

// Clone returns a deep copy.
func (a Assessment) Clone() Assessment {
	out := a
	if a.JourneyStatus.CompletedSteps != nil {
		out.JourneyStatus.CompletedSteps = append([]StepID{}, a.JourneyStatus.CompletedSteps...)
	}
	out.JourneyStatus.Responses = cloneMap(a.JourneyStatus.Responses)
	if a.SelectedGoals != nil {
		out.SelectedGoals = append([]string{}, a.SelectedGoals...)
	}
	out.QualifyingResponses = cloneMap(a.QualifyingResponses)
	out.Errors = cloneMap(a.Errors)
	if a.Results != nil {
		r := *a.Results
		if a.Results.Recommendations != nil {
			r.Recommendations = append([]Recommendation{}, a.Results.Recommendations...)
		}
		out.Results = &r
	}
	return out
}

// Normalize enforces the aggregate's structural invariants in place: goals are
// deduplicated keeping first occurrence, completed steps hold only known steps
// once each, and collections use one canonical empty form so a JSON round
// trip yields an identical value.
func (a *Assessment) Normalize() {
	if !IsKnownStep(a.CurrentStep) {
		a.CurrentStep = StepDemographics
	}

	goals := make([]string, 0, len(a.SelectedGoals))
	seenGoal := make(map[string]bool, len(a.SelectedGoals))
	for _, g := range a.SelectedGoals {
		if g == "" || seenGoal[g] {
			continue
		}
		seenGoal[g] = true
		goals = append(goals, g)
	}
	a.SelectedGoals = goals

	steps := make([]StepID, 0, len(a.JourneyStatus.CompletedSteps))
	seenStep := make(map[StepID]bool, len(a.JourneyStatus.CompletedSteps))
	for _, s := range a.JourneyStatus.CompletedSteps {
		if !IsKnownStep(s) || seenStep[s] {
			continue
		}
		seenStep[s] = true
		steps = append(steps, s)
	}
	a.JourneyStatus.CompletedSteps = steps

	if a.Errors == nil {
		a.Errors = map[string]string{}
	}
	if len(a.JourneyStatus.Responses) == 0 {
		a.JourneyStatus.Responses = nil
	}
	if len(a.QualifyingResponses) == 0 {
		a.QualifyingResponses = nil
	}
	if a.Results != nil && a.Results.Recommendations == nil {
		a.Results.Recommendations = []Recommendation{}
	}
}

// HasCompleted reports whether step is in the completed set.
func (a Assessment) HasCompleted(step StepID) bool {
	for _, s := range a.JourneyStatus.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// HasGoal reports whether goal is selected.
func (a Assessment) HasGoal(goal string) bool {
	for _, g := range a.SelectedGoals {
		if g == goal {
			return true
		}
	}
	return false
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
