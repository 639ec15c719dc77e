// Package scoring derives the maturity score of a completed assessment from
// three component scores (journey, goals, budget) and maps it onto a band.
package scoring

import (
	"fmt"
	"math"

	"maturity-assessment/internal/assessment/catalog"
	"maturity-assessment/internal/common/errors"
	"maturity-assessment/internal/models"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Band is a contiguous, inclusive score range mapped to a maturity level.
type Band struct {
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Weights combine the component scores; they must sum to 1.0.
type Weights struct {
	Journey float64
	Goals   float64
	Budget  float64
}

// Tables are the lookup tables and caps the engine scores with.
type Tables struct {
	Journey      map[string]int
	GoalPriority map[catalog.Priority]int
	GoalsCap     int
	BudgetRange  map[string]int
	Timeline     map[string]int
	BudgetCap    int
	Weights      Weights
	Bands        []Band
}

// DefaultTables returns the production scoring constants.
func DefaultTables() Tables {
	return Tables{
		Journey: map[string]int{
			"not_started":  20,
			"exploring":    30,
			"planning":     40,
			"implementing": 60,
			"optimizing":   80,
			"leading":      100,
		},
		GoalPriority: map[catalog.Priority]int{
			catalog.PriorityHigh:   30,
			catalog.PriorityMedium: 20,
			catalog.PriorityLow:    10,
		},
		GoalsCap: 40,
		BudgetRange: map[string]int{
			"0-50k":     10,
			"50k-200k":  20,
			"200k-500k": 30,
			"500k+":     40,
		},
		Timeline: map[string]int{
			"0-6m":  30,
			"6m-1y": 40,
			"1y+":   20,
		},
		BudgetCap: 80,
		Weights:   Weights{Journey: 0.4, Goals: 0.3, Budget: 0.3},
		Bands: []Band{
			{Min: 0, Max: 19, Label: "Initial", Description: "AI adoption has not yet begun in a structured way."},
			{Min: 20, Max: 39, Label: "Basic", Description: "Early awareness with isolated experiments and no shared strategy."},
			{Min: 40, Max: 59, Label: "Developing", Description: "Pilots are underway and a data strategy is taking shape."},
			{Min: 60, Max: 79, Label: "Intermediate", Description: "AI delivers value in several areas and is ready to scale."},
			{Min: 80, Max: 100, Label: "Advanced", Description: "AI is embedded across the organization and drives innovation."},
		},
	}
}

// Engine scores assessments against a validated set of tables.
type Engine struct {
	t Tables
}

// Evaluation is the full scoring outcome for one assessment.
type Evaluation struct {
	Score     int
	Band      Band
	Breakdown models.ScoreBreakdown
}

// New validates t and returns an engine. Weights must sum to 1.0 and the bands
// must cover every integer in [0,100] exactly once, in ascending order.
func New(t Tables) (*Engine, error) {
	if err := validateWeights(t.Weights); err != nil {
		return nil, err
	}
	if err := validateBands(t.Bands); err != nil {
		return nil, err
	}
	return &Engine{t: t}, nil
}

// NewDefault returns an engine over DefaultTables.
func NewDefault() *Engine {
	e, err := New(DefaultTables())
	if err != nil {
		panic(err)
	}
	return e
}

// JourneyScore looks up the journey type; unknown or missing types score 0.
func (e *Engine) JourneyScore(js models.JourneyStatus) int {
	return e.t.Journey[js.Type]
}

// GoalsScore sums per-goal priority weights, counting each goal once, capped at GoalsCap.
func (e *Engine) GoalsScore(goals []string) int {
	seen := make(map[string]bool, len(goals))
	score := 0
	for _, id := range goals {
		if seen[id] {
			continue
		}
		seen[id] = true
		if g, ok := catalog.GoalByID(id); ok {
			score += e.t.GoalPriority[g.Priority]
		}
	}
	return clamp(score, 0, e.t.GoalsCap)
}

// BudgetScore adds the range and timeline components, capped at BudgetCap.
func (e *Engine) BudgetScore(b models.BudgetInfo) int {
	return clamp(e.t.BudgetRange[b.Range]+e.t.Timeline[b.Timeline], 0, e.t.BudgetCap)
}

// Breakdown returns the three unweighted component scores.
func (e *Engine) Breakdown(a models.Assessment) models.ScoreBreakdown {
	return models.ScoreBreakdown{
		Journey: e.JourneyScore(a.JourneyStatus),
		Goals:   e.GoalsScore(a.SelectedGoals),
		Budget:  e.BudgetScore(a.BudgetInfo),
	}
}

// TotalScore is the weighted sum of the components, rounded half away from
// zero and clamped to [0,100].
func (e *Engine) TotalScore(a models.Assessment) int {
	return e.total(e.Breakdown(a))
}

// MaturityLevel returns the band containing score. Out-of-range scores are
// clamped first, so a band is always found.
func (e *Engine) MaturityLevel(score int) Band {
	score = clamp(score, MinScore, MaxScore)
	for _, b := range e.t.Bands {
		if score >= b.Min && score <= b.Max {
			return b
		}
	}
	// unreachable: New rejects band sets with gaps
	return e.t.Bands[0]
}

// Bands returns a copy of the band table.
func (e *Engine) Bands() []Band {
	return append([]Band(nil), e.t.Bands...)
}

// Evaluate computes breakdown, total and band in one pass.
func (e *Engine) Evaluate(a models.Assessment) Evaluation {
	breakdown := e.Breakdown(a)
	score := e.total(breakdown)
	return Evaluation{
		Score:     score,
		Band:      e.MaturityLevel(score),
		Breakdown: breakdown,
	}
}

func (e *Engine) total(b models.ScoreBreakdown) int {
	w := e.t.Weights
	weighted := float64(b.Journey)*w.Journey +
		float64(b.Goals)*w.Goals +
		float64(b.Budget)*w.Budget
	return clamp(int(math.Round(weighted)), MinScore, MaxScore)
}

func validateWeights(w Weights) error {
	for _, v := range []float64{w.Journey, w.Goals, w.Budget} {
		if v < 0 {
			return errors.NewInvalidConfigurationError(fmt.Sprintf("negative weight %v", v))
		}
	}
	if sum := w.Journey + w.Goals + w.Budget; math.Abs(sum-1.0) > 1e-9 {
		return errors.NewInvalidConfigurationError(fmt.Sprintf("weights sum to %v, want 1.0", sum))
	}
	return nil
}

func validateBands(bands []Band) error {
	if len(bands) == 0 {
		return errors.NewInvalidConfigurationError("no maturity bands defined")
	}
	next := MinScore
	for _, b := range bands {
		if b.Min != next {
			return errors.NewInvalidConfigurationError(
				fmt.Sprintf("band %q starts at %d, want %d", b.Label, b.Min, next))
		}
		if b.Max < b.Min {
			return errors.NewInvalidConfigurationError(
				fmt.Sprintf("band %q has max %d below min %d", b.Label, b.Max, b.Min))
		}
		next = b.Max + 1
	}
	if next != MaxScore+1 {
		return errors.NewInvalidConfigurationError(
			fmt.Sprintf("bands end at %d, want %d", next-1, MaxScore))
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
