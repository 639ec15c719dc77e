// Package navigator owns step ordering: progress percentages, next/previous
// lookup, and the validation guard on forward transitions.
package navigator

import (
	"fmt"
	"math"

	"maturity-assessment/internal/assessment/validation"
	"maturity-assessment/internal/common/config"
	"maturity-assessment/internal/models"
)

// Flow is an ordered, fixed step sequence ending in the results step.
type Flow struct {
	name  string
	steps []models.StepID
}

var (
	// Standard is the canonical flow.
	Standard = Flow{
		name: config.FlowStandard,
		steps: []models.StepID{
			models.StepDemographics,
			models.StepJourneyStatus,
			models.StepGoals,
			models.StepBudget,
			models.StepResults,
		},
	}

	// Extended adds the journey and qualifying follow-up questions.
	Extended = Flow{
		name: config.FlowExtended,
		steps: []models.StepID{
			models.StepDemographics,
			models.StepJourneyStatus,
			models.StepJourneyQuestions,
			models.StepGoals,
			models.StepQualifyingQuestions,
			models.StepBudget,
			models.StepResults,
		},
	}
)

// ForName returns the flow configured under name.
func ForName(name string) (Flow, error) {
	switch name {
	case "", config.FlowStandard:
		return Standard, nil
	case config.FlowExtended:
		return Extended, nil
	}
	return Flow{}, fmt.Errorf("unknown assessment flow %q", name)
}

func (f Flow) Name() string { return f.name }

// Steps returns a copy of the step order.
func (f Flow) Steps() []models.StepID {
	return append([]models.StepID(nil), f.steps...)
}

func (f Flow) First() models.StepID    { return f.steps[0] }
func (f Flow) Terminal() models.StepID { return f.steps[len(f.steps)-1] }

// Contains reports whether step is part of this flow.
func (f Flow) Contains(step models.StepID) bool {
	return f.index(step) >= 0
}

// Resolve maps a step outside the flow, e.g. from corrupted state, to the first step.
func (f Flow) Resolve(step models.StepID) models.StepID {
	if f.Contains(step) {
		return step
	}
	return f.First()
}

// IsTerminal reports whether step is the last step.
func (f Flow) IsTerminal(step models.StepID) bool {
	return f.Resolve(step) == f.Terminal()
}

// Progress is (index+1)/total*100 rounded to the nearest integer.
func (f Flow) Progress(step models.StepID) int {
	idx := f.index(f.Resolve(step))
	return int(math.Round(float64(idx+1) / float64(len(f.steps)) * 100))
}

// Next returns the following step; ok is false at the terminal step.
func (f Flow) Next(step models.StepID) (models.StepID, bool) {
	idx := f.index(f.Resolve(step))
	if idx+1 >= len(f.steps) {
		return "", false
	}
	return f.steps[idx+1], true
}

// Previous returns the preceding step; ok is false at the first step.
func (f Flow) Previous(step models.StepID) (models.StepID, bool) {
	idx := f.index(f.Resolve(step))
	if idx == 0 {
		return "", false
	}
	return f.steps[idx-1], true
}

// Transition describes the outcome of a navigation intent.
type Transition struct {
	From  models.StepID
	To    models.StepID
	Moved bool
	// Validation is the guard result; zero for backward moves.
	Validation validation.Result
}

// Advance moves forward only when data for the current step validates.
func (f Flow) Advance(step models.StepID, data validation.StepData) Transition {
	from := f.Resolve(step)
	next, ok := f.Next(from)
	if !ok {
		return Transition{From: from, To: from}
	}

	result := validation.Validate(from, data)
	if !result.IsValid {
		return Transition{From: from, To: from, Validation: result}
	}
	return Transition{From: from, To: next, Moved: true, Validation: result}
}

// Retreat moves back without validating.
func (f Flow) Retreat(step models.StepID) Transition {
	from := f.Resolve(step)
	prev, ok := f.Previous(from)
	if !ok {
		return Transition{From: from, To: from}
	}
	return Transition{From: from, To: prev, Moved: true}
}

func (f Flow) index(step models.StepID) int {
	for i, s := range f.steps {
		if s == step {
			return i
		}
	}
	return -1
}
