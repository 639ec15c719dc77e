// Package wizard drives one assessment session: it applies field changes and
// navigation intents from a UI layer to the state store and exposes read-only
// projections of the aggregate.
package wizard

import (
	"context"
	"maps"
	"strings"

	"maturity-assessment/internal/assessment/navigator"
	"maturity-assessment/internal/assessment/recommendation"
	"maturity-assessment/internal/assessment/scoring"
	"maturity-assessment/internal/assessment/store"
	"maturity-assessment/internal/assessment/validation"
	"maturity-assessment/internal/common/errors"
	"maturity-assessment/internal/common/logger"
	"maturity-assessment/internal/common/metrics"
	"maturity-assessment/internal/models"
)

// Field names accepted by Change besides free-form question ids.
const (
	FieldIndustry      = "industry"
	FieldCompanySize   = "companySize"
	FieldRole          = "role"
	FieldJourneyType   = "type"
	FieldDescription   = "description"
	FieldSelectedGoals = "selectedGoals"
	FieldBudgetRange   = "range"
	FieldTimeline      = "timeline"
)

// ChangeEvent is a single field edit. For the goals step Value names the goal
// to toggle. For the question steps Field is the question id and an empty
// Value clears the answer.
type ChangeEvent struct {
	Step  models.StepID
	Field string
	Value string
}

// Outcome reports what a navigation intent did.
type Outcome struct {
	Transition navigator.Transition
	Assessment models.Assessment
	Persisted  bool
}

// Session is the controller a UI layer talks to.
type Session struct {
	store       *store.Store
	flow        navigator.Flow
	scorer      *scoring.Engine
	recommender *recommendation.Engine
	logger      logger.Logger
	sessionID   string
}

// New returns a session over st. Nil engines fall back to the default tables.
func New(st *store.Store, flow navigator.Flow, scorer *scoring.Engine, recommender *recommendation.Engine, log logger.Logger) *Session {
	if scorer == nil {
		scorer = scoring.NewDefault()
	}
	if recommender == nil {
		recommender = recommendation.New(scorer)
	}
	return &Session{
		store:       st,
		flow:        flow,
		scorer:      scorer,
		recommender: recommender,
		logger:      log.WithFields(map[string]interface{}{"component": "wizard", "flow": flow.Name()}),
	}
}

// Open resumes or starts the session and returns its aggregate.
func (s *Session) Open(ctx context.Context) models.Assessment {
	id, a := s.store.OpenSession(ctx)
	s.sessionID = id
	if s.needsRepair(a) {
		a, _ = s.store.Update(ctx, func(a models.Assessment) models.Assessment {
			a.CurrentStep = s.flow.Resolve(a.CurrentStep)
			a.JourneyStatus.CompletedSteps = s.inFlow(a.JourneyStatus.CompletedSteps)
			return a
		})
		s.logger.Info("stored progress repaired for flow", map[string]interface{}{
			"sessionId":      id,
			"currentStep":    a.CurrentStep,
			"completedSteps": a.JourneyStatus.CompletedSteps,
		})
	}
	s.logger.Debug("session opened", map[string]interface{}{"sessionId": id, "currentStep": a.CurrentStep})
	return s.project(a)
}

// SessionID returns the active session id.
func (s *Session) SessionID() string {
	return s.sessionID
}

// Change applies ev to the aggregate. It reports false, without writing, when
// the event does not name a field of a step in this flow. A change drops the
// field's pending error and any stale results. On the terminal step results
// are recomputed when the edited step still validates; otherwise the session
// returns to the edited step with its errors.
func (s *Session) Change(ctx context.Context, ev ChangeEvent) (models.Assessment, bool) {
	if !s.flow.Contains(ev.Step) || !acceptsField(ev.Step, ev.Field) {
		s.logger.Debug("ignoring change for unknown field", map[string]interface{}{
			"step":  ev.Step,
			"field": ev.Field,
		})
		return s.Snapshot(), false
	}

	next, _ := s.store.Update(ctx, func(a models.Assessment) models.Assessment {
		apply(&a, ev)
		delete(a.Errors, ev.Field)
		a.Results = nil
		if !s.flow.IsTerminal(a.CurrentStep) {
			return a
		}

		data, _ := validation.StepDataFor(ev.Step, a)
		if res := validation.Validate(ev.Step, data); !res.IsValid {
			a.CurrentStep = ev.Step
			a.Errors = maps.Clone(res.Errors)
			return a
		}
		a.Results = s.results(a)
		return a
	})
	if next.Results != nil {
		metrics.ResultsComputed.WithLabelValues(next.Results.MaturityLevel).Inc()
		s.logger.Info("results recomputed after change", map[string]interface{}{
			"step":          ev.Step,
			"field":         ev.Field,
			"score":         next.Results.Score,
			"maturityLevel": next.Results.MaturityLevel,
		})
	}
	return s.project(next), true
}

// Advance validates the current step and moves forward when it passes. On
// failure the field errors are stored on the aggregate. Reaching the terminal
// step computes results.
func (s *Session) Advance(ctx context.Context) Outcome {
	current := s.store.Current()
	from := s.flow.Resolve(current.CurrentStep)

	if s.flow.IsTerminal(from) {
		return Outcome{
			Transition: navigator.Transition{From: from, To: from},
			Assessment: s.project(current),
			Persisted:  true,
		}
	}

	data, _ := validation.StepDataFor(from, current)
	tr := s.flow.Advance(from, data)

	if !tr.Moved {
		metrics.ValidationFailures.WithLabelValues(string(from)).Inc()
		s.logger.Info("step validation failed",
			errors.NewValidationFailedError(string(from), tr.Validation.Errors).Fields())
		next, persisted := s.store.Update(ctx, func(a models.Assessment) models.Assessment {
			a.CurrentStep = from
			a.Errors = maps.Clone(tr.Validation.Errors)
			return a
		})
		return Outcome{Transition: tr, Assessment: s.project(next), Persisted: persisted}
	}

	next, persisted := s.store.Update(ctx, func(a models.Assessment) models.Assessment {
		if !a.HasCompleted(from) {
			a.JourneyStatus.CompletedSteps = append(a.JourneyStatus.CompletedSteps, from)
		}
		a.CurrentStep = tr.To
		a.Errors = map[string]string{}
		if s.flow.IsTerminal(tr.To) {
			a.Results = s.results(a)
		}
		return a
	})

	metrics.StepTransitions.WithLabelValues(string(from), string(tr.To), "forward").Inc()
	if next.Results != nil && s.flow.IsTerminal(tr.To) {
		metrics.ResultsComputed.WithLabelValues(next.Results.MaturityLevel).Inc()
		s.logger.Info("assessment completed", map[string]interface{}{
			"sessionId":       s.sessionID,
			"score":           next.Results.Score,
			"maturityLevel":   next.Results.MaturityLevel,
			"recommendations": len(next.Results.Recommendations),
		})
	}
	return Outcome{Transition: tr, Assessment: s.project(next), Persisted: persisted}
}

// Retreat moves to the previous step without validating.
func (s *Session) Retreat(ctx context.Context) Outcome {
	current := s.store.Current()
	tr := s.flow.Retreat(current.CurrentStep)
	if !tr.Moved {
		return Outcome{Transition: tr, Assessment: s.project(current), Persisted: true}
	}

	next, persisted := s.store.Update(ctx, func(a models.Assessment) models.Assessment {
		a.CurrentStep = tr.To
		a.Errors = map[string]string{}
		return a
	})
	metrics.StepTransitions.WithLabelValues(string(tr.From), string(tr.To), "backward").Inc()
	return Outcome{Transition: tr, Assessment: s.project(next), Persisted: persisted}
}

// Restart discards all answers and returns to the first step.
func (s *Session) Restart(ctx context.Context) models.Assessment {
	if s.sessionID == "" {
		s.sessionID = s.store.SessionID()
	}
	return s.project(s.store.Reset(ctx, s.sessionID))
}

// Snapshot returns a copy of the aggregate with the current step resolved
// against the flow.
func (s *Session) Snapshot() models.Assessment {
	return s.project(s.store.Current())
}

// Progress returns the completion percentage of the current step.
func (s *Session) Progress() int {
	return s.flow.Progress(s.store.Current().CurrentStep)
}

// Errors returns the pending field errors of the current step.
func (s *Session) Errors() map[string]string {
	return s.store.Current().Errors
}

// Results returns the computed results once the terminal step is reached.
func (s *Session) Results() (*models.Results, bool) {
	a := s.store.Current()
	if !s.flow.IsTerminal(a.CurrentStep) || a.Results == nil {
		return nil, false
	}
	return a.Results, true
}

func (s *Session) results(a models.Assessment) *models.Results {
	eval := s.scorer.Evaluate(a)
	r := &models.Results{
		Score:               eval.Score,
		MaturityLevel:       eval.Band.Label,
		MaturityDescription: eval.Band.Description,
		Breakdown:           eval.Breakdown,
	}
	a.Results = r
	r.Recommendations = s.recommender.Recommend(a)
	return r
}

func (s *Session) project(a models.Assessment) models.Assessment {
	a.CurrentStep = s.flow.Resolve(a.CurrentStep)
	a.JourneyStatus.CompletedSteps = s.inFlow(a.JourneyStatus.CompletedSteps)
	return a
}

// inFlow drops completed steps that belong to another flow, e.g. after a
// session stored under the extended flow is resumed under the standard one.
func (s *Session) inFlow(steps []models.StepID) []models.StepID {
	if steps == nil {
		return nil
	}
	out := make([]models.StepID, 0, len(steps))
	for _, step := range steps {
		if s.flow.Contains(step) {
			out = append(out, step)
		}
	}
	return out
}

func (s *Session) needsRepair(a models.Assessment) bool {
	if !s.flow.Contains(a.CurrentStep) {
		return true
	}
	return len(s.inFlow(a.JourneyStatus.CompletedSteps)) != len(a.JourneyStatus.CompletedSteps)
}

func acceptsField(step models.StepID, field string) bool {
	switch step {
	case models.StepDemographics:
		return field == FieldIndustry || field == FieldCompanySize || field == FieldRole
	case models.StepJourneyStatus:
		return field == FieldJourneyType || field == FieldDescription
	case models.StepGoals:
		return field == FieldSelectedGoals
	case models.StepBudget:
		return field == FieldBudgetRange || field == FieldTimeline
	case models.StepJourneyQuestions, models.StepQualifyingQuestions:
		return strings.TrimSpace(field) != ""
	}
	return false
}

func apply(a *models.Assessment, ev ChangeEvent) {
	switch ev.Step {
	case models.StepDemographics:
		switch ev.Field {
		case FieldIndustry:
			a.Organization.Industry = ev.Value
		case FieldCompanySize:
			a.Organization.CompanySize = ev.Value
		case FieldRole:
			a.Organization.Role = ev.Value
		}
	case models.StepJourneyStatus:
		switch ev.Field {
		case FieldJourneyType:
			a.JourneyStatus.Type = ev.Value
		case FieldDescription:
			a.JourneyStatus.Description = ev.Value
		}
	case models.StepJourneyQuestions:
		a.JourneyStatus.Responses = setAnswer(a.JourneyStatus.Responses, ev.Field, ev.Value)
	case models.StepGoals:
		if a.HasGoal(ev.Value) {
			a.SelectedGoals = without(a.SelectedGoals, ev.Value)
		} else {
			a.SelectedGoals = append(a.SelectedGoals, ev.Value)
		}
	case models.StepQualifyingQuestions:
		a.QualifyingResponses = setAnswer(a.QualifyingResponses, ev.Field, ev.Value)
	case models.StepBudget:
		switch ev.Field {
		case FieldBudgetRange:
			a.BudgetInfo.Range = ev.Value
		case FieldTimeline:
			a.BudgetInfo.Timeline = ev.Value
		}
	}
}

func without(goals []string, goal string) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		if g != goal {
			out = append(out, g)
		}
	}
	return out
}

func setAnswer(m map[string]string, id, value string) map[string]string {
	if value == "" {
		delete(m, id)
		return m
	}
	if m == nil {
		m = map[string]string{}
	}
	m[id] = value
	return m
}
