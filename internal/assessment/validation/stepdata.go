package validation

import (
	"encoding/json"
	"fmt"

	"maturity-assessment/internal/common/errors"
	"maturity-assessment/internal/models"
)

// StepData is the payload a single step submits. Each variant carries only
// the fields of its own step.
type StepData interface {
	Step() models.StepID
	value(field string) fieldValue
}

type DemographicsData struct {
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Role        string `json:"role"`
}

type JourneyStatusData struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type JourneyQuestionsData struct {
	Responses map[string]string `json:"responses"`
}

type GoalsData struct {
	SelectedGoals []string `json:"selectedGoals"`
}

type QualifyingQuestionsData struct {
	Responses map[string]string `json:"responses"`
}

type BudgetData struct {
	Range    string `json:"range"`
	Timeline string `json:"timeline"`
}

func (DemographicsData) Step() models.StepID        { return models.StepDemographics }
func (JourneyStatusData) Step() models.StepID       { return models.StepJourneyStatus }
func (JourneyQuestionsData) Step() models.StepID    { return models.StepJourneyQuestions }
func (GoalsData) Step() models.StepID               { return models.StepGoals }
func (QualifyingQuestionsData) Step() models.StepID { return models.StepQualifyingQuestions }
func (BudgetData) Step() models.StepID              { return models.StepBudget }

// fieldValue is either a single text answer or a list of selections.
type fieldValue struct {
	text   string
	items  []string
	isList bool
}

func text(s string) fieldValue        { return fieldValue{text: s} }
func list(items []string) fieldValue  { return fieldValue{items: items, isList: true} }
func (v fieldValue) present() bool    { return v.count() > 0 }
func (v fieldValue) values() []string { return v.items }

func (v fieldValue) count() int {
	if v.isList {
		return len(v.items)
	}
	return len([]rune(trim(v.text)))
}

func (d DemographicsData) value(field string) fieldValue {
	switch field {
	case "industry":
		return text(d.Industry)
	case "companySize":
		return text(d.CompanySize)
	case "role":
		return text(d.Role)
	}
	return fieldValue{}
}

func (d JourneyStatusData) value(field string) fieldValue {
	switch field {
	case "type":
		return text(d.Type)
	case "description":
		return text(d.Description)
	}
	return fieldValue{}
}

func (d JourneyQuestionsData) value(field string) fieldValue {
	return text(d.Responses[field])
}

func (d GoalsData) value(field string) fieldValue {
	if field == "selectedGoals" {
		return list(d.SelectedGoals)
	}
	return fieldValue{}
}

func (d QualifyingQuestionsData) value(field string) fieldValue {
	if field != "responses" {
		return fieldValue{}
	}
	answered := make([]string, 0, len(d.Responses))
	for _, id := range sortedKeys(d.Responses) {
		if trim(d.Responses[id]) != "" {
			answered = append(answered, id)
		}
	}
	return list(answered)
}

func (d BudgetData) value(field string) fieldValue {
	switch field {
	case "range":
		return text(d.Range)
	case "timeline":
		return text(d.Timeline)
	}
	return fieldValue{}
}

// DecodeStepData builds the variant for step from a JSON object.
func DecodeStepData(step models.StepID, raw []byte) (StepData, error) {
	var (
		data StepData
		err  error
	)
	switch step {
	case models.StepDemographics:
		var d DemographicsData
		err = json.Unmarshal(raw, &d)
		data = d
	case models.StepJourneyStatus:
		var d JourneyStatusData
		err = json.Unmarshal(raw, &d)
		data = d
	case models.StepJourneyQuestions:
		var d JourneyQuestionsData
		err = json.Unmarshal(raw, &d)
		data = d
	case models.StepGoals:
		var d GoalsData
		err = json.Unmarshal(raw, &d)
		data = d
	case models.StepQualifyingQuestions:
		var d QualifyingQuestionsData
		err = json.Unmarshal(raw, &d)
		data = d
	case models.StepBudget:
		var d BudgetData
		err = json.Unmarshal(raw, &d)
		data = d
	default:
		return nil, errors.NewInvalidStepError(string(step))
	}
	if err != nil {
		return nil, errors.NewInvalidInputError(fmt.Errorf("decode %s data: %w", step, err))
	}
	return data, nil
}

// StepDataFor projects the aggregate onto the data submitted by step.
// ok is false for steps that collect nothing.
func StepDataFor(step models.StepID, a models.Assessment) (StepData, bool) {
	switch step {
	case models.StepDemographics:
		return DemographicsData{
			Industry:    a.Organization.Industry,
			CompanySize: a.Organization.CompanySize,
			Role:        a.Organization.Role,
		}, true
	case models.StepJourneyStatus:
		return JourneyStatusData{Type: a.JourneyStatus.Type, Description: a.JourneyStatus.Description}, true
	case models.StepJourneyQuestions:
		return JourneyQuestionsData{Responses: a.JourneyStatus.Responses}, true
	case models.StepGoals:
		return GoalsData{SelectedGoals: a.SelectedGoals}, true
	case models.StepQualifyingQuestions:
		return QualifyingQuestionsData{Responses: a.QualifyingResponses}, true
	case models.StepBudget:
		return BudgetData{Range: a.BudgetInfo.Range, Timeline: a.BudgetInfo.Timeline}, true
	}
	return nil, false
}
