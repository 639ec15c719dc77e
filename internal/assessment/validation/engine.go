// Package validation evaluates the static per-step field rules. Every function
// here is pure: the same step and data always produce the same Result.
package validation

import (
	"sort"
	"strings"

	"maturity-assessment/internal/assessment/catalog"
	"maturity-assessment/internal/models"
)

// InvalidStepMessage is the single error reported for an unknown step or a
// payload whose variant does not match the step.
const InvalidStepMessage = "Invalid step"

// Rule constrains one field. Rules run in declaration order and the first
// failing rule for a field wins.
type Rule struct {
	Field    string
	Required bool
	// Min is a minimum item count for list fields and a minimum length for text.
	Min     int
	Options []string
	// Message is reported when Required or Min fails.
	Message       string
	OptionMessage string
}

// Result is the outcome of validating one step.
type Result struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
	// Fields lists failing fields in rule order.
	Fields []string `json:"fields"`
}

var rules = map[models.StepID][]Rule{
	models.StepDemographics: {
		{
			Field:         "industry",
			Required:      true,
			Options:       catalog.Values(catalog.Industries),
			Message:       "Industry is required",
			OptionMessage: "Invalid industry selection",
		},
		{
			Field:         "companySize",
			Required:      true,
			Options:       catalog.Values(catalog.CompanySizes),
			Message:       "Company size is required",
			OptionMessage: "Invalid company size selection",
		},
		{
			Field:         "role",
			Required:      true,
			Options:       catalog.Values(catalog.Roles),
			Message:       "Role is required",
			OptionMessage: "Invalid role selection",
		},
	},
	models.StepJourneyStatus: {
		{
			Field:         "type",
			Required:      true,
			Options:       catalog.Values(catalog.JourneyTypes),
			Message:       "Journey status type is required",
			OptionMessage: "Invalid journey status selection",
		},
	},
	models.StepJourneyQuestions: {
		{Field: "q1", Required: true, Message: "Please answer question 1"},
		{Field: "q2", Required: true, Message: "Please answer question 2"},
	},
	models.StepGoals: {
		{
			Field:         "selectedGoals",
			Required:      true,
			Min:           1,
			Options:       catalog.GoalIDs(),
			Message:       "At least one goal must be selected",
			OptionMessage: "Invalid goal selection",
		},
	},
	models.StepQualifyingQuestions: {
		{Field: "responses", Required: true, Min: 1, Message: "Please answer at least one qualifying question"},
	},
	models.StepBudget: {
		{
			Field:         "range",
			Required:      true,
			Options:       catalog.Values(catalog.BudgetRanges),
			Message:       "Budget range is required",
			OptionMessage: "Invalid budget range selection",
		},
		{
			Field:         "timeline",
			Required:      true,
			Options:       catalog.Values(catalog.Timelines),
			Message:       "Timeline is required",
			OptionMessage: "Invalid timeline selection",
		},
	},
}

// Validate checks data against the rule table of step.
func Validate(step models.StepID, data StepData) Result {
	table, ok := rules[step]
	if !ok || data == nil || data.Step() != step {
		return Result{
			IsValid: false,
			Errors:  map[string]string{"step": InvalidStepMessage},
			Fields:  []string{"step"},
		}
	}

	res := Result{Errors: map[string]string{}, Fields: []string{}}
	for _, rule := range table {
		if _, failed := res.Errors[rule.Field]; failed {
			continue
		}
		if msg, bad := check(rule, data.value(rule.Field)); bad {
			res.Errors[rule.Field] = msg
			res.Fields = append(res.Fields, rule.Field)
		}
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

func check(rule Rule, v fieldValue) (string, bool) {
	if rule.Required && !v.present() {
		return rule.Message, true
	}
	if rule.Min > 0 && v.present() && v.count() < rule.Min {
		return rule.Message, true
	}
	if len(rule.Options) == 0 || !v.present() {
		return "", false
	}
	candidates := v.values()
	if !v.isList {
		candidates = []string{v.text}
	}
	for _, c := range candidates {
		if !contains(rule.Options, c) {
			return rule.OptionMessage, true
		}
	}
	return "", false
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
