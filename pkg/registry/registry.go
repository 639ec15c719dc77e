// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const (
	TaskCalculateMaturityScore  = "calculate-maturity-score"
	TaskGenerateRecommendations = "generate-recommendations"
	TaskValidateAssessmentStep  = "validate-assessment-step"

	categoryAssessment = "assessment"
	registryVersion    = "1.0.0"
)

// Default returns the activities served by the worker manager, in
// registration order.
func Default() *ActivityRegistry {
	return &ActivityRegistry{
		Version: registryVersion,
		Activities: []Activity{
			{
				ID:              TaskValidateAssessmentStep,
				DisplayName:     "Validate Assessment Step",
				Description:     "Checks the answers collected on one wizard step.",
				Category:        categoryAssessment,
				Version:         "1.0.0",
				TaskType:        TaskValidateAssessmentStep,
				InputVariables:  []string{"stepId", "data"},
				OutputVariables: []string{"isValid", "errors", "invalidFields"},
				ErrorCodes:      []string{"PARSE_ERROR", "TIMEOUT_ERROR"},
				Timeout:         "5s",
			},
			{
				ID:              TaskCalculateMaturityScore,
				DisplayName:     "Calculate Maturity Score",
				Description:     "Scores a completed assessment and maps it onto a maturity level.",
				Category:        categoryAssessment,
				Version:         "1.0.0",
				TaskType:        TaskCalculateMaturityScore,
				InputVariables:  []string{"assessment"},
				OutputVariables: []string{"score", "maturityLevel", "maturityDescription", "scoreBreakdown"},
				ErrorCodes:      []string{"PARSE_ERROR", "SCORING_FAILED", "TIMEOUT_ERROR"},
				Timeout:         "10s",
			},
			{
				ID:              TaskGenerateRecommendations,
				DisplayName:     "Generate Recommendations",
				Description:     "Builds the budget and timeline filtered recommendation list.",
				Category:        categoryAssessment,
				Version:         "1.0.0",
				TaskType:        TaskGenerateRecommendations,
				InputVariables:  []string{"assessment"},
				OutputVariables: []string{"recommendations", "count", "maturityLevel"},
				ErrorCodes:      []string{"PARSE_ERROR", "RECOMMENDATION_FAILED", "TIMEOUT_ERROR"},
				Timeout:         "10s",
			},
		},
	}
}

// Find returns the activity bound to taskType.
func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// Validate rejects empty registries, duplicate IDs or task types, and
// activities missing a required field or carrying an unparsable timeout.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	taskTypes := make(map[string]bool)
	for _, a := range r.Activities {
		if a.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", a.ID)
		}
		if a.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", a.ID)
		}
		if taskTypes[a.TaskType] {
			return fmt.Errorf("duplicate task type: %s", a.TaskType)
		}
		taskTypes[a.TaskType] = true

		if a.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", a.ID)
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				return fmt.Errorf("activity %s has invalid timeout %q: %w", a.ID, a.Timeout, err)
			}
		}
	}
	return nil
}

func LoadRegistry(fs afero.Fs, path string) (*ActivityRegistry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// SaveRegistry stamps LastUpdated and writes reg as indented JSON.
func SaveRegistry(fs afero.Fs, path string, reg *ActivityRegistry) error {
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}
