// internal/workers/assessment/validate-assessment-step/models.go
package validateassessmentstep

import "encoding/json"

type Input struct {
	StepID string          `json:"stepId"`
	Data   json.RawMessage `json:"data"`
}

type Output struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
	Fields  []string          `json:"invalidFields"`
}

var inputSchema = `{
  "type": "object",
  "required": ["stepId"],
  "properties": {
    "stepId": {"type": "string", "minLength": 1},
    "data": {"type": ["object", "null"]}
  }
}`
