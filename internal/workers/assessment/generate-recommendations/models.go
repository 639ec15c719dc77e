// internal/workers/assessment/generate-recommendations/models.go
package generaterecommendations

import "maturity-assessment/internal/models"

type Input struct {
	Assessment models.Assessment `json:"assessment"`
}

type Output struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Count           int                     `json:"count"`
	MaturityLevel   string                  `json:"maturityLevel"`
}

var inputSchema = `{
  "type": "object",
  "required": ["assessment"],
  "properties": {
    "assessment": {
      "type": "object",
      "properties": {
        "selectedGoals": {"type": "array", "items": {"type": "string"}},
        "budgetInfo": {
          "type": "object",
          "properties": {
            "range": {"type": "string"},
            "timeline": {"type": "string"}
          }
        },
        "results": {
          "type": "object",
          "properties": {"maturityLevel": {"type": "string"}}
        }
      }
    }
  }
}`
