// internal/workers/assessment/calculate-maturity-score/models.go
package calculatematurityscore

import "maturity-assessment/internal/models"

type Input struct {
	Assessment models.Assessment `json:"assessment"`
}

type Output struct {
	Score               int                   `json:"score"`
	MaturityLevel       string                `json:"maturityLevel"`
	MaturityDescription string                `json:"maturityDescription"`
	ScoreBreakdown      models.ScoreBreakdown `json:"scoreBreakdown"`
}

var inputSchema = `{
  "type": "object",
  "required": ["assessment"],
  "properties": {
    "assessment": {
      "type": "object",
      "properties": {
        "journeyStatus": {"type": "object"},
        "selectedGoals": {"type": "array", "items": {"type": "string"}},
        "budgetInfo": {"type": "object"}
      }
    }
  }
}`
