package store

import "maturity-assessment/internal/common/validation"

// stateSchema is the structural check a persisted aggregate must pass before
// it is trusted. Value-level problems such as an unknown currentStep are
// repaired by normalization instead.
var stateSchema = validation.MustCompile("assessment-state", `{
  "type": "object",
  "required": ["currentStep", "organization", "journeyStatus", "selectedGoals", "budgetInfo"],
  "properties": {
    "currentStep": {"type": "string"},
    "organization": {
      "type": "object",
      "required": ["industry", "companySize", "role"],
      "properties": {
        "industry": {"type": "string"},
        "companySize": {"type": "string"},
        "role": {"type": "string"}
      }
    },
    "journeyStatus": {
      "type": "object",
      "required": ["type", "completedSteps"],
      "properties": {
        "type": {"type": "string"},
        "description": {"type": "string"},
        "completedSteps": {"type": "array", "items": {"type": "string"}},
        "responses": {"type": "object", "additionalProperties": {"type": "string"}}
      }
    },
    "selectedGoals": {"type": "array", "items": {"type": "string"}},
    "qualifyingResponses": {"type": "object", "additionalProperties": {"type": "string"}},
    "budgetInfo": {
      "type": "object",
      "required": ["range", "timeline"],
      "properties": {
        "range": {"type": "string"},
        "timeline": {"type": "string"}
      }
    },
    "errors": {"type": "object", "additionalProperties": {"type": "string"}},
    "results": {
      "type": "object",
      "required": ["score", "maturityLevel"],
      "properties": {
        "score": {"type": "integer", "minimum": 0, "maximum": 100},
        "maturityLevel": {"type": "string"},
        "maturityDescription": {"type": "string"},
        "recommendations": {"type": "array", "items": {"type": "object"}}
      }
    }
  }
}`)
