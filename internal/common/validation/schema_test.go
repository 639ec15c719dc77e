package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "type": "object",
  "required": ["stepId", "data"],
  "properties": {
    "stepId": {"type": "string", "minLength": 1},
    "data": {"type": "object"}
  }
}`

func TestSchema_ValidateBytes(t *testing.T) {
	schema := MustCompile("step-input", testSchema)

	tests := []struct {
		name        string
		doc         string
		expectValid bool
		expectField string
		expectErr   bool
	}{
		{
			name:        "valid document",
			doc:         `{"stepId":"budget","data":{}}`,
			expectValid: true,
		},
		{
			name:        "missing required property",
			doc:         `{"data":{}}`,
			expectValid: false,
			expectField: "(root)",
		},
		{
			name:        "wrong type",
			doc:         `{"stepId":"goals","data":"x"}`,
			expectValid: false,
			expectField: "data",
		},
		{
			name:      "not json",
			doc:       `{"stepId":`,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.ValidateBytes([]byte(tt.doc))
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectValid, result.Valid)
			if tt.expectField != "" {
				assert.True(t, result.HasErrors(tt.expectField), "errors: %v", result.GetErrorMessages())
			}
		})
	}
}

func TestSchema_ValidateInput(t *testing.T) {
	schema := MustCompile("step-input", testSchema)

	result, err := schema.ValidateInput(map[string]interface{}{
		"stepId": "",
		"data":   map[string]interface{}{},
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("stepId"))
	assert.Equal(t, "step-input", schema.Name())
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken", `{"type": 5}`)
	assert.Error(t, err)
}
