package registry

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	reg := Default()
	require.NoError(t, reg.Validate())
	assert.Len(t, reg.Activities, 3)

	for _, taskType := range []string{TaskValidateAssessmentStep, TaskCalculateMaturityScore, TaskGenerateRecommendations} {
		a, ok := reg.Find(taskType)
		assert.True(t, ok, taskType)
		assert.Equal(t, taskType, a.ID)
	}

	_, ok := reg.Find("send-notification")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*ActivityRegistry)
		expectedError string
	}{
		{
			name:          "empty registry",
			mutate:        func(r *ActivityRegistry) { r.Activities = nil },
			expectedError: "registry contains no activities",
		},
		{
			name:          "duplicate id",
			mutate:        func(r *ActivityRegistry) { r.Activities[1].ID = r.Activities[0].ID },
			expectedError: "duplicate activity ID",
		},
		{
			name:          "duplicate task type",
			mutate:        func(r *ActivityRegistry) { r.Activities[1].TaskType = r.Activities[0].TaskType },
			expectedError: "duplicate task type",
		},
		{
			name:          "missing display name",
			mutate:        func(r *ActivityRegistry) { r.Activities[2].DisplayName = "" },
			expectedError: "missing required field: DisplayName",
		},
		{
			name:          "missing category",
			mutate:        func(r *ActivityRegistry) { r.Activities[0].Category = "" },
			expectedError: "missing required field: Category",
		},
		{
			name:          "bad timeout",
			mutate:        func(r *ActivityRegistry) { r.Activities[0].Timeout = "soon" },
			expectedError: "invalid timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := Default()
			tt.mutate(reg)
			err := reg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestSaveAndLoadRegistry(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/configs/activity-registry.json"

	require.NoError(t, SaveRegistry(fs, path, Default()))

	loaded, err := LoadRegistry(fs, path)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.LastUpdated)
	assert.Equal(t, Default().Activities, loaded.Activities)
	assert.NoError(t, loaded.Validate())
}

func TestLoadRegistry_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadRegistry(fs, "/missing.json")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/broken.json", []byte("{not json"), 0644))
	_, err = LoadRegistry(fs, "/broken.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse registry")
}
