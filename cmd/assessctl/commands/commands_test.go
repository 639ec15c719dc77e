package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maturity-assessment/internal/common/config"
	"maturity-assessment/internal/models"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ASSESSCTL_CONFIG", "")
	t.Setenv("ASSESSCTL_STORAGE", "file")
	t.Setenv("ASSESSCTL_STATE_DIR", "/state")
	t.Setenv("ASSESSCTL_FLOW", "")
	t.Setenv("ASSESSCTL_LOG_LEVEL", "error")
}

// run executes one CLI invocation against fs, like a separate process would.
func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(fs)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, fs afero.Fs, args ...string) string {
	t.Helper()
	out, err := run(t, fs, args...)
	require.NoError(t, err, "assessctl %v", args)
	return out
}

func TestCLI_CompleteAssessmentAcrossInvocations(t *testing.T) {
	setTestEnv(t)
	fs := afero.NewMemMapFs()

	out := mustRun(t, fs, "start")
	assert.Contains(t, out, "step:     demographics (20%)")

	mustRun(t, fs, "set", "industry", "technology")
	mustRun(t, fs, "set", "companySize", "51-200")
	mustRun(t, fs, "set", "role", "CTO")
	out = mustRun(t, fs, "next")
	assert.Contains(t, out, "journey_status (40%)")

	mustRun(t, fs, "set", "type", "implementing")
	mustRun(t, fs, "next")

	mustRun(t, fs, "set", "selectedGoals", "automate_operations")
	mustRun(t, fs, "set", "selectedGoals", "improve_decision_making")
	mustRun(t, fs, "next")

	mustRun(t, fs, "set", "range", "200k-500k")
	mustRun(t, fs, "set", "timeline", "6m-1y")
	out = mustRun(t, fs, "next")
	assert.Contains(t, out, "results (100%)")
	assert.Contains(t, out, "score:  57/100")
	assert.Contains(t, out, "level:  Developing")

	out = mustRun(t, fs, "--json", "results")
	var results models.Results
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	assert.Equal(t, 57, results.Score)
	assert.Len(t, results.Recommendations, 3)
}

func TestCLI_NextReportsValidationErrors(t *testing.T) {
	setTestEnv(t)
	fs := afero.NewMemMapFs()

	mustRun(t, fs, "set", "industry", "technology")
	out, err := run(t, fs, "next")

	require.Error(t, err)
	assert.Contains(t, out, "! companySize: Company size is required")
	assert.Contains(t, out, "! role: Role is required")

	// errors survive into the next invocation
	out = mustRun(t, fs, "--json", "start")
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, "demographics", status["currentStep"])
	assert.Len(t, status["errors"], 2)
}

func TestCLI_SetRejectsForeignField(t *testing.T) {
	setTestEnv(t)
	fs := afero.NewMemMapFs()

	_, err := run(t, fs, "set", "range", "0-50k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"range" is not a field of step "demographics"`)

	mustRun(t, fs, "set", "--step", "budget", "range", "0-50k")
	out := mustRun(t, fs, "--json", "show")
	var a models.Assessment
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, "0-50k", a.BudgetInfo.Range)
}

func TestCLI_BackAndRestart(t *testing.T) {
	setTestEnv(t)
	fs := afero.NewMemMapFs()

	mustRun(t, fs, "set", "industry", "retail")
	mustRun(t, fs, "set", "companySize", "1-50")
	mustRun(t, fs, "set", "role", "Other")
	mustRun(t, fs, "next")

	out := mustRun(t, fs, "back")
	assert.Contains(t, out, "demographics (20%)")

	mustRun(t, fs, "restart")
	out = mustRun(t, fs, "show")
	assert.Contains(t, out, "industry:     \n")
}

func TestCLI_ResultsBeforeCompletion(t *testing.T) {
	setTestEnv(t)
	_, err := run(t, afero.NewMemMapFs(), "results")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not complete yet")
}

func TestCLI_Options(t *testing.T) {
	setTestEnv(t)
	fs := afero.NewMemMapFs()

	out := mustRun(t, fs, "options", "budget")
	assert.Contains(t, out, "range:")
	assert.Contains(t, out, "200k-500k")
	assert.Contains(t, out, "timeline:")

	_, err := run(t, fs, "options", "results")
	assert.Error(t, err)
}

func TestCLI_ExtendedFlowFromEnv(t *testing.T) {
	setTestEnv(t)
	t.Setenv("ASSESSCTL_FLOW", config.FlowExtended)
	fs := afero.NewMemMapFs()

	out := mustRun(t, fs, "start")
	assert.Contains(t, out, "demographics (14%)")
}

func TestCLI_UnreachableRedisFallsBackToMemory(t *testing.T) {
	setTestEnv(t)
	t.Setenv("ASSESSCTL_STORAGE", config.StorageRedis)
	t.Setenv("ASSESSCTL_REDIS_ADDR", "127.0.0.1:1")

	out := mustRun(t, afero.NewMemMapFs(), "start")
	assert.Contains(t, out, "demographics")
}

func TestResolveConfig(t *testing.T) {
	cfg, err := resolveConfig(Env{StateDir: "/tmp/x", Flow: "extended"})
	require.NoError(t, err)
	assert.Equal(t, config.StorageFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/x", cfg.Storage.FileDir)
	assert.Equal(t, "extended", cfg.Assessment.Flow)

	cfg, err = resolveConfig(Env{Storage: config.StorageMemory, StateDir: "/tmp/x"})
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Backend)
}

func TestCLI_Workers(t *testing.T) {
	setTestEnv(t)
	fs := afero.NewMemMapFs()

	out := mustRun(t, fs, "workers")
	assert.Contains(t, out, "calculate-maturity-score")
	assert.Contains(t, out, "generate-recommendations")
	assert.Contains(t, out, "validate-assessment-step")

	out = mustRun(t, fs, "workers", "export", "/configs/activity-registry.json")
	assert.Contains(t, out, "wrote /configs/activity-registry.json")

	out = mustRun(t, fs, "workers", "validate", "/configs/activity-registry.json")
	assert.Contains(t, out, "registry valid: 3 activities")

	exists, err := afero.Exists(fs, "/state")
	require.NoError(t, err)
	assert.False(t, exists, "workers commands must not open a session")

	require.NoError(t, afero.WriteFile(fs, "/configs/empty.json", []byte(`{"activities":[]}`), 0644))
	_, err = run(t, fs, "workers", "validate", "/configs/empty.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry contains no activities")
}
