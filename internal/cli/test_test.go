package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata/scenarios"

const failingScenario = `name: wrong_digest
description: "Asserts a digest the block does not have"
steps:
  - ref: le
    variant: le
    args:
      issuee: EAbc123
      timestamp: "2024-01-01T00:00:00.000000+00:00"
      lei: 254900OPPU84GM83MG36
assertions:
  - type: digest
    ref: le
    value: EAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA
`

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, testOptions(), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, _, err := execute(t, testOptions(), "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	stdout, _, err := execute(t, testOptions(), "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	stdout, _, err := execute(t, testOptions(), "--format", "json", "test", t.TempDir())
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandPassingScenarios(t *testing.T) {
	stdout, _, err := execute(t, testOptions(), "test", harnessScenarios)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Test Summary: 4 passed, 0 failed, 4 total")
	assert.Contains(t, stdout, "All scenarios passed")
}

func TestTestCommandFilter(t *testing.T) {
	stdout, _, err := execute(t, testOptions(), "test", "--filter", "oor*", harnessScenarios)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 passed, 0 failed, 1 total")
}

func TestTestCommandInvalidFilter(t *testing.T) {
	_, _, err := execute(t, testOptions(), "test", "--filter", "[", harnessScenarios)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong_digest.yaml"), []byte(failingScenario), 0644))

	stdout, _, err := execute(t, testOptions(), "test", "--parallel", "1", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "wrong_digest")
	assert.Contains(t, stdout, "0 passed, 1 failed, 1 total")
}

func TestTestCommandFailingScenarioJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong_digest.yaml"), []byte(failingScenario), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [unterminated"), 0644))

	stdout, _, err := execute(t, testOptions(), "--format", "json", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeTestFailed, resp.Error.Code)
	require.NotNil(t, resp.Data.SuiteResult)
	assert.Equal(t, 2, resp.Data.Failed)
	require.Len(t, resp.Data.Failures, 2)
	assert.Equal(t, filepath.Join(dir, "broken.yaml"), resp.Data.Failures[0].ScenarioPath)
	assert.Contains(t, resp.Data.Failures[0].Error, "failed to load scenario")
}

func TestFilterScenarios(t *testing.T) {
	paths := []string{"s/le_determinism.yaml", "s/oor_auth_roles.yml", "s/trust_chain.yaml"}

	got, err := filterScenarios(paths, "")
	require.NoError(t, err)
	assert.Equal(t, paths, got)

	got, err = filterScenarios(paths, "*_roles")
	require.NoError(t, err)
	assert.Equal(t, []string{"s/oor_auth_roles.yml"}, got)

	got, err = filterScenarios(paths, "nothing*")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTestHelpText(t *testing.T) {
	stdout, _, err := execute(t, testOptions(), "test", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "conformance")
	assert.Contains(t, stdout, "--parallel")
	assert.Contains(t, stdout, "--filter")
	assert.Contains(t, stdout, "scenarios-dir")
}
