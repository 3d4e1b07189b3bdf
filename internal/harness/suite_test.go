package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))

	paths, err := FindScenarios(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}, paths)
}

func TestFindScenarios_MissingDir(t *testing.T) {
	_, err := FindScenarios(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRunSuite_Fixtures(t *testing.T) {
	paths, err := FindScenarios("testdata/scenarios")
	require.NoError(t, err)

	result, err := RunSuite(context.Background(), paths, 2)
	require.NoError(t, err)
	assert.Equal(t, len(paths), result.TotalScenarios)
	assert.Equal(t, len(paths), result.Passed)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Failures)
}

func TestRunSuite_ReportsFailures(t *testing.T) {
	dir := t.TempDir()

	failing := `
name: failing
description: "Digest assertion that cannot hold"
steps:
  - ref: le
    variant: le
    args: {issuee: EAbc123, timestamp: "2024-01-01T00:00:00.000000+00:00", lei: 254900OPPU84GM83MG36}
assertions:
  - type: digest
    ref: le
    value: Enope
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_failing.yaml"), []byte(failing), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_broken.yaml"), []byte("name: [unterminated"), 0644))

	paths, err := FindScenarios(dir)
	require.NoError(t, err)
	paths = append(paths, "testdata/scenarios/le_determinism.yaml")

	result, err := RunSuite(context.Background(), paths, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalScenarios)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Failures, 2)
	assert.Contains(t, result.Failures[0].Error, "failed to load scenario")
	assert.Equal(t, "failing", result.Failures[1].Name)
	assert.Contains(t, result.Failures[1].Error, "scenario assertions failed")
}

func TestRunSuite_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunSuite(ctx, []string{"testdata/scenarios/le_determinism.yaml"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
