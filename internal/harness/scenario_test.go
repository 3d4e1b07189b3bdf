package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := filepath.Join(dir, "test.yaml")

	content := `
name: test_scenario
description: "Test scenario for validation"
code: sha2_256
nonces: [0ABhY2RlZmdoaWprbG1ub3Bx]
steps:
  - ref: le
    variant: le
    args:
      issuee: EAbc123
      lei: 254900OPPU84GM83MG36
assertions:
  - type: verifies
    ref: le
`
	require.NoError(t, os.WriteFile(scenarioPath, []byte(content), 0644))

	scenario, err := LoadScenario(scenarioPath)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, "sha2_256", scenario.Code)
	assert.Equal(t, []string{"0ABhY2RlZmdoaWprbG1ub3Bx"}, scenario.Nonces)
	require.Len(t, scenario.Steps, 1)
	assert.Equal(t, "le", scenario.Steps[0].Variant)
	assert.Equal(t, "254900OPPU84GM83MG36", scenario.Steps[0].Args["lei"])
	assert.Len(t, scenario.Assertions, 1)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Fixtures(t *testing.T) {
	paths, err := FindScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		_, err := LoadScenario(path)
		assert.NoError(t, err, path)
	}
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown field",
			content: `
name: x
description: d
step: []
`,
			wantErr: "field step not found",
		},
		{
			name: "missing name",
			content: `
description: d
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: verifies, ref: a}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: x
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: verifies, ref: a}]
`,
			wantErr: "description is required",
		},
		{
			name: "bad code",
			content: `
name: x
description: d
code: Z
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: verifies, ref: a}]
`,
			wantErr: "code:",
		},
		{
			name: "bad start time",
			content: `
name: x
description: d
start_time: yesterday
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: verifies, ref: a}]
`,
			wantErr: "start_time:",
		},
		{
			name: "no steps",
			content: `
name: x
description: d
steps: []
assertions: [{type: verifies, ref: a}]
`,
			wantErr: "steps list is required",
		},
		{
			name: "no assertions",
			content: `
name: x
description: d
steps: [{ref: a, variant: le, args: {}}]
`,
			wantErr: "assertions list is required",
		},
		{
			name: "missing ref",
			content: `
name: x
description: d
steps: [{variant: le, args: {}}]
assertions: [{type: verifies, ref: a}]
`,
			wantErr: "steps[0]: ref is required",
		},
		{
			name: "duplicate ref",
			content: `
name: x
description: d
steps: [{ref: a, variant: le, args: {}}, {ref: a, variant: le, args: {}}]
assertions: [{type: verifies, ref: a}]
`,
			wantErr: `duplicate ref "a"`,
		},
		{
			name: "unknown variant",
			content: `
name: x
description: d
steps: [{ref: a, variant: qvi, args: {}}]
assertions: [{type: verifies, ref: a}]
`,
			wantErr: `unknown credential variant "qvi"`,
		},
		{
			name: "missing args",
			content: `
name: x
description: d
steps: [{ref: a, variant: le}]
assertions: [{type: verifies, ref: a}]
`,
			wantErr: "args is required",
		},
		{
			name: "arg not valid for variant",
			content: `
name: x
description: d
steps: [{ref: a, variant: le, args: {nonce: 0Axyz}}]
assertions: [{type: verifies, ref: a}]
`,
			wantErr: `unknown arg "nonce" for variant le`,
		},
		{
			name: "unknown assertion type",
			content: `
name: x
description: d
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: trace_contains, ref: a}]
`,
			wantErr: `unknown assertion type "trace_contains"`,
		},
		{
			name: "assertion on unknown ref",
			content: `
name: x
description: d
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: verifies, ref: b}]
`,
			wantErr: `unknown ref "b"`,
		},
		{
			name: "same_digest needs two refs",
			content: `
name: x
description: d
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: same_digest, refs: [a]}]
`,
			wantErr: "at least two refs",
		},
		{
			name: "digest needs value",
			content: `
name: x
description: d
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: digest, ref: a}]
`,
			wantErr: "value is required for digest",
		},
		{
			name: "digest_length needs length",
			content: `
name: x
description: d
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: digest_length, ref: a}]
`,
			wantErr: "length must be positive",
		},
		{
			name: "labels needs labels",
			content: `
name: x
description: d
steps: [{ref: a, variant: le, args: {}}]
assertions: [{type: labels, ref: a}]
`,
			wantErr: "labels list is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
