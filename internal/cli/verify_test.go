package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
)

func TestVerifyFile(t *testing.T) {
	path := writeBlock(t, leBlock)

	stdout, _, err := execute(t, testOptions(), "verify", path)
	require.NoError(t, err)
	assert.Equal(t, "\u2713 "+leSAID+" verified (le, Blake3-256)\n", stdout)
}

func TestVerifyStdin(t *testing.T) {
	stdout, _, err := executeWithInput(t, testOptions(), leBlock, "verify", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, leSAID)
}

func TestVerifyJSON(t *testing.T) {
	path := writeBlock(t, leBlock)

	stdout, _, err := execute(t, testOptions(), "--format", "json", "verify", path)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   VerifyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, credential.SAID(leSAID), resp.Data.SAID)
	assert.Equal(t, said.Blake3_256, resp.Data.Code)
	assert.Equal(t, []credential.Variant{credential.VariantLegalEntity}, resp.Data.Variants)
}

func TestVerifyRoundTripsSaidify(t *testing.T) {
	// The code is read from the SAID, so a SHA2 block verifies with the
	// default --code.
	block, _, err := execute(t, testOptions(),
		"--code", "I", "saidify", "oor-auth", "--qvi", testQVI, "--issuee", testPerson,
		"--timestamp", testTimestamp, "--lei", testLEI,
		"--person-legal-name", "John Smith", "--role", "Chairman")
	require.NoError(t, err)

	stdout, _, err := executeWithInput(t, testOptions(), block, "verify", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "verified (ecr_auth|oor_auth, SHA2-256)")
}

func TestVerifyTampered(t *testing.T) {
	tampered := strings.Replace(leBlock, testLEI, "5493001KJTIIGC8Y1R12", 1)
	path := writeBlock(t, tampered)

	stdout, stderr, err := execute(t, testOptions(), "verify", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, said.ErrDigestMismatch)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error [E_DIGEST_MISMATCH]")
}

func TestVerifyTamperedJSON(t *testing.T) {
	tampered := strings.Replace(leBlock, `"i":"EAbc123"`, `"i":"EAbc124"`, 1)
	path := writeBlock(t, tampered)

	stdout, _, err := execute(t, testOptions(), "--format", "json", "verify", path)
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeDigestMismatch, resp.Error.Code)
}

func TestVerifyUnknownLabels(t *testing.T) {
	path := writeBlock(t, `{"d":"`+leSAID+`","i":"EAbc123","LEI":"`+testLEI+`"}`)

	_, stderr, err := execute(t, testOptions(), "verify", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E_UNKNOWN_SCHEMA]")
}

func TestVerifyVariantMismatch(t *testing.T) {
	path := writeBlock(t, leBlock)

	_, stderr, err := execute(t, testOptions(), "verify", "--variant", "oor", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "E_UNKNOWN_SCHEMA")
}

func TestVerifyUnknownVariant(t *testing.T) {
	path := writeBlock(t, leBlock)

	_, _, err := execute(t, testOptions(), "verify", "--variant", "qvi", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown credential variant "qvi"`)
}

func TestVerifyMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not_json", "not json"},
		{"nested_value", `{"d":"x","i":{"nested":true}}`},
		{"no_digest", `{"i":"EAbc123","dt":"` + testTimestamp + `","LEI":"` + testLEI + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeWithInput(t, testOptions(), tt.input, "verify", "-")
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestVerifyMissingFile(t *testing.T) {
	_, stderr, err := execute(t, testOptions(), "verify", "/nonexistent/block.json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "E_INVALID_INPUT")
}
