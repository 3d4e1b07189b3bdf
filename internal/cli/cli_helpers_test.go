package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/vlei/internal/testutil"
)

const (
	testTimestamp = "2024-01-01T00:00:00.000000+00:00"
	testLEI       = "254900OPPU84GM83MG36"
	testNonce     = "0ABhY2RlZmdoaWprbG1ub3Bx"
	testQVI       = "EHMnCf8_nIemuPx-cUHaDQq8zSnQIFAurdEpwHpNbnvX"
	testPerson    = "ENsbVGwWl8pCDw3RXMY2Lk5tnCk9mzeVVEqZ5YpL4cm9"

	leSAID  = "EI-DomGgiO688OmVHOuW5zwGp4pwxTEmD_CrQnsVNlVF"
	leBlock = `{"d":"EI-DomGgiO688OmVHOuW5zwGp4pwxTEmD_CrQnsVNlVF","i":"EAbc123","dt":"2024-01-01T00:00:00.000000+00:00","LEI":"254900OPPU84GM83MG36"}`
)

// testOptions returns options with a clock fixed at 2024-01-01T00:00:00Z
// and a single predetermined nonce.
func testOptions() *RootOptions {
	clock := testutil.NewFixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Second)
	nonces := testutil.NewFixedNonces(testNonce)
	return &RootOptions{Now: clock.Now, NewNonce: nonces.Next}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, opts *RootOptions, args ...string) (string, string, error) {
	t.Helper()
	return executeWithInput(t, opts, "", args...)
}

// executeWithInput is like execute with stdin reading from input.
func executeWithInput(t *testing.T, opts *RootOptions, input string, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := newRootCommand(opts)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeBlock writes data to a file in a temp dir and returns its path.
func writeBlock(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "block.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}
