package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vlei/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Parallel int    // maximum scenarios running at once
	Filter   string // scenario filter (glob pattern)
}

// TestResult holds the overall test result.
type TestResult struct {
	*harness.SuiteResult
}

// RenderText prints failures followed by a summary line.
func (r TestResult) RenderText(w io.Writer) error {
	for _, f := range r.Failures {
		name := f.Name
		if name == "" {
			name = filepath.Base(f.ScenarioPath)
		}
		fmt.Fprintf(w, "\u2717 %s\n", name)
		fmt.Fprintf(w, "  %s\n", f.Error)
	}

	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", r.Passed, r.Failed, r.TotalScenarios)
	if r.Failed == 0 {
		fmt.Fprintln(w, "\u2713 All scenarios passed")
	}
	return nil
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios",
		Long: `Run YAML conformance scenarios against the credential model.

Each scenario builds credentials with a fixed clock and nonce list,
then checks assertions about their digests. Scenarios run concurrently.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  vlei test ./scenarios
  vlei test ./scenarios --filter "oor*"
  vlei test ./scenarios --parallel 1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Parallel, "parallel", runtime.GOMAXPROCS(0), "maximum scenarios running at once")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	if _, err := os.Stat(scenariosDir); errors.Is(err, os.ErrNotExist) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	paths, err := harness.FindScenarios(scenariosDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}
	paths, err = filterScenarios(paths, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid filter pattern", err)
	}

	if len(paths) == 0 && opts.Format != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	suite, err := harness.RunSuite(commandContext(cmd), paths, opts.Parallel)
	if err != nil {
		return WrapExitError(ExitCommandError, "test run aborted", err)
	}
	result := TestResult{SuiteResult: suite}

	if suite.Failed == 0 {
		return out.Success(result)
	}

	msg := fmt.Sprintf("%d scenario(s) failed", suite.Failed)
	if opts.Format == "json" {
		if err := out.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: CodeTestFailed, Message: msg},
		}); err != nil {
			return err
		}
	} else if err := result.RenderText(cmd.OutOrStdout()); err != nil {
		return err
	}

	// Test failures = exit code 1
	return NewExitError(ExitFailure, msg)
}

// filterScenarios keeps the paths whose base name, without extension,
// matches pattern. An empty pattern keeps everything.
func filterScenarios(paths []string, pattern string) ([]string, error) {
	if pattern == "" {
		return paths, nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, err
	}

	var out []string
	for _, p := range paths {
		base := filepath.Base(p)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if ok, _ := filepath.Match(pattern, name); ok {
			out = append(out, p)
		}
	}
	return out, nil
}
