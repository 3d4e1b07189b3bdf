package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SuiteResult summarizes a directory of scenarios.
type SuiteResult struct {
	TotalScenarios int               `json:"total_scenarios"`
	Passed         int               `json:"passed"`
	Failed         int               `json:"failed"`
	Failures       []ScenarioFailure `json:"failures,omitempty"`
}

// ScenarioFailure represents a scenario that did not pass.
type ScenarioFailure struct {
	ScenarioPath string `json:"scenario_path"`
	Name         string `json:"name,omitempty"`
	Error        string `json:"error"`
}

// FindScenarios returns the YAML files directly under dir, sorted by name.
func FindScenarios(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenarios dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// RunSuite loads and runs each scenario in paths with at most parallel
// running at once (no limit if parallel < 1). Load and assertion failures
// are reported in the result; the error is reserved for cancellation.
// Failures are ordered by path.
func RunSuite(ctx context.Context, paths []string, parallel int) (*SuiteResult, error) {
	result := &SuiteResult{TotalScenarios: len(paths)}

	var mu sync.Mutex
	fail := func(f ScenarioFailure) {
		mu.Lock()
		defer mu.Unlock()
		result.Failed++
		result.Failures = append(result.Failures, f)
	}

	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for _, path := range paths {
		g.Go(func() error {
			scenario, err := LoadScenario(path)
			if err != nil {
				fail(ScenarioFailure{ScenarioPath: path, Error: fmt.Sprintf("failed to load scenario: %v", err)})
				return nil
			}

			runResult, err := Run(gctx, scenario)
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				fail(ScenarioFailure{ScenarioPath: path, Name: scenario.Name, Error: fmt.Sprintf("scenario execution failed: %v", err)})
				return nil
			}

			if !runResult.Pass {
				fail(ScenarioFailure{
					ScenarioPath: path,
					Name:         scenario.Name,
					Error:        fmt.Sprintf("scenario assertions failed: %s", strings.Join(runResult.Errors, "; ")),
				})
				return nil
			}

			mu.Lock()
			result.Passed++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].ScenarioPath < result.Failures[j].ScenarioPath
	})
	return result, nil
}
