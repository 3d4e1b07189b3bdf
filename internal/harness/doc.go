// Package harness provides conformance testing for vLEI credential data.
//
// The harness constructs credentials from YAML scenarios, records every
// outcome in a trace, and validates the digests as executable contract tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	code: E                 # optional digest code, default E (Blake3-256)
//	start_time: "2024-01-01T00:00:00Z"
//	nonces: ["0ABhY2RlZmdoaWprbG1ub3Bx"]
//	steps:
//	  - ref: chairman
//	    variant: oor_auth
//	    args: { qvi: E..., issuee: E..., lei: 2549..., official_organizational_role: Chairman }
//	  - ref: bad
//	    variant: le
//	    args: { issuee: "\xff" }
//	    expect_error: malformed
//	assertions:
//	  - type: different_digest
//	    refs: [chairman, vice]
//	  - type: labels
//	    ref: chairman
//	    labels: [d, i, dt, AID, LEI, personLegalName, officialOrganizationalRole]
//
// # Assertion Types
//
//   - same_digest, different_digest: compare digests across refs
//   - digest, digest_prefix, digest_length: check one ref's digest
//   - labels: exact label order of the digested block
//   - verifies: the block re-derives to its own digest
//   - stored: the block survives a ledger round trip
//
// # Deterministic Testing
//
// Steps without a timestamp take one from testutil.FixedClock, starting at
// start_time and advancing a second per use. ECR and OOR steps without a
// nonce take the next entry of nonces from testutil.FixedNonces. Each
// scenario gets its own in-memory ledger.
//
// This ensures identical traces across runs for golden file comparison.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/oor_auth_roles.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(ctx, scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, err := range result.Errors {
//	        log.Println(err)
//	    }
//	}
package harness
