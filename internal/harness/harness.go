package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
	"github.com/roach88/vlei/internal/store"
	"github.com/roach88/vlei/internal/testutil"
)

// argNames lists the step args accepted per variant.
var argNames = map[credential.Variant][]string{
	credential.VariantLegalEntity: {
		"issuee", "timestamp", "lei",
	},
	credential.VariantEngagementContextRole: {
		"nonce", "issuee", "timestamp", "lei", "person_legal_name", "engagement_context_role",
	},
	credential.VariantEngagementContextRoleAuthorization: {
		"qvi", "timestamp", "issuee", "lei", "person_legal_name", "engagement_context_role",
	},
	credential.VariantOfficialOrganizationalRole: {
		"nonce", "issuee", "timestamp", "lei", "person_legal_name", "official_organizational_role",
	},
	credential.VariantOfficialOrganizationalRoleAuthorization: {
		"qvi", "timestamp", "issuee", "lei", "person_legal_name", "official_organizational_role",
	},
}

// Harness is the test execution engine.
// It runs scenarios with a deterministic clock and nonce source.
type Harness struct {
	saider *said.Saider
	clock  *testutil.FixedClock
	nonces *testutil.FixedNonces
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh in-memory ledger for isolation.
// Deterministic helpers ensure reproducible results.
//
// Execution flow:
// 1. Create fresh in-memory ledger
// 2. Configure the digester from the scenario's code and strict_nfc
// 3. Execute steps, recording each outcome in the trace
// 4. Evaluate assertions
// 5. Return result with pass/fail, trace, and errors
//
// A step failing unexpectedly fails the result but does not stop the run.
// The returned error is reserved for setup failures and cancellation.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	logger := slog.Default().With("scenario", scenario.Name)

	st, err := store.Open(":memory:", store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	saider, err := newSaider(scenario)
	if err != nil {
		return nil, err
	}

	start := defaultStartTime
	if scenario.StartTime != "" {
		start, err = time.Parse(time.RFC3339, scenario.StartTime)
		if err != nil {
			return nil, fmt.Errorf("start_time: %w", err)
		}
	}

	h := &Harness{
		saider: saider,
		clock:  testutil.NewFixedClock(start, time.Second),
		nonces: testutil.NewFixedNonces(scenario.Nonces...),
		logger: logger,
	}

	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	actx := &AssertionContext{
		Store:    st,
		Verifier: saider,
		Ctx:      ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// newSaider builds the scenario's digester.
func newSaider(scenario *Scenario) (*said.Saider, error) {
	var opts []said.Option
	if scenario.Code != "" {
		code, err := said.ParseCode(scenario.Code)
		if err != nil {
			return nil, err
		}
		opts = append(opts, said.WithCode(code))
	}
	if scenario.StrictNFC {
		opts = append(opts, said.WithStrictNFC())
	}
	return said.New(opts...)
}

// executeSteps runs all steps in order.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := h.build(step)
		if err != nil {
			result.addFailure(step.Ref, step.Variant, err)
			switch {
			case step.ExpectError == "":
				result.AddError(fmt.Sprintf("step %q: %v", step.Ref, err))
			case !strings.Contains(err.Error(), step.ExpectError):
				result.AddError(fmt.Sprintf("step %q: expected error containing %q, got %q", step.Ref, step.ExpectError, err))
			}
			h.logger.Debug("step failed", "step", i, "ref", step.Ref, "variant", step.Variant, "error", err)
			continue
		}

		if step.ExpectError != "" {
			result.AddError(fmt.Sprintf("step %q: expected error containing %q, got digest %s", step.Ref, step.ExpectError, rec.Digest()))
		}

		sad, err := said.Serialize(rec.Sad())
		if err != nil {
			return fmt.Errorf("step %q: %w", step.Ref, err)
		}
		result.addRecord(step.Ref, rec, json.RawMessage(sad))

		h.logger.Debug("step completed",
			"step", i,
			"ref", step.Ref,
			"variant", step.Variant,
			"said", rec.Digest(),
		)
	}
	return nil
}

// build constructs the step's credential. A missing timestamp is taken from
// the scenario clock and a missing nonce from the scenario nonce list.
func (h *Harness) build(step Step) (credential.Record, error) {
	a := step.Args

	timestamp, ok := a["timestamp"]
	if !ok {
		timestamp = credential.FormatTimestamp(h.clock.Now())
	}

	switch credential.Variant(step.Variant) {
	case credential.VariantLegalEntity:
		return credential.NewLegalEntityCredentialData(h.saider, credential.LegalEntityArgs{
			Issuee:    credential.AID(a["issuee"]),
			Timestamp: timestamp,
			LEI:       a["lei"],
		})
	case credential.VariantEngagementContextRole:
		nonce, err := h.nonce(a)
		if err != nil {
			return nil, err
		}
		return credential.NewEngagementContextRoleCredentialData(h.saider, credential.EngagementContextRoleArgs{
			Nonce:                 nonce,
			Issuee:                credential.AID(a["issuee"]),
			Timestamp:             timestamp,
			LEI:                   a["lei"],
			PersonLegalName:       a["person_legal_name"],
			EngagementContextRole: a["engagement_context_role"],
		})
	case credential.VariantEngagementContextRoleAuthorization:
		return credential.NewEngagementContextRoleAuthorizationCredentialData(h.saider, credential.EngagementContextRoleAuthorizationArgs{
			QVI:                   credential.AID(a["qvi"]),
			Timestamp:             timestamp,
			Issuee:                credential.AID(a["issuee"]),
			LEI:                   a["lei"],
			PersonLegalName:       a["person_legal_name"],
			EngagementContextRole: a["engagement_context_role"],
		})
	case credential.VariantOfficialOrganizationalRole:
		nonce, err := h.nonce(a)
		if err != nil {
			return nil, err
		}
		return credential.NewOfficialOrganizationalRoleCredentialData(h.saider, credential.OfficialOrganizationalRoleArgs{
			Nonce:                      nonce,
			Issuee:                     credential.AID(a["issuee"]),
			Timestamp:                  timestamp,
			LEI:                        a["lei"],
			PersonLegalName:            a["person_legal_name"],
			OfficialOrganizationalRole: a["official_organizational_role"],
		})
	case credential.VariantOfficialOrganizationalRoleAuthorization:
		return credential.NewOfficialOrganizationalRoleAuthorizationCredentialData(h.saider, credential.OfficialOrganizationalRoleAuthorizationArgs{
			QVI:                        credential.AID(a["qvi"]),
			Timestamp:                  timestamp,
			Issuee:                     credential.AID(a["issuee"]),
			LEI:                        a["lei"],
			PersonLegalName:            a["person_legal_name"],
			OfficialOrganizationalRole: a["official_organizational_role"],
		})
	default:
		return nil, &credential.UnknownVariantError{Name: step.Variant}
	}
}

// nonce returns the step's nonce or the next scenario nonce.
func (h *Harness) nonce(args map[string]string) (string, error) {
	if n, ok := args["nonce"]; ok {
		return n, nil
	}
	if h.nonces.Remaining() == 0 {
		return "", fmt.Errorf("no nonce given and scenario nonces exhausted")
	}
	return h.nonces.Next()
}
