package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		if event.Error != "" {
			fmt.Fprintf(&buf, "  [%d] %s %s error: %s\n", event.Seq, event.Ref, event.Variant, event.Error)
			continue
		}
		fmt.Fprintf(&buf, "  [%d] %s %s %s\n", event.Seq, event.Ref, event.Variant, event.Digest)
	}

	return buf.String()
}

// AssertionContext carries what assertions need beyond the result.
type AssertionContext struct {
	Store    *store.Store
	Verifier credential.Verifier
	Ctx      context.Context
}

// record looks up ref or reports why it has no credential.
func record(result *Result, ref string) (credential.Record, error) {
	rec, ok := result.Record(ref)
	if !ok {
		return nil, fmt.Errorf("ref %q has no credential (step failed or missing)", ref)
	}
	return rec, nil
}

// assertSameDigest checks that all refs share one digest.
func assertSameDigest(result *Result, assertion Assertion) error {
	var first credential.SAID
	for i, ref := range assertion.Refs {
		rec, err := record(result, ref)
		if err != nil {
			return err
		}
		if i == 0 {
			first = rec.Digest()
			continue
		}
		if rec.Digest() != first {
			return &AssertionError{
				Type:     AssertSameDigest,
				Expected: fmt.Sprintf("%s == %s", assertion.Refs[0], ref),
				Actual:   fmt.Sprintf("%s != %s", first, rec.Digest()),
				Trace:    result.Trace,
			}
		}
	}
	return nil
}

// assertDifferentDigest checks that digests are pairwise distinct.
func assertDifferentDigest(result *Result, assertion Assertion) error {
	seen := make(map[credential.SAID]string, len(assertion.Refs))
	for _, ref := range assertion.Refs {
		rec, err := record(result, ref)
		if err != nil {
			return err
		}
		if other, dup := seen[rec.Digest()]; dup {
			return &AssertionError{
				Type:     AssertDifferentDigest,
				Expected: fmt.Sprintf("%s != %s", other, ref),
				Actual:   fmt.Sprintf("both digest to %s", rec.Digest()),
				Trace:    result.Trace,
			}
		}
		seen[rec.Digest()] = ref
	}
	return nil
}

// assertDigest checks a ref's digest against a known value.
func assertDigest(result *Result, assertion Assertion) error {
	rec, err := record(result, assertion.Ref)
	if err != nil {
		return err
	}
	if string(rec.Digest()) != assertion.Value {
		return &AssertionError{
			Type:     AssertDigest,
			Expected: fmt.Sprintf("%s digest %s", assertion.Ref, assertion.Value),
			Actual:   string(rec.Digest()),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertDigestPrefix checks the start of a ref's digest, typically its code.
func assertDigestPrefix(result *Result, assertion Assertion) error {
	rec, err := record(result, assertion.Ref)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(string(rec.Digest()), assertion.Value) {
		return &AssertionError{
			Type:     AssertDigestPrefix,
			Expected: fmt.Sprintf("%s digest starting with %q", assertion.Ref, assertion.Value),
			Actual:   string(rec.Digest()),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertDigestLength checks the length of a ref's digest.
func assertDigestLength(result *Result, assertion Assertion) error {
	rec, err := record(result, assertion.Ref)
	if err != nil {
		return err
	}
	if n := len(rec.Digest()); n != assertion.Length {
		return &AssertionError{
			Type:     AssertDigestLength,
			Expected: fmt.Sprintf("%s digest of %d characters", assertion.Ref, assertion.Length),
			Actual:   fmt.Sprintf("%d characters (%s)", n, rec.Digest()),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertLabels checks the exact label order of a ref's block.
func assertLabels(result *Result, assertion Assertion) error {
	rec, err := record(result, assertion.Ref)
	if err != nil {
		return err
	}
	labels := rec.Sad().Labels()
	if !slices.Equal(labels, assertion.Labels) {
		return &AssertionError{
			Type:     AssertLabels,
			Expected: fmt.Sprintf("%s labels %v", assertion.Ref, assertion.Labels),
			Actual:   fmt.Sprintf("%v", labels),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertVerifies checks that a ref's block re-derives to its digest.
func assertVerifies(result *Result, assertion Assertion, actx *AssertionContext) error {
	rec, err := record(result, assertion.Ref)
	if err != nil {
		return err
	}
	if err := credential.Verify(rec, actx.Verifier); err != nil {
		return &AssertionError{
			Type:     AssertVerifies,
			Expected: fmt.Sprintf("%s verifies", assertion.Ref),
			Actual:   err.Error(),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertStored writes a ref to the ledger and loads it back.
func assertStored(result *Result, assertion Assertion, actx *AssertionContext) error {
	rec, err := record(result, assertion.Ref)
	if err != nil {
		return err
	}
	if _, _, err := actx.Store.Put(actx.Ctx, rec); err != nil {
		return fmt.Errorf("stored %s: %w", assertion.Ref, err)
	}

	loaded, err := actx.Store.Load(actx.Ctx, rec.Digest(), actx.Verifier)
	if err != nil {
		return &AssertionError{
			Type:     AssertStored,
			Expected: fmt.Sprintf("%s loads back from the ledger", assertion.Ref),
			Actual:   err.Error(),
			Trace:    result.Trace,
		}
	}
	if loaded.Digest() != rec.Digest() || !slices.Equal(loaded.Sad(), rec.Sad()) {
		return &AssertionError{
			Type:     AssertStored,
			Expected: fmt.Sprintf("%s unchanged after round trip", assertion.Ref),
			Actual:   fmt.Sprintf("loaded %s", loaded.Digest()),
			Trace:    result.Trace,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides the verifier and the ledger.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertSameDigest:
			err = assertSameDigest(result, assertion)
		case AssertDifferentDigest:
			err = assertDifferentDigest(result, assertion)
		case AssertDigest:
			err = assertDigest(result, assertion)
		case AssertDigestPrefix:
			err = assertDigestPrefix(result, assertion)
		case AssertDigestLength:
			err = assertDigestLength(result, assertion)
		case AssertLabels:
			err = assertLabels(result, assertion)
		case AssertVerifies:
			if actx == nil || actx.Verifier == nil {
				err = fmt.Errorf("assertion[%d]: verifies requires a verifier", i)
			} else {
				err = assertVerifies(result, assertion, actx)
			}
		case AssertStored:
			if actx == nil || actx.Store == nil || actx.Verifier == nil {
				err = fmt.Errorf("assertion[%d]: stored requires a ledger and a verifier", i)
			} else {
				err = assertStored(result, assertion, actx)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
