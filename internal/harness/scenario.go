package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
)

// Scenario defines a conformance test scenario.
// A scenario constructs credentials step by step and asserts on the
// resulting digests.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Code is the digest derivation code letter or name. Defaults to E
	// (Blake3-256).
	Code string `yaml:"code,omitempty"`

	// StrictNFC rejects values that are not NFC-normalized.
	StrictNFC bool `yaml:"strict_nfc,omitempty"`

	// StartTime seeds the clock used for steps without a timestamp.
	// RFC 3339; defaults to 2024-01-01T00:00:00Z. Each use advances it by
	// one second.
	StartTime string `yaml:"start_time,omitempty"`

	// Nonces are handed out in order to ecr and oor steps without a nonce.
	Nonces []string `yaml:"nonces,omitempty"`

	// Steps construct credentials in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the constructed credentials.
	// Supported types: same_digest, different_digest, digest, digest_prefix,
	// digest_length, labels, verifies, stored
	Assertions []Assertion `yaml:"assertions"`
}

// Step constructs one credential.
type Step struct {
	// Ref names the result for assertions. Must be unique.
	Ref string `yaml:"ref"`

	// Variant is one of le, ecr, ecr_auth, oor, oor_auth.
	Variant string `yaml:"variant"`

	// Args are the constructor parameters keyed by snake_case name, e.g.
	// issuee, timestamp, lei, nonce, qvi, person_legal_name,
	// engagement_context_role, official_organizational_role.
	Args map[string]string `yaml:"args"`

	// ExpectError, if set, requires construction to fail with an error
	// whose message contains this text.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates constructed credentials.
type Assertion struct {
	// Type specifies the assertion type:
	// - "same_digest": all Refs have equal digests
	// - "different_digest": all Refs have pairwise distinct digests
	// - "digest": Ref has exactly Value as its digest
	// - "digest_prefix": Ref's digest starts with Value
	// - "digest_length": Ref's digest has Length characters
	// - "labels": Ref's block has exactly Labels, in order
	// - "verifies": Ref's block re-derives to its own digest
	// - "stored": Ref survives a ledger round trip unchanged
	Type string `yaml:"type"`

	// Ref names a single step (digest, digest_prefix, digest_length,
	// labels, verifies, stored).
	Ref string `yaml:"ref,omitempty"`

	// Refs names two or more steps (same_digest, different_digest).
	Refs []string `yaml:"refs,omitempty"`

	// Value is the expected digest or digest prefix.
	Value string `yaml:"value,omitempty"`

	// Length is the expected digest length.
	Length int `yaml:"length,omitempty"`

	// Labels is the expected label order.
	Labels []string `yaml:"labels,omitempty"`
}

// Assertion type constants.
const (
	AssertSameDigest      = "same_digest"
	AssertDifferentDigest = "different_digest"
	AssertDigest          = "digest"
	AssertDigestPrefix    = "digest_prefix"
	AssertDigestLength    = "digest_length"
	AssertLabels          = "labels"
	AssertVerifies        = "verifies"
	AssertStored          = "stored"
)

// defaultStartTime seeds the scenario clock.
var defaultStartTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Code != "" {
		if _, err := said.ParseCode(s.Code); err != nil {
			return fmt.Errorf("code: %w", err)
		}
	}

	if s.StartTime != "" {
		if _, err := time.Parse(time.RFC3339, s.StartTime); err != nil {
			return fmt.Errorf("start_time: %w", err)
		}
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	refs := make(map[string]bool, len(s.Steps))
	for i, step := range s.Steps {
		if step.Ref == "" {
			return fmt.Errorf("steps[%d]: ref is required", i)
		}
		if refs[step.Ref] {
			return fmt.Errorf("steps[%d]: duplicate ref %q", i, step.Ref)
		}
		refs[step.Ref] = true

		if _, err := credential.ParseVariant(step.Variant); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		if step.Args == nil {
			return fmt.Errorf("steps[%d]: args is required (use empty map if no args)", i)
		}
		allowed := argNames[credential.Variant(step.Variant)]
		for name := range step.Args {
			if !slices.Contains(allowed, name) {
				return fmt.Errorf("steps[%d]: unknown arg %q for variant %s", i, name, step.Variant)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, refs); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, refs map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSameDigest, AssertDifferentDigest:
		if len(a.Refs) < 2 {
			return fmt.Errorf("assertions[%d]: at least two refs are required for %s", index, a.Type)
		}
		for _, ref := range a.Refs {
			if !refs[ref] {
				return fmt.Errorf("assertions[%d]: unknown ref %q", index, ref)
			}
		}
		return nil
	case AssertDigest, AssertDigestPrefix:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
	case AssertDigestLength:
		if a.Length <= 0 {
			return fmt.Errorf("assertions[%d]: length must be positive for digest_length", index)
		}
	case AssertLabels:
		if len(a.Labels) == 0 {
			return fmt.Errorf("assertions[%d]: labels list is required for labels", index)
		}
	case AssertVerifies, AssertStored:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	if a.Ref == "" {
		return fmt.Errorf("assertions[%d]: ref is required for %s", index, a.Type)
	}
	if !refs[a.Ref] {
		return fmt.Errorf("assertions[%d]: unknown ref %q", index, a.Ref)
	}
	return nil
}
