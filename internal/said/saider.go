package said

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultLabel is the label of the digest field in ACDC attribute blocks.
const DefaultLabel = "d"

// Saider computes and verifies SAIDs. A Saider holds no mutable state and
// is safe for concurrent use.
type Saider struct {
	code      Code
	label     string
	strictNFC bool
}

// Option configures a Saider.
type Option func(*Saider)

// WithCode selects the digest derivation code.
func WithCode(c Code) Option {
	return func(s *Saider) {
		s.code = c
	}
}

// WithLabel changes the label of the digest field.
func WithLabel(label string) Option {
	return func(s *Saider) {
		s.label = label
	}
}

// WithStrictNFC rejects values that are not in Unicode Normalization Form C.
// Two parties holding the "same" name in different normal forms would
// otherwise derive different digests.
func WithStrictNFC() Option {
	return func(s *Saider) {
		s.strictNFC = true
	}
}

// New returns a Saider using DefaultCode and DefaultLabel unless overridden.
func New(opts ...Option) (*Saider, error) {
	s := &Saider{
		code:  DefaultCode,
		label: DefaultLabel,
	}
	for _, opt := range opts {
		opt(s)
	}

	if !s.code.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCode, string(s.code))
	}
	if s.label == "" {
		return nil, fmt.Errorf("digest label is required")
	}
	return s, nil
}

// MustNew is like New but panics on error.
// Use only in tests or with options known to be valid.
func MustNew(opts ...Option) *Saider {
	s, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Code returns the derivation code used for new digests.
func (s *Saider) Code() Code {
	return s.code
}

// Label returns the digest field label.
func (s *Saider) Label() string {
	return s.label
}

// Saidify computes the SAID of sad. The digest entry must be present exactly
// once with an empty value. It returns the labels in canonical order and a
// copy of sad with the digest entry filled in; sad itself is not modified.
func (s *Saider) Saidify(sad Sad) ([]string, Sad, error) {
	if err := s.check(sad); err != nil {
		return nil, nil, err
	}
	if v, _ := sad.Get(s.label); v != "" {
		return nil, nil, fmt.Errorf("%w: digest field %q must be empty, got %q", ErrMalformedSad, s.label, v)
	}

	digest, err := s.derive(sad, s.code)
	if err != nil {
		return nil, nil, err
	}

	return sad.Labels(), sad.With(s.label, digest), nil
}

// Verify recomputes the digest of a completed sad using the code carried by
// its own digest and reports ErrDigestMismatch if they differ.
func (s *Saider) Verify(sad Sad) error {
	if err := s.check(sad); err != nil {
		return err
	}

	have, _ := sad.Get(s.label)
	code, err := CodeOf(have)
	if err != nil {
		return err
	}

	want, err := s.derive(sad, code)
	if err != nil {
		return err
	}
	if have != want {
		return fmt.Errorf("%w: have %s, computed %s", ErrDigestMismatch, have, want)
	}
	return nil
}

// derive serializes sad with the digest field set to the dummy and hashes it.
func (s *Saider) derive(sad Sad, code Code) (string, error) {
	dummied := sad.With(s.label, strings.Repeat(Dummy, code.Size()))

	ser, err := Serialize(dummied)
	if err != nil {
		return "", err
	}
	return code.Digest(ser)
}

// check validates the shape of sad before any digesting.
func (s *Saider) check(sad Sad) error {
	seen := make(map[string]struct{}, len(sad))
	digestFields := 0

	for _, f := range sad {
		if _, dup := seen[f.Label]; dup {
			return fmt.Errorf("%w: duplicate label %q", ErrMalformedSad, f.Label)
		}
		seen[f.Label] = struct{}{}

		if f.Label == s.label {
			digestFields++
		}
		if s.strictNFC {
			if !norm.NFC.IsNormalString(f.Label) {
				return fmt.Errorf("%w: label %q is not NFC-normalized", ErrMalformedSad, f.Label)
			}
			if !norm.NFC.IsNormalString(f.Value) {
				return fmt.Errorf("%w: value for %q is not NFC-normalized", ErrMalformedSad, f.Label)
			}
		}
	}

	if digestFields == 0 {
		return fmt.Errorf("%w: missing digest field %q", ErrMalformedSad, s.label)
	}
	return nil
}
