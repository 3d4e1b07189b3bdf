package said

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Field is a single labeled entry of a Sad.
type Field struct {
	Label string
	Value string
}

// F is a shorthand for Field.
// Example: Sad{F("d", ""), F("i", aid)}
func F(label, value string) Field {
	return Field{Label: label, Value: value}
}

// Sad is self-addressing data: an ordered mapping from label to string value.
// Insertion order is the canonical order used for digesting.
//
// Methods never modify the receiver; With returns a copy.
type Sad []Field

// Labels returns the labels in canonical order.
func (s Sad) Labels() []string {
	labels := make([]string, len(s))
	for i, f := range s {
		labels[i] = f.Label
	}
	return labels
}

// Get returns the value stored under label.
func (s Sad) Get(label string) (string, bool) {
	for _, f := range s {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// With returns a copy of s with the value under label replaced.
// If label is absent the field is appended.
func (s Sad) With(label, value string) Sad {
	out := s.Clone()
	for i := range out {
		if out[i].Label == label {
			out[i].Value = value
			return out
		}
	}
	return append(out, F(label, value))
}

// Clone returns an independent copy of s.
func (s Sad) Clone() Sad {
	if s == nil {
		return nil
	}
	out := make(Sad, len(s))
	copy(out, s)
	return out
}

// Map returns the fields as an unordered map.
func (s Sad) Map() map[string]string {
	m := make(map[string]string, len(s))
	for _, f := range s {
		m[f.Label] = f.Value
	}
	return m
}

// MarshalJSON emits s as a JSON object with fields in insertion order.
func (s Sad) MarshalJSON() ([]byte, error) {
	return Serialize(s)
}

// UnmarshalJSON decodes a flat JSON object of strings preserving key order.
func (s *Sad) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSad(data)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSad decodes a flat JSON object whose values are all strings.
// Key order in the document is preserved, which is required to re-derive
// the digest of a serialized mapping.
func ParseSad(data []byte) (Sad, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedSad)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected JSON object, got %s", ErrMalformedSad, root.Type)
	}

	var (
		sad    Sad
		badErr error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			badErr = fmt.Errorf("%w: value for %q is %s, expected string", ErrMalformedSad, key.String(), value.Type)
			return false
		}
		sad = append(sad, F(key.String(), value.String()))
		return true
	})
	if badErr != nil {
		return nil, badErr
	}

	if sad == nil {
		sad = Sad{}
	}
	return sad, nil
}
