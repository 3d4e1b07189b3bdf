package said

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Serialize produces the compact JSON form of s used for digesting.
//
// Differences from json.Marshal of an equivalent map:
//  1. Keys keep insertion order (no sorting)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. U+2028 and U+2029 are emitted literally
//  4. Invalid UTF-8 is rejected instead of being replaced with U+FFFD
func Serialize(s Sad) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, f := range s {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalString(f.Label)
		if err != nil {
			return nil, fmt.Errorf("label %q: %w", f.Label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalString(f.Value)
		if err != nil {
			return nil, fmt.Errorf("value for label %q: %w", f.Label, err)
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString encodes s as a JSON string the way JSON.stringify does.
// Only control characters (U+0000-U+001F), backslash and quote are escaped.
func marshalString(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformedSad)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline
	out := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	return unescapeLineSeparators(out), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes emitted by
// encoding/json back into literal characters. An escape preceded by an odd
// run of backslashes is literal text (\\u2028) and is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}

		if i+5 < len(data) && data[i+1] == 'u' && string(data[i+2:i+5]) == "202" &&
			(data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}

		// Any other escape: copy the backslash and the escaped byte together
		// so an escaped backslash never pairs with a following "u2028".
		out = append(out, c)
		if i+1 < len(data) {
			out = append(out, data[i+1])
			i++
		}
	}
	return out
}
