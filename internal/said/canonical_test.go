package said

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeKeepsInsertionOrder(t *testing.T) {
	sad := Sad{F("d", ""), F("zebra", "1"), F("apple", "2"), F("LEI", "3")}

	out, err := Serialize(sad)
	require.NoError(t, err)
	assert.Equal(t, `{"d":"","zebra":"1","apple":"2","LEI":"3"}`, string(out))
}

func TestSerializeEmpty(t *testing.T) {
	out, err := Serialize(Sad{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestSerializeNoHTMLEscape(t *testing.T) {
	out, err := Serialize(Sad{F("n", "<a&b>")})
	require.NoError(t, err)
	assert.Equal(t, `{"n":"<a&b>"}`, string(out))
}

func TestSerializeLineSeparatorsLiteral(t *testing.T) {
	out, err := Serialize(Sad{F("n", "a\u2028b\u2029c")})
	require.NoError(t, err)
	assert.Equal(t, "{\"n\":\"a\u2028b\u2029c\"}", string(out))
}

func TestSerializeEscapedBackslashBeforeU2028Text(t *testing.T) {
	// Literal backslash followed by the text "u2028" must stay escaped.
	out, err := Serialize(Sad{F("n", `\u2028`)})
	require.NoError(t, err)
	assert.Equal(t, `{"n":"\\u2028"}`, string(out))
}

func TestSerializeControlCharacters(t *testing.T) {
	out, err := Serialize(Sad{F("n", "tab\there \"q\" \\ \x01 \x08 \x0c")})
	require.NoError(t, err)
	assert.Equal(t, `{"n":"tab\there \"q\" \\ \u0001 \b \f"}`, string(out))
}

func TestSerializeNonASCIIUnescaped(t *testing.T) {
	out, err := Serialize(Sad{F("personLegalName", "Zo\u00eb M\u00fcller")})
	require.NoError(t, err)
	assert.Equal(t, "{\"personLegalName\":\"Zo\u00eb M\u00fcller\"}", string(out))
}

func TestSerializeRejectsInvalidUTF8(t *testing.T) {
	_, err := Serialize(Sad{F("n", "bad\xff")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSad)
	assert.Contains(t, err.Error(), `value for label "n"`)
}

func TestUnescapeLineSeparatorsFastPath(t *testing.T) {
	in := []byte(`"plain"`)
	assert.Equal(t, in, unescapeLineSeparators(in))
}
