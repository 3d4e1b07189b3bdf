package said

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Code is a CESR derivation code naming a 256-bit digest algorithm.
type Code string

// Supported digest derivation codes.
const (
	Blake3_256  Code = "E"
	Blake2b_256 Code = "F"
	Blake2s_256 Code = "G"
	SHA3_256    Code = "H"
	SHA2_256    Code = "I"
)

// DefaultCode is the code used by signify-ts and keripy when none is given.
const DefaultCode = Blake3_256

// digestSize is the raw digest length in bytes for every supported code.
const digestSize = 32

// Dummy is the placeholder character filling the digest field while the
// digest is computed.
const Dummy = "#"

type codeSpec struct {
	name string
	sum  func([]byte) [digestSize]byte
}

var codes = map[Code]codeSpec{
	Blake3_256:  {name: "Blake3-256", sum: blake3.Sum256},
	Blake2b_256: {name: "Blake2b-256", sum: blake2b.Sum256},
	Blake2s_256: {name: "Blake2s-256", sum: blake2s.Sum256},
	SHA3_256:    {name: "SHA3-256", sum: sha3.Sum256},
	SHA2_256:    {name: "SHA2-256", sum: sha256.Sum256},
}

// Codes returns all supported codes in code-table order.
func Codes() []Code {
	return []Code{Blake3_256, Blake2b_256, Blake2s_256, SHA3_256, SHA2_256}
}

// ParseCode accepts either a code letter ("E") or an algorithm name
// ("blake3-256", case-insensitive, '_' in place of '-' allowed).
func ParseCode(s string) (Code, error) {
	if _, ok := codes[Code(s)]; ok {
		return Code(s), nil
	}
	name := strings.ReplaceAll(s, "_", "-")
	for _, c := range Codes() {
		if strings.EqualFold(codes[c].name, name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCode, s)
}

// String returns the algorithm name.
func (c Code) String() string {
	if spec, ok := codes[c]; ok {
		return spec.name
	}
	return fmt.Sprintf("Code(%q)", string(c))
}

// Valid reports whether c is a supported code.
func (c Code) Valid() bool {
	_, ok := codes[c]
	return ok
}

// Size returns the length of a qb64 digest with this code.
// Every supported code has a one-character prefix over 32 raw bytes.
func (c Code) Size() int {
	ps := padSize(digestSize)
	return len(c) + (digestSize+ps)*4/3 - ps
}

// Digest hashes ser and returns the qb64 encoding of the raw digest.
func (c Code) Digest(ser []byte) (string, error) {
	spec, ok := codes[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, string(c))
	}
	raw := spec.sum(ser)
	return EncodeQB64(string(c), raw[:]), nil
}

// CodeOf returns the derivation code that prefixes a qb64 digest.
func CodeOf(qb64 string) (Code, error) {
	if qb64 == "" {
		return "", fmt.Errorf("%w: empty digest", ErrUnknownCode)
	}
	c := Code(qb64[:1])
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, qb64[:1])
	}
	if len(qb64) != c.Size() {
		return "", fmt.Errorf("%w: digest length %d, expected %d for %s", ErrMalformedSad, len(qb64), c.Size(), c)
	}
	return c, nil
}

// padSize is the number of zero bytes prepended so raw aligns on 24 bits.
func padSize(n int) int {
	return (3 - n%3) % 3
}

// EncodeQB64 encodes raw with code as a CESR qb64 primitive: the raw bytes
// are left-padded to a multiple of three, base64url encoded, and the leading
// pad characters are replaced by the code. len(code) must equal the pad size.
func EncodeQB64(code string, raw []byte) string {
	ps := padSize(len(raw))
	padded := make([]byte, ps+len(raw))
	copy(padded[ps:], raw)
	b64 := base64.URLEncoding.EncodeToString(padded)
	return code + b64[ps:]
}
