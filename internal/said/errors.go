package said

import "errors"

var (
	// ErrMalformedSad means the mapping cannot be canonicalized: a missing
	// or pre-filled digest entry, duplicate labels, invalid UTF-8, or (in
	// strict mode) text that is not NFC-normalized.
	ErrMalformedSad = errors.New("malformed self-addressing data")

	// ErrUnknownCode means a digest carries an unsupported derivation code.
	ErrUnknownCode = errors.New("unknown digest derivation code")

	// ErrDigestMismatch means a stored digest does not match its content.
	ErrDigestMismatch = errors.New("digest does not match content")
)
