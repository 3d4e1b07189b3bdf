package schema

import "errors"

// ErrUnknownVariant is returned by Lookup for a variant with no table.
var ErrUnknownVariant = errors.New("unknown credential variant")
