package credential

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaDrift means the attributes bound by a constructor, or the
	// labels of a parsed mapping, do not match the variant's schema table.
	ErrSchemaDrift = errors.New("attributes do not match schema")

	// ErrNoDigest means the Digester returned a mapping without a digest.
	ErrNoDigest = errors.New("digester returned no digest")
)

// UnknownVariantError is returned for a variant name with no schema.
type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown credential variant %q (want one of %s)", e.Name, variantList())
}

func variantList() string {
	names := make([]string, 0, len(Variants()))
	for _, v := range Variants() {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}
