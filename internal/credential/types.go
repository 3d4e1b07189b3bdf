package credential

import (
	"github.com/roach88/vlei/internal/said"
)

// AID is an autonomic identifier naming an issuer or issuee. It is opaque
// to this package.
type AID string

// SAID is a self-addressing identifier: the digest of the block it labels.
type SAID string

// Variant names one of the credential attribute-block schemas.
type Variant string

// Credential variants, named as in the schema tables.
const (
	VariantLegalEntity                             Variant = "le"
	VariantEngagementContextRole                   Variant = "ecr"
	VariantEngagementContextRoleAuthorization      Variant = "ecr_auth"
	VariantOfficialOrganizationalRole              Variant = "oor"
	VariantOfficialOrganizationalRoleAuthorization Variant = "oor_auth"
)

// Variants returns all variants in trust-chain order.
func Variants() []Variant {
	return []Variant{
		VariantLegalEntity,
		VariantEngagementContextRole,
		VariantEngagementContextRoleAuthorization,
		VariantOfficialOrganizationalRole,
		VariantOfficialOrganizationalRoleAuthorization,
	}
}

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", &UnknownVariantError{Name: s}
}

// Attribute labels used by the schemas.
const (
	LabelDigest          = "d"
	LabelNonce           = "u"
	LabelIssuee          = "i"
	LabelTimestamp       = "dt"
	LabelRecipient       = "AID"
	LabelLEI             = "LEI"
	LabelPersonLegalName = "personLegalName"
	LabelECRRole         = "engagementContextRole"
	LabelOORRole         = "officialOrganizationalRole"
)

// Digester computes the SAID of a mapping. The mapping carries exactly one
// entry under the digest label with an empty value. Saidify returns the
// labels in canonical order and the mapping with the digest filled in.
//
// *said.Saider is the default implementation.
type Digester interface {
	Saidify(sad said.Sad) ([]string, said.Sad, error)
}

// Verifier checks that a completed mapping carries its own digest.
type Verifier interface {
	Verify(sad said.Sad) error
}

// Record is implemented by all five credential variants.
type Record interface {
	Variant() Variant
	Digest() SAID
	// Sad returns the mapping exactly as it was digested, digest included.
	Sad() said.Sad
}

// record holds the state every variant shares.
type record struct {
	variant Variant
	digest  SAID
	sad     said.Sad
}

// Variant returns the schema the record was built against.
func (r record) Variant() Variant {
	return r.variant
}

// Digest returns the record's SAID.
func (r record) Digest() SAID {
	return r.digest
}

// Sad returns a copy of the digested mapping.
func (r record) Sad() said.Sad {
	return r.sad.Clone()
}

// MarshalJSON emits the digested mapping in schema order.
func (r record) MarshalJSON() ([]byte, error) {
	return r.sad.MarshalJSON()
}

// Verify checks rec against its own digest using v.
func Verify(rec Record, v Verifier) error {
	return v.Verify(rec.Sad())
}
