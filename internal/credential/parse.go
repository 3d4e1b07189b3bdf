package credential

import (
	"fmt"
	"slices"

	"github.com/roach88/vlei/internal/said"
)

// Parse rebuilds a typed record from a completed mapping, such as one read
// back from storage. The labels must equal the variant's table exactly and
// the digest must verify under v.
func Parse(variant Variant, sad said.Sad, v Verifier) (Record, error) {
	table, err := tableFor(variant)
	if err != nil {
		return nil, err
	}

	if labels := sad.Labels(); !slices.Equal(labels, table.Labels) {
		return nil, fmt.Errorf("%w: %s: labels %v, want %v", ErrSchemaDrift, variant, labels, table.Labels)
	}

	if err := v.Verify(sad); err != nil {
		return nil, err
	}

	m := sad.Map()
	rec := record{
		variant: variant,
		digest:  SAID(m[LabelDigest]),
		sad:     sad.Clone(),
	}

	switch variant {
	case VariantLegalEntity:
		return &LegalEntityCredentialData{
			record:    rec,
			issuee:    AID(m[LabelIssuee]),
			timestamp: m[LabelTimestamp],
			lei:       m[LabelLEI],
		}, nil
	case VariantEngagementContextRole:
		return &EngagementContextRoleCredentialData{
			record:          rec,
			nonce:           m[LabelNonce],
			issuee:          AID(m[LabelIssuee]),
			timestamp:       m[LabelTimestamp],
			lei:             m[LabelLEI],
			personLegalName: m[LabelPersonLegalName],
			role:            m[LabelECRRole],
		}, nil
	case VariantEngagementContextRoleAuthorization:
		return &EngagementContextRoleAuthorizationCredentialData{
			record:          rec,
			qvi:             AID(m[LabelIssuee]),
			timestamp:       m[LabelTimestamp],
			issuee:          AID(m[LabelRecipient]),
			lei:             m[LabelLEI],
			personLegalName: m[LabelPersonLegalName],
			role:            m[LabelOORRole],
		}, nil
	case VariantOfficialOrganizationalRole:
		return &OfficialOrganizationalRoleCredentialData{
			record:          rec,
			nonce:           m[LabelNonce],
			issuee:          AID(m[LabelIssuee]),
			timestamp:       m[LabelTimestamp],
			lei:             m[LabelLEI],
			personLegalName: m[LabelPersonLegalName],
			role:            m[LabelOORRole],
		}, nil
	case VariantOfficialOrganizationalRoleAuthorization:
		return &OfficialOrganizationalRoleAuthorizationCredentialData{
			record:          rec,
			qvi:             AID(m[LabelIssuee]),
			timestamp:       m[LabelTimestamp],
			issuee:          AID(m[LabelRecipient]),
			lei:             m[LabelLEI],
			personLegalName: m[LabelPersonLegalName],
			role:            m[LabelOORRole],
		}, nil
	default:
		return nil, &UnknownVariantError{Name: string(variant)}
	}
}
