package credential

// EngagementContextRoleArgs are the parameters of an ECR credential.
type EngagementContextRoleArgs struct {
	// Nonce is the salty nonce blinding the block (label u).
	Nonce string
	// Issuee is the person's AID.
	Issuee AID
	// Timestamp is the issuance date-time, carried verbatim.
	Timestamp string
	// LEI of the legal entity.
	LEI string
	// PersonLegalName as provided during identity assurance.
	PersonLegalName string
	// EngagementContextRole describes the role, e.g. "Head of Standards".
	EngagementContextRole string
}

// EngagementContextRoleCredentialData is the attribute block of a Legal
// Entity Engagement Context Role vLEI credential.
type EngagementContextRoleCredentialData struct {
	record
	nonce           string
	issuee          AID
	timestamp       string
	lei             string
	personLegalName string
	role            string
}

// NewEngagementContextRoleCredentialData builds the block and derives its SAID.
func NewEngagementContextRoleCredentialData(d Digester, args EngagementContextRoleArgs) (*EngagementContextRoleCredentialData, error) {
	rec, err := derive(d, VariantEngagementContextRole, binding{
		LabelNonce:           args.Nonce,
		LabelIssuee:          string(args.Issuee),
		LabelTimestamp:       args.Timestamp,
		LabelLEI:             args.LEI,
		LabelPersonLegalName: args.PersonLegalName,
		LabelECRRole:         args.EngagementContextRole,
	})
	if err != nil {
		return nil, err
	}

	return &EngagementContextRoleCredentialData{
		record:          rec,
		nonce:           args.Nonce,
		issuee:          args.Issuee,
		timestamp:       args.Timestamp,
		lei:             args.LEI,
		personLegalName: args.PersonLegalName,
		role:            args.EngagementContextRole,
	}, nil
}

// Nonce returns the salty nonce (label u).
func (c *EngagementContextRoleCredentialData) Nonce() string { return c.nonce }

// Issuee returns the person's AID (label i).
func (c *EngagementContextRoleCredentialData) Issuee() AID { return c.issuee }

// Timestamp returns the issuance date-time (label dt).
func (c *EngagementContextRoleCredentialData) Timestamp() string { return c.timestamp }

// LEI returns the legal entity's identifier (label LEI).
func (c *EngagementContextRoleCredentialData) LEI() string { return c.lei }

// PersonLegalName returns the person's legal name (label personLegalName).
func (c *EngagementContextRoleCredentialData) PersonLegalName() string {
	return c.personLegalName
}

// EngagementContextRole returns the role (label engagementContextRole).
func (c *EngagementContextRoleCredentialData) EngagementContextRole() string {
	return c.role
}

// EngagementContextRoleAuthorizationArgs are the parameters of an ECR
// authorization credential, issued by a legal entity to its QVI.
type EngagementContextRoleAuthorizationArgs struct {
	// QVI is the qualifying party's AID; it becomes label i.
	QVI AID
	// Timestamp is the issuance date-time, carried verbatim.
	Timestamp string
	// Issuee is the AID of the intended recipient of the ECR credential;
	// it becomes label AID.
	Issuee AID
	// LEI of the requesting legal entity.
	LEI string
	// PersonLegalName requested for the recipient.
	PersonLegalName string
	// EngagementContextRole requested for the recipient.
	EngagementContextRole string
}

// EngagementContextRoleAuthorizationCredentialData is the attribute block of
// an ECR Authorization vLEI credential. The requested role is digested under
// the label officialOrganizationalRole, as in the published schema.
type EngagementContextRoleAuthorizationCredentialData struct {
	record
	qvi             AID
	timestamp       string
	issuee          AID
	lei             string
	personLegalName string
	role            string
}

// NewEngagementContextRoleAuthorizationCredentialData builds the block and
// derives its SAID.
func NewEngagementContextRoleAuthorizationCredentialData(d Digester, args EngagementContextRoleAuthorizationArgs) (*EngagementContextRoleAuthorizationCredentialData, error) {
	rec, err := derive(d, VariantEngagementContextRoleAuthorization, binding{
		LabelIssuee:          string(args.QVI),
		LabelTimestamp:       args.Timestamp,
		LabelRecipient:       string(args.Issuee),
		LabelLEI:             args.LEI,
		LabelPersonLegalName: args.PersonLegalName,
		LabelOORRole:         args.EngagementContextRole,
	})
	if err != nil {
		return nil, err
	}

	return &EngagementContextRoleAuthorizationCredentialData{
		record:          rec,
		qvi:             args.QVI,
		timestamp:       args.Timestamp,
		issuee:          args.Issuee,
		lei:             args.LEI,
		personLegalName: args.PersonLegalName,
		role:            args.EngagementContextRole,
	}, nil
}

// QVI returns the qualifying party's AID (label i).
func (c *EngagementContextRoleAuthorizationCredentialData) QVI() AID { return c.qvi }

// Issuee returns the intended ECR recipient's AID (label AID).
func (c *EngagementContextRoleAuthorizationCredentialData) Issuee() AID { return c.issuee }

// Timestamp returns the issuance date-time (label dt).
func (c *EngagementContextRoleAuthorizationCredentialData) Timestamp() string {
	return c.timestamp
}

// LEI returns the requesting legal entity's identifier (label LEI).
func (c *EngagementContextRoleAuthorizationCredentialData) LEI() string { return c.lei }

// PersonLegalName returns the recipient's legal name (label personLegalName).
func (c *EngagementContextRoleAuthorizationCredentialData) PersonLegalName() string {
	return c.personLegalName
}

// EngagementContextRole returns the requested role. In the digested mapping
// it sits under officialOrganizationalRole.
func (c *EngagementContextRoleAuthorizationCredentialData) EngagementContextRole() string {
	return c.role
}
