package credential

// OfficialOrganizationalRoleArgs are the parameters of an OOR credential.
type OfficialOrganizationalRoleArgs struct {
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
	// OfficialOrganizationalRole is an ISO 5009 role title, e.g. "Chairman".
	OfficialOrganizationalRole string
}

// OfficialOrganizationalRoleCredentialData is the attribute block of a Legal
// Entity Official Organizational Role vLEI credential.
type OfficialOrganizationalRoleCredentialData struct {
	record
	nonce           string
	issuee          AID
	timestamp       string
	lei             string
	personLegalName string
	role            string
}

// NewOfficialOrganizationalRoleCredentialData builds the block and derives
// its SAID.
func NewOfficialOrganizationalRoleCredentialData(d Digester, args OfficialOrganizationalRoleArgs) (*OfficialOrganizationalRoleCredentialData, error) {
	rec, err := derive(d, VariantOfficialOrganizationalRole, binding{
		LabelNonce:           args.Nonce,
		LabelIssuee:          string(args.Issuee),
		LabelTimestamp:       args.Timestamp,
		LabelLEI:             args.LEI,
		LabelPersonLegalName: args.PersonLegalName,
		LabelOORRole:         args.OfficialOrganizationalRole,
	})
	if err != nil {
		return nil, err
	}

	return &OfficialOrganizationalRoleCredentialData{
		record:          rec,
		nonce:           args.Nonce,
		issuee:          args.Issuee,
		timestamp:       args.Timestamp,
		lei:             args.LEI,
		personLegalName: args.PersonLegalName,
		role:            args.OfficialOrganizationalRole,
	}, nil
}

// Nonce returns the salty nonce (label u).
func (c *OfficialOrganizationalRoleCredentialData) Nonce() string { return c.nonce }

// Issuee returns the person's AID (label i).
func (c *OfficialOrganizationalRoleCredentialData) Issuee() AID { return c.issuee }

// Timestamp returns the issuance date-time (label dt).
func (c *OfficialOrganizationalRoleCredentialData) Timestamp() string { return c.timestamp }

// LEI returns the legal entity's identifier (label LEI).
func (c *OfficialOrganizationalRoleCredentialData) LEI() string { return c.lei }

// PersonLegalName returns the person's legal name (label personLegalName).
func (c *OfficialOrganizationalRoleCredentialData) PersonLegalName() string {
	return c.personLegalName
}

// OfficialOrganizationalRole returns the ISO 5009 role title
// (label officialOrganizationalRole).
func (c *OfficialOrganizationalRoleCredentialData) OfficialOrganizationalRole() string {
	return c.role
}

// OfficialOrganizationalRoleAuthorizationArgs are the parameters of an OOR
// authorization credential, issued by a legal entity to its QVI.
type OfficialOrganizationalRoleAuthorizationArgs struct {
	// QVI is the qualifying party's AID; it becomes label i.
	QVI AID
	// Timestamp is the issuance date-time, carried verbatim.
	Timestamp string
	// Issuee is the AID of the intended recipient of the OOR credential;
	// it becomes label AID.
	Issuee AID
	// LEI of the requesting legal entity.
	LEI string
	// PersonLegalName requested for the recipient.
	PersonLegalName string
	// OfficialOrganizationalRole requested, an ISO 5009 role title.
	OfficialOrganizationalRole string
}

// OfficialOrganizationalRoleAuthorizationCredentialData is the attribute
// block of an OOR Authorization vLEI credential.
type OfficialOrganizationalRoleAuthorizationCredentialData struct {
	record
	qvi             AID
	timestamp       string
	issuee          AID
	lei             string
	personLegalName string
	role            string
}

// NewOfficialOrganizationalRoleAuthorizationCredentialData builds the block
// and derives its SAID.
func NewOfficialOrganizationalRoleAuthorizationCredentialData(d Digester, args OfficialOrganizationalRoleAuthorizationArgs) (*OfficialOrganizationalRoleAuthorizationCredentialData, error) {
	rec, err := derive(d, VariantOfficialOrganizationalRoleAuthorization, binding{
		LabelIssuee:          string(args.QVI),
		LabelTimestamp:       args.Timestamp,
		LabelRecipient:       string(args.Issuee),
		LabelLEI:             args.LEI,
		LabelPersonLegalName: args.PersonLegalName,
		LabelOORRole:         args.OfficialOrganizationalRole,
	})
	if err != nil {
		return nil, err
	}

	return &OfficialOrganizationalRoleAuthorizationCredentialData{
		record:          rec,
		qvi:             args.QVI,
		timestamp:       args.Timestamp,
		issuee:          args.Issuee,
		lei:             args.LEI,
		personLegalName: args.PersonLegalName,
		role:            args.OfficialOrganizationalRole,
	}, nil
}

// QVI returns the qualifying party's AID (label i).
func (c *OfficialOrganizationalRoleAuthorizationCredentialData) QVI() AID { return c.qvi }

// Issuee returns the intended OOR recipient's AID (label AID).
func (c *OfficialOrganizationalRoleAuthorizationCredentialData) Issuee() AID { return c.issuee }

// Timestamp returns the issuance date-time (label dt).
func (c *OfficialOrganizationalRoleAuthorizationCredentialData) Timestamp() string {
	return c.timestamp
}

// LEI returns the requesting legal entity's identifier (label LEI).
func (c *OfficialOrganizationalRoleAuthorizationCredentialData) LEI() string { return c.lei }

// PersonLegalName returns the recipient's legal name (label personLegalName).
func (c *OfficialOrganizationalRoleAuthorizationCredentialData) PersonLegalName() string {
	return c.personLegalName
}

// OfficialOrganizationalRole returns the requested role title
// (label officialOrganizationalRole).
func (c *OfficialOrganizationalRoleAuthorizationCredentialData) OfficialOrganizationalRole() string {
	return c.role
}
