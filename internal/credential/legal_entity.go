package credential

// LegalEntityArgs are the parameters of a legal entity credential.
type LegalEntityArgs struct {
	// Issuee is the legal entity's AID.
	Issuee AID
	// Timestamp is the issuance date-time, carried verbatim.
	Timestamp string
	// LEI is the ISO 17442 Legal Entity Identifier.
	LEI string
}

// LegalEntityCredentialData is the attribute block of a Legal Entity vLEI
// credential: the base identity assertion for a legal entity.
type LegalEntityCredentialData struct {
	record
	issuee    AID
	timestamp string
	lei       string
}

// NewLegalEntityCredentialData builds the block and derives its SAID.
func NewLegalEntityCredentialData(d Digester, args LegalEntityArgs) (*LegalEntityCredentialData, error) {
	rec, err := derive(d, VariantLegalEntity, binding{
		LabelIssuee:    string(args.Issuee),
		LabelTimestamp: args.Timestamp,
		LabelLEI:       args.LEI,
	})
	if err != nil {
		return nil, err
	}

	return &LegalEntityCredentialData{
		record:    rec,
		issuee:    args.Issuee,
		timestamp: args.Timestamp,
		lei:       args.LEI,
	}, nil
}

// Issuee returns the legal entity's AID (label i).
func (c *LegalEntityCredentialData) Issuee() AID { return c.issuee }

// Timestamp returns the issuance date-time (label dt).
func (c *LegalEntityCredentialData) Timestamp() string { return c.timestamp }

// LEI returns the Legal Entity Identifier.
func (c *LegalEntityCredentialData) LEI() string { return c.lei }
