// Package credential defines the attribute blocks of the five vLEI credential
// variants and derives their self-addressing digests.
//
// Every record is built once, fully, by its constructor and has no setters.
// Construction assembles the variant's labels in the order given by the
// schema tables (see package schema), seeds the digest label with an empty
// placeholder, and hands the mapping to an injected Digester. The digest the
// Digester returns is adopted as the record's SAID. If the Digester fails,
// its error is returned unchanged and no record is produced.
//
// Variants and their digested labels:
//
//	le        d, i, dt, LEI
//	ecr       d, u, i, dt, LEI, personLegalName, engagementContextRole
//	ecr_auth  d, i, dt, AID, LEI, personLegalName, officialOrganizationalRole
//	oor       d, u, i, dt, LEI, personLegalName, officialOrganizationalRole
//	oor_auth  d, i, dt, AID, LEI, personLegalName, officialOrganizationalRole
//
// The ECR authorization block carries the requested engagement context role
// under officialOrganizationalRole, as the published authorization schema
// does. The record still exposes the value through EngagementContextRole.
//
// Records are plain values with no shared state; constructing any number of
// them concurrently is safe provided the Digester is.
package credential
