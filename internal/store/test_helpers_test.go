package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createLegalEntity builds an LE record with the given issuee.
func createLegalEntity(t *testing.T, issuee string) *credential.LegalEntityCredentialData {
	t.Helper()
	rec, err := credential.NewLegalEntityCredentialData(said.MustNew(), credential.LegalEntityArgs{
		Issuee:    credential.AID(issuee),
		Timestamp: "2024-01-01T00:00:00.000000+00:00",
		LEI:       "254900OPPU84GM83MG36",
	})
	if err != nil {
		t.Fatalf("NewLegalEntityCredentialData() failed: %v", err)
	}
	return rec
}

// createOfficialOrganizationalRole builds an OOR record with the given role.
func createOfficialOrganizationalRole(t *testing.T, role string) *credential.OfficialOrganizationalRoleCredentialData {
	t.Helper()
	rec, err := credential.NewOfficialOrganizationalRoleCredentialData(said.MustNew(), credential.OfficialOrganizationalRoleArgs{
		Nonce:                      "0ABhY2RlZmdoaWprbG1ub3Bx",
		Issuee:                     "ENsbVGwWl8pCDw3RXMY2Lk5tnCk9mzeVVEqZ5YpL4cm9",
		Timestamp:                  "2024-01-01T00:00:00.000000+00:00",
		LEI:                        "254900OPPU84GM83MG36",
		PersonLegalName:            "John Smith",
		OfficialOrganizationalRole: role,
	})
	if err != nil {
		t.Fatalf("NewOfficialOrganizationalRoleCredentialData() failed: %v", err)
	}
	return rec
}

// createAuthorizationPair builds an ECR and an OOR authorization from the
// same inputs.
func createAuthorizationPair(t *testing.T) (*credential.EngagementContextRoleAuthorizationCredentialData, *credential.OfficialOrganizationalRoleAuthorizationCredentialData) {
	t.Helper()
	const (
		qvi       = "EHMnCf8_nIemuPx-cUHaDQq8zSnQIFAurdEpwHpNbnvX"
		issuee    = "ENsbVGwWl8pCDw3RXMY2Lk5tnCk9mzeVVEqZ5YpL4cm9"
		timestamp = "2024-01-01T00:00:00.000000+00:00"
		lei       = "254900OPPU84GM83MG36"
	)
	ecr, err := credential.NewEngagementContextRoleAuthorizationCredentialData(said.MustNew(), credential.EngagementContextRoleAuthorizationArgs{
		QVI:                   qvi,
		Timestamp:             timestamp,
		Issuee:                issuee,
		LEI:                   lei,
		PersonLegalName:       "John Smith",
		EngagementContextRole: "Chairman",
	})
	if err != nil {
		t.Fatalf("NewEngagementContextRoleAuthorizationCredentialData() failed: %v", err)
	}
	oor, err := credential.NewOfficialOrganizationalRoleAuthorizationCredentialData(said.MustNew(), credential.OfficialOrganizationalRoleAuthorizationArgs{
		QVI:                        qvi,
		Timestamp:                  timestamp,
		Issuee:                     issuee,
		LEI:                        lei,
		PersonLegalName:            "John Smith",
		OfficialOrganizationalRole: "Chairman",
	})
	if err != nil {
		t.Fatalf("NewOfficialOrganizationalRoleAuthorizationCredentialData() failed: %v", err)
	}
	return ecr, oor
}
