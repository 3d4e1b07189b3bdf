package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
)

func TestGet_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	rec := createOfficialOrganizationalRole(t, "Chairman")

	_, _, err := s.Put(ctx, rec)
	require.NoError(t, err)

	e, err := s.Get(ctx, rec.Digest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.Seq)
	assert.Equal(t, rec.Digest(), e.SAID)
	assert.Equal(t, credential.VariantOfficialOrganizationalRole, e.Variant)
	assert.Equal(t, said.Blake3_256, e.Code)
	assert.Equal(t, rec.Sad(), e.Sad)
}

func TestGet_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Get(context.Background(), "EMissing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_VerifiesAndRebuilds(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	rec := createOfficialOrganizationalRole(t, "Chairman")

	_, _, err := s.Put(ctx, rec)
	require.NoError(t, err)

	got, err := s.Load(ctx, rec.Digest(), said.MustNew())
	require.NoError(t, err)
	assert.Equal(t, credential.Record(rec), got)
}

func TestLoad_DetectsTampering(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	rec := createOfficialOrganizationalRole(t, "Chairman")

	_, _, err := s.Put(ctx, rec)
	require.NoError(t, err)

	tampered, err := marshalSad(rec.Sad().With(credential.LabelOORRole, "Vice Chairman"))
	require.NoError(t, err)
	_, err = s.db.Exec("UPDATE credentials SET sad = ? WHERE said = ?", tampered, string(rec.Digest()))
	require.NoError(t, err)

	_, err = s.Load(ctx, rec.Digest(), said.MustNew())
	assert.ErrorIs(t, err, said.ErrDigestMismatch)
}

func TestList_DeterministicOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	le := createLegalEntity(t, "EAbc123")
	chair := createOfficialOrganizationalRole(t, "Chairman")
	vice := createOfficialOrganizationalRole(t, "Vice Chairman")

	for _, rec := range []credential.Record{chair, le, vice} {
		_, _, err := s.Put(ctx, rec)
		require.NoError(t, err)
	}

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, chair.Digest(), all[0].SAID)
	assert.Equal(t, le.Digest(), all[1].SAID)
	assert.Equal(t, vice.Digest(), all[2].SAID)

	oor, err := s.List(ctx, credential.VariantOfficialOrganizationalRole)
	require.NoError(t, err)
	require.Len(t, oor, 2)
	assert.Equal(t, chair.Digest(), oor[0].SAID)
	assert.Equal(t, vice.Digest(), oor[1].SAID)
}

func TestList_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	entries, err := s.List(context.Background(), credential.VariantLegalEntity)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
