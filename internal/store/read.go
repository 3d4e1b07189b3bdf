package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
)

// Entry is one stored credential block.
type Entry struct {
	Seq     int64
	SAID    credential.SAID
	Variant credential.Variant
	Code    said.Code
	Sad     said.Sad
}

// Get retrieves a stored block by SAID.
// Returns ErrNotFound if absent. The block is returned as stored; use Load
// to re-verify it.
func (s *Store) Get(ctx context.Context, id credential.SAID) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT seq, said, variant, code, sad
		FROM credentials
		WHERE said = ?
	`, string(id))

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, err
}

// Load retrieves a stored block and rebuilds its typed record, verifying
// the SAID with v.
func (s *Store) Load(ctx context.Context, id credential.SAID, v credential.Verifier) (credential.Record, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec, err := credential.Parse(e.Variant, e.Sad, v)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	return rec, nil
}

// List returns stored blocks of one variant, or of all variants when variant
// is empty. Results ordered by seq ASC, said ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) List(ctx context.Context, variant credential.Variant) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, said, variant, code, sad
		FROM credentials
		WHERE ? = '' OR variant = ?
		ORDER BY seq ASC, said COLLATE BINARY ASC
	`, string(variant), string(variant))
	if err != nil {
		return nil, fmt.Errorf("query credentials: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}

	s.logger.Debug("credentials listed", "variant", variant, "count", len(entries))
	return entries, nil
}

// Count returns the number of stored blocks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count credentials: %w", err)
	}
	return n, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e       Entry
		id      string
		variant string
		code    string
		sadJSON string
	)
	if err := row.Scan(&e.Seq, &id, &variant, &code, &sadJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scan credential: %w", err)
	}

	sad, err := unmarshalSad(sadJSON)
	if err != nil {
		return Entry{}, fmt.Errorf("credential %s: %w", id, err)
	}

	e.SAID = credential.SAID(id)
	e.Variant = credential.Variant(variant)
	e.Code = said.Code(code)
	e.Sad = sad
	return e, nil
}
