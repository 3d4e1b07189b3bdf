package store

import (
	"context"
	"fmt"

	"github.com/roach88/vlei/internal/credential"
	"github.com/roach88/vlei/internal/said"
)

// Put stores rec keyed by its SAID.
// Uses ON CONFLICT(said) DO NOTHING for idempotency: storing a block that is
// already present is not an error, keeps the original row, and returns its
// seq with inserted=false. A present block of another variant fails with
// ErrVariantConflict and nothing is written.
//
// New rows get seq = MAX(seq)+1 inside the same transaction.
func (s *Store) Put(ctx context.Context, rec credential.Record) (seq int64, inserted bool, err error) {
	digest := string(rec.Digest())
	code, err := said.CodeOf(digest)
	if err != nil {
		return 0, false, fmt.Errorf("put credential: %w", err)
	}

	sadJSON, err := marshalSad(rec.Sad())
	if err != nil {
		return 0, false, fmt.Errorf("put credential: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("put credential: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var next int64
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM credentials
	`).Scan(&next); err != nil {
		return 0, false, fmt.Errorf("put credential: next seq: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO credentials (said, variant, code, sad, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(said) DO NOTHING
	`,
		digest,
		string(rec.Variant()),
		string(code),
		sadJSON,
		next,
	)
	if err != nil {
		return 0, false, fmt.Errorf("put credential: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("put credential: rows affected: %w", err)
	}

	if rowsAffected > 0 {
		seq, inserted = next, true
	} else {
		var variant string
		err = tx.QueryRowContext(ctx, `
			SELECT seq, variant FROM credentials WHERE said = ?
		`, digest).Scan(&seq, &variant)
		if err != nil {
			return 0, false, fmt.Errorf("put credential: select existing: %w", err)
		}
		if variant != string(rec.Variant()) {
			return 0, false, fmt.Errorf("%w: %s is %s, not %s", ErrVariantConflict, digest, variant, rec.Variant())
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("put credential: commit: %w", err)
	}

	s.logger.Debug("credential stored",
		"said", digest,
		"variant", rec.Variant(),
		"seq", seq,
		"inserted", inserted,
	)
	return seq, inserted, nil
}
