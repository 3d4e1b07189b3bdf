package credential

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/vlei/internal/said"
)

// saltCode is the CESR code of a 128-bit salt.
const saltCode = "0A"

// TimestampLayout is the KERI date-time format: ISO 8601 with microseconds
// and a numeric UTC offset, e.g. 2024-01-01T00:00:00.000000+00:00.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// NewNonce returns a fresh salty nonce in CESR qb64 form (24 characters,
// prefix "0A"). The 16 raw bytes come from a random (version 4) UUID.
func NewNonce() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	return said.EncodeQB64(saltCode, id[:]), nil
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
