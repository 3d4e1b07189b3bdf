package credential

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNonce(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		n, err := NewNonce()
		require.NoError(t, err)
		assert.Len(t, n, 24)
		assert.Equal(t, "0A", n[:2])
		assert.False(t, seen[n], "duplicate nonce %s", n)
		seen[n] = true
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-01-01T00:00:00.000000+00:00"},
		{time.Date(2024, 6, 30, 12, 5, 9, 123456789, time.UTC), "2024-06-30T12:05:09.123456+00:00"},
		{time.Date(2024, 1, 1, 2, 0, 0, 0, time.FixedZone("CET", 3600)), "2024-01-01T01:00:00.000000+00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimestamp(tt.in))
	}
}
