package store

import (
	"fmt"

	"github.com/roach88/vlei/internal/said"
)

// marshalSad converts a block to the ordered compact JSON TEXT that was
// digested, so the stored text re-hashes to the same SAID.
func marshalSad(sad said.Sad) (string, error) {
	data, err := said.Serialize(sad)
	if err != nil {
		return "", fmt.Errorf("marshal sad: %w", err)
	}
	return string(data), nil
}

// unmarshalSad parses stored JSON TEXT, preserving label order.
func unmarshalSad(data string) (said.Sad, error) {
	sad, err := said.ParseSad([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal sad: %w", err)
	}
	return sad, nil
}
