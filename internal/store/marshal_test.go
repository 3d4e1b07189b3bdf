package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vlei/internal/said"
)

func TestMarshalSad_PreservesOrder(t *testing.T) {
	sad := said.Sad{said.F("d", "Ex"), said.F("z", "1"), said.F("a", "<&>")}

	data, err := marshalSad(sad)
	require.NoError(t, err)
	assert.Equal(t, `{"d":"Ex","z":"1","a":"<&>"}`, data)

	back, err := unmarshalSad(data)
	require.NoError(t, err)
	assert.Equal(t, sad, back)
}

func TestUnmarshalSad_Malformed(t *testing.T) {
	_, err := unmarshalSad(`{"d":1}`)
	assert.ErrorIs(t, err, said.ErrMalformedSad)
}
