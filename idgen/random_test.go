package idgen

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomID(t *testing.T) {
	id, err := GenerateRandomID(16)
	require.NoError(t, err)
	assert.Len(t, id, 16)
	_, err = hex.DecodeString(id)
	assert.NoError(t, err)

	other, err := GenerateRandomID(16)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)

	for _, n := range []int{0, -2, 7} {
		_, err = GenerateRandomID(n)
		assert.ErrorIs(t, err, ErrInvalidLength)
	}
}
