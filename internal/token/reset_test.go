package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	raw, digest, err := GenerateResetToken()
	require.NoError(t, err)

	assert.Len(t, raw, 64)
	assert.Len(t, digest, 64)
	assert.NotEqual(t, raw, digest)
	assert.Equal(t, HashResetToken(raw), digest)
}

func TestGenerateResetTokenIsUnique(t *testing.T) {
	a, _, err := GenerateResetToken()
	require.NoError(t, err)
	b, _, err := GenerateResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashResetTokenIsDeterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}
