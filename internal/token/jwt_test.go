package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	issuer, err := NewIssuer(IssuerConfig{
		Secret: "test-secret",
		Issuer: "rallypoint-test",
	})
	require.NoError(t, err)

	signed, err := issuer.Generate("user-1", "volunteer")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := issuer.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "volunteer", claims.Role)
	assert.Equal(t, "rallypoint-test", claims.Issuer)
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer(IssuerConfig{})
	assert.Error(t, err)
}

func TestGenerateRequiresUserID(t *testing.T) {
	issuer, err := NewIssuer(IssuerConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = issuer.Generate("", "volunteer")
	assert.Error(t, err)
}

func TestVerifyWrongSecret(t *testing.T) {
	signer, err := NewIssuer(IssuerConfig{Secret: "secret-a"})
	require.NoError(t, err)
	verifier, err := NewIssuer(IssuerConfig{Secret: "secret-b"})
	require.NoError(t, err)

	signed, err := signer.Generate("user-1", "volunteer")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyWrongIssuer(t *testing.T) {
	signer, err := NewIssuer(IssuerConfig{Secret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	verifier, err := NewIssuer(IssuerConfig{Secret: "test-secret", Issuer: "rallypoint-test"})
	require.NoError(t, err)

	signed, err := signer.Generate("user-1", "volunteer")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyExpiredToken(t *testing.T) {
	base := time.Now()
	clock := base

	issuer, err := NewIssuer(IssuerConfig{
		Secret: "test-secret",
		TTL:    time.Hour,
		Clock:  func() time.Time { return clock },
	})
	require.NoError(t, err)

	signed, err := issuer.Generate("user-1", "volunteer")
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	require.NoError(t, err)

	clock = base.Add(2 * time.Hour)
	_, err = issuer.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyEmptyToken(t *testing.T) {
	issuer, err := NewIssuer(IssuerConfig{Secret: "test-secret"})
	require.NoError(t, err)

	_, err = issuer.Verify("")
	assert.Error(t, err)
}
