package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := &JWTManager{Secret: []byte("test-secret"), TTL: 24 * time.Hour}

	token, exp, err := m.GenerateToken(7, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
}

func TestJWTExpiredRejected(t *testing.T) {
	m := &JWTManager{Secret: []byte("test-secret"), TTL: -time.Minute}

	token, _, err := m.GenerateToken(7, "admin")
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.Error(t, err)
}

func TestJWTTamperedRejected(t *testing.T) {
	m := &JWTManager{Secret: []byte("test-secret"), TTL: time.Hour}

	token, _, err := m.GenerateToken(7, "admin")
	require.NoError(t, err)

	// flip a single bit anywhere in the token
	for i := 0; i < len(token); i++ {
		flipped := []byte(token)
		flipped[i] ^= 0x01
		if string(flipped) == token {
			continue
		}
		_, err := m.ParseToken(string(flipped))
		assert.Errorf(t, err, "bit flip at %d accepted", i)
	}
}

func TestJWTWrongSecretRejected(t *testing.T) {
	issuer := &JWTManager{Secret: []byte("secret-a"), TTL: time.Hour}
	verifier := &JWTManager{Secret: []byte("secret-b"), TTL: time.Hour}

	token, _, err := issuer.GenerateToken(7, "admin")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}
