package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEqual(t, "admin123", hash)

	assert.True(t, CompareHashAndPassword(hash, "admin123"))
	assert.False(t, CompareHashAndPassword(hash, "admin124"))
	assert.False(t, CompareHashAndPassword(hash, ""))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPassword("admin123")
	require.NoError(t, err)
	h2, err := HashPassword("admin123")
	require.NoError(t, err)

	// same password, different salt, different hashes
	assert.NotEqual(t, h1, h2)
}
