package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)

	assert.NoError(t, Compare(hash, "admin123"))
	assert.Error(t, Compare(hash, "wrong-password"))
}

func TestCompareInvalidHash(t *testing.T) {
	assert.Error(t, Compare("not-a-bcrypt-hash", "admin123"))
}
