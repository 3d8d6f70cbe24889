package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)

	assert.True(t, CheckPasswordHash("s3cretpass", hash))
	assert.False(t, CheckPasswordHash("wrongpass", hash))
}

func TestCheckPasswordHashBadDigest(t *testing.T) {
	assert.False(t, CheckPasswordHash("s3cretpass", "not-a-bcrypt-digest"))
}
