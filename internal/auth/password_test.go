package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher(t *testing.T) *Hasher {
	t.Helper()
	secrets, err := NewSecrets("test-signing-key", "test-pepper")
	require.NoError(t, err)
	return NewHasher(secrets)
}

func TestHashDeterministic(t *testing.T) {
	hasher := testHasher(t)
	salt, err := NewSalt()
	require.NoError(t, err)

	first := hasher.Hash("s3cret!", salt)
	second := hasher.Hash("s3cret!", salt)

	assert.Equal(t, first, second)
	assert.Len(t, first, argonKeyLen)
}

func TestHashDependsOnAllInputs(t *testing.T) {
	hasher := testHasher(t)
	salt, err := NewSalt()
	require.NoError(t, err)
	otherSalt, err := NewSalt()
	require.NoError(t, err)

	base := hasher.Hash("s3cret!", salt)

	assert.NotEqual(t, base, hasher.Hash("different", salt), "password must affect the digest")
	assert.NotEqual(t, base, hasher.Hash("s3cret!", otherSalt), "salt must affect the digest")

	otherPepper, err := NewSecrets("test-signing-key", "another-pepper")
	require.NoError(t, err)
	assert.NotEqual(t, base, NewHasher(otherPepper).Hash("s3cret!", salt), "pepper must affect the digest")
}

func TestVerify(t *testing.T) {
	hasher := testHasher(t)
	salt, err := NewSalt()
	require.NoError(t, err)
	digest := hasher.Hash("s3cret!", salt)

	assert.True(t, hasher.Verify("s3cret!", salt, digest))
	assert.False(t, hasher.Verify("wrong", salt, digest))
	assert.False(t, hasher.Verify("", salt, digest))
}

func TestNewSalt(t *testing.T) {
	first, err := NewSalt()
	require.NoError(t, err)
	second, err := NewSalt()
	require.NoError(t, err)

	assert.Len(t, first, SaltLen)
	assert.NotEqual(t, first, second)
}
