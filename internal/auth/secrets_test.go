package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecrets(t *testing.T) {
	t.Run("valid material", func(t *testing.T) {
		secrets, err := NewSecrets("signing-key", "pepper")
		require.NoError(t, err)
		assert.Equal(t, []byte("signing-key"), secrets.SigningKey())
		assert.Equal(t, []byte("pepper"), secrets.Pepper())
	})

	t.Run("empty signing key", func(t *testing.T) {
		_, err := NewSecrets("", "pepper")
		assert.Error(t, err)
	})

	t.Run("empty pepper", func(t *testing.T) {
		_, err := NewSecrets("signing-key", "")
		assert.Error(t, err)
	})
}

func TestSecretsReturnCopies(t *testing.T) {
	secrets, err := NewSecrets("signing-key", "pepper")
	require.NoError(t, err)

	key := secrets.SigningKey()
	key[0] ^= 0xff

	assert.Equal(t, []byte("signing-key"), secrets.SigningKey())
}
