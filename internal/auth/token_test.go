package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenManager(t *testing.T, ttl time.Duration) *TokenManager {
	t.Helper()
	secrets, err := NewSecrets("test-signing-key", "test-pepper")
	require.NoError(t, err)
	return NewTokenManager(secrets, ttl)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := testTokenManager(t, time.Hour)

	token, expiresAt, err := tm.Issue("alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	username, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestTokenWireFormat(t *testing.T) {
	tm := testTokenManager(t, time.Hour)

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	for _, part := range parts {
		assert.NotEmpty(t, part)
		assert.NotContains(t, part, "=", "segments carry no padding")
		assert.NotContains(t, part, "+")
		assert.NotContains(t, part, "/")
	}
}

func TestVerifyMalformed(t *testing.T) {
	tm := testTokenManager(t, time.Hour)

	cases := map[string]string{
		"empty":             "",
		"one segment":       "abc",
		"two segments":      "abc.def",
		"four segments":     "a.b.c.d",
		"empty header":      ".payload.sig",
		"empty payload":     "header..sig",
		"empty signature":   "header.payload.",
		"invalid signature": "header.payload.!!!not-base64!!!",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Verify(token)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	tm := testTokenManager(t, time.Hour)

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	// Flipping any single byte must yield a definite failure, never success.
	for i := 0; i < len(token); i++ {
		raw := []byte(token)
		if raw[i] == '.' {
			continue
		}
		raw[i] ^= 0x01
		_, err := tm.Verify(string(raw))
		if err != ErrBadSignature && err != ErrMalformedToken {
			t.Fatalf("byte %d: expected BadSignature or MalformedToken, got %v", i, err)
		}
	}
}

func TestVerifyWrongKey(t *testing.T) {
	tm := testTokenManager(t, time.Hour)
	otherSecrets, err := NewSecrets("a-different-key", "test-pepper")
	require.NoError(t, err)
	other := NewTokenManager(otherSecrets, time.Hour)

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestVerifyExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tm := testTokenManager(t, time.Hour).WithClock(func() time.Time { return now })

	token, expiresAt, err := tm.Issue("alice")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	// Still valid one second before expiry.
	now = expiresAt.Add(-time.Second)
	username, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	// Invalid at the expiration instant itself.
	now = expiresAt
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	now = expiresAt.Add(24 * time.Hour)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExpirationCheckedAfterSignature(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tm := testTokenManager(t, time.Hour).WithClock(func() time.Time { return now })
	otherSecrets, err := NewSecrets("a-different-key", "test-pepper")
	require.NoError(t, err)
	other := NewTokenManager(otherSecrets, time.Hour).WithClock(func() time.Time { return now })

	token, expiresAt, err := tm.Issue("alice")
	require.NoError(t, err)

	// An expired token signed by somebody else fails on the signature, so no
	// information about the payload leaks.
	now = expiresAt.Add(time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestDecodeWithoutExpNeverExpires(t *testing.T) {
	tm := testTokenManager(t, time.Hour)

	token, err := tm.Encode(Claims{Username: "alice"})
	require.NoError(t, err)

	claims, err := tm.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Zero(t, claims.Exp)
}
