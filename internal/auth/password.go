package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters in the OWASP recommended range. The digest is a
// deterministic function of (password, salt, pepper); the stored shape stays
// a per-user (salt, digest) pair.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	// SaltLen is the size of per-user salts generated at registration.
	SaltLen = 16
)

// Hasher derives password digests using the process-wide pepper.
type Hasher struct {
	pepper []byte
}

// NewHasher builds a hasher bound to the given secret material.
func NewHasher(secrets Secrets) *Hasher {
	return &Hasher{pepper: secrets.Pepper()}
}

// NewSalt returns a fresh random salt. Salts are unique per user and never
// reused across registrations.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// Hash derives the digest for a password under the given salt. Same inputs
// always yield the same digest.
func (h *Hasher) Hash(password string, salt []byte) []byte {
	peppered := append([]byte(password), h.pepper...)
	return argon2.IDKey(peppered, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// Verify recomputes the digest and compares it to the stored one in constant
// time.
func (h *Hasher) Verify(password string, salt, digest []byte) bool {
	candidate := h.Hash(password, salt)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}
