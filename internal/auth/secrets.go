package auth

import "errors"

// Secrets carries the two process-wide pieces of secret material: the token
// signing key and the password pepper. It is built once at startup and never
// mutated; every component that needs a secret receives this value instead of
// reading process state.
//
// Losing the signing key invalidates every outstanding session token. Losing
// or rotating the pepper invalidates every stored password digest.
type Secrets struct {
	signingKey []byte
	pepper     []byte
}

// NewSecrets validates and freezes the secret material.
func NewSecrets(signingKey, pepper string) (Secrets, error) {
	if signingKey == "" {
		return Secrets{}, errors.New("signing key must not be empty")
	}
	if pepper == "" {
		return Secrets{}, errors.New("pepper must not be empty")
	}
	return Secrets{
		signingKey: []byte(signingKey),
		pepper:     []byte(pepper),
	}, nil
}

// SigningKey returns a copy of the token signing key.
func (s Secrets) SigningKey() []byte {
	return append([]byte(nil), s.signingKey...)
}

// Pepper returns a copy of the password pepper.
func (s Secrets) Pepper() []byte {
	return append([]byte(nil), s.pepper...)
}
