package domain

import "time"

// Credential is the stored login record for a user. The credential store is
// its sole owner: no other component reads or writes these rows directly.
// Salt is unique per user and rotated on password change; PasswordDigest is a
// deterministic function of the password, the salt, and the process pepper.
type Credential struct {
	Username       string
	Salt           []byte
	PasswordDigest []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
