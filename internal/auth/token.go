package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Token verification failure kinds. The verifier surfaces these verbatim so
// the HTTP boundary can pick a precise response for each.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
	ErrExpiredToken   = errors.New("token expired")
)

// tokenHeader is the fixed first segment of every token.
type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Claims is the token payload: the authenticated username and the absolute
// expiration instant in seconds since epoch.
type Claims struct {
	Username string `json:"username"`
	IssuedAt int64  `json:"iat,omitempty"`
	Exp      int64  `json:"exp,omitempty"`
}

// TokenManager issues and verifies signed session tokens. Tokens are three
// base64url segments (header, payload, HMAC-SHA256 signature) joined by dots,
// with no padding, carrying no server-side state: validity is entirely a
// function of content, signature, and the current time.
type TokenManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenManager builds a manager signing with the process key.
func NewTokenManager(secrets Secrets, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{key: secrets.SigningKey(), ttl: ttl, now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Issue mints a token for the username, expiring after the configured TTL.
func (tm *TokenManager) Issue(username string) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	token, err := tm.Encode(Claims{
		Username: username,
		IssuedAt: issuedAt.Unix(),
		Exp:      expiresAt.Unix(),
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Encode serializes and signs the claims.
func (tm *TokenManager) Encode(claims Claims) (string, error) {
	headerJSON, err := json.Marshal(tokenHeader{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		return "", err
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	encodedHeader := base64.RawURLEncoding.EncodeToString(headerJSON)
	encodedPayload := base64.RawURLEncoding.EncodeToString(payloadJSON)
	signature := tm.sign(encodedHeader + "." + encodedPayload)

	return encodedHeader + "." + encodedPayload + "." + base64.RawURLEncoding.EncodeToString(signature), nil
}

// Verify validates a token and returns the username it names.
func (tm *TokenManager) Verify(token string) (string, error) {
	claims, err := tm.Decode(token)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// Decode checks structure, signature, and expiration, in that order. The
// signature is verified before the payload is decoded so no attacker-supplied
// content is acted on, and the comparison is constant time.
func (tm *TokenManager) Decode(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Claims{}, ErrMalformedToken
	}

	receivedSig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return Claims{}, ErrMalformedToken
	}
	expectedSig := tm.sign(parts[0] + "." + parts[1])
	if !hmac.Equal(receivedSig, expectedSig) {
		return Claims{}, ErrBadSignature
	}

	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrMalformedToken
	}
	var claims Claims
	if err := json.Unmarshal(payloadJSON, &claims); err != nil {
		return Claims{}, ErrMalformedToken
	}

	if claims.Exp != 0 && !tm.now().Before(time.Unix(claims.Exp, 0)) {
		return Claims{}, ErrExpiredToken
	}
	return claims, nil
}

func (tm *TokenManager) sign(signingInput string) []byte {
	mac := hmac.New(sha256.New, tm.key)
	mac.Write([]byte(signingInput))
	return mac.Sum(nil)
}
