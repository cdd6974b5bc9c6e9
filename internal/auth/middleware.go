package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

const usernameKey = "auth_username"

// Middleware validates bearer tokens and records the authenticated username.
// Every protected route rejects the request here, before any store access.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware around the token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	username, err := m.tokens.Verify(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, ErrExpiredToken):
			return apperrors.NewAuthFailure("EXPIRED_TOKEN", "token expired")
		case errors.Is(err, ErrBadSignature):
			return apperrors.NewAuthFailure("BAD_SIGNATURE", "token signature mismatch")
		default:
			return apperrors.NewAuthFailure("MALFORMED_TOKEN", "malformed token")
		}
	}

	c.Locals(usernameKey, username)
	return c.Next()
}

// UsernameFromContext retrieves the authenticated username.
func UsernameFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(usernameKey)
	if val == nil {
		return "", false
	}
	username, ok := val.(string)
	return username, ok && username != ""
}
