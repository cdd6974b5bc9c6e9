package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/taskboard/internal/auth"
	"github.com/spec-kit/taskboard/internal/domain"
	"github.com/spec-kit/taskboard/internal/repository"
	apperrors "github.com/spec-kit/taskboard/pkg/util"
)

// AuthService coordinates credential storage and session token issuance.
type AuthService struct {
	creds  repository.CredentialRepository
	hasher *auth.Hasher
	tokens *auth.TokenManager
}

// NewAuthService builds the service from the credential repository and the
// process secret material.
func NewAuthService(creds repository.CredentialRepository, secrets auth.Secrets, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		creds:  creds,
		hasher: auth.NewHasher(secrets),
		tokens: auth.NewTokenManager(secrets, tokenTTL),
	}
}

// Register creates a credential record with a fresh salt. A concurrent
// registration of the same username loses with DUPLICATE_USERNAME.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	cred := &domain.Credential{
		Username:       username,
		Salt:           salt,
		PasswordDigest: s.hasher.Hash(password, salt),
	}
	if err := s.creds.Create(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return apperrors.NewConflict("DUPLICATE_USERNAME", "username already exists", nil)
		}
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

// Verify reports whether the credentials match. An unknown username and a
// wrong password are indistinguishable: both return plain false.
func (s *AuthService) Verify(ctx context.Context, username, password string) (bool, error) {
	cred, err := s.creds.Get(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.NewStoreUnavailable(err)
	}
	return s.hasher.Verify(password, cred.Salt, cred.PasswordDigest), nil
}

// Login verifies credentials and mints a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	ok, err := s.Verify(ctx, username, password)
	if err != nil {
		return "", time.Time{}, err
	}
	if !ok {
		return "", time.Time{}, apperrors.NewAuthFailure("INVALID_CREDENTIALS", "invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(username)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}

// ChangePassword replaces the stored digest after verifying the old password.
// The salt is rotated along with the digest.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password required", nil)
	}

	cred, err := s.creds.Get(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewDomainError("USER_NOT_FOUND", "user not found", http.StatusNotFound, nil)
		}
		return apperrors.NewStoreUnavailable(err)
	}
	if !s.hasher.Verify(oldPassword, cred.Salt, cred.PasswordDigest) {
		return apperrors.NewAuthFailure("INVALID_CREDENTIALS", "invalid credentials")
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.creds.UpdateDigest(ctx, username, salt, s.hasher.Hash(newPassword, salt)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewDomainError("USER_NOT_FOUND", "user not found", http.StatusNotFound, nil)
		}
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

// Delete removes the credential record and reports whether one existed.
func (s *AuthService) Delete(ctx context.Context, username string) (bool, error) {
	removed, err := s.creds.Delete(ctx, username)
	if err != nil {
		return false, apperrors.NewStoreUnavailable(err)
	}
	return removed, nil
}

// TokenVerifier exposes the token manager for middleware usage.
func (s *AuthService) TokenVerifier() *auth.TokenManager {
	return s.tokens
}
