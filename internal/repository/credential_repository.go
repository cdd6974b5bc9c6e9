package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/taskboard/internal/domain"
)

// ErrDuplicateUsername is returned when a registration loses the uniqueness
// race. The users table's primary key guarantees exactly one concurrent
// registration of a username wins.
var ErrDuplicateUsername = errors.New("username already exists")

const uniqueViolationCode = "23505"

// CredentialRepository defines persistence access for login credentials.
type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.Credential) error
	Get(ctx context.Context, username string) (*domain.Credential, error)
	UpdateDigest(ctx context.Context, username string, salt, digest []byte) error
	Delete(ctx context.Context, username string) (bool, error)
}

type credentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository returns a Postgres-backed implementation.
func NewCredentialRepository(pool *pgxpool.Pool) CredentialRepository {
	return &credentialRepository{pool: pool}
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	const query = `
        INSERT INTO users (username, salt, password_digest)
        VALUES ($1, $2, $3)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		cred.Username,
		cred.Salt,
		cred.PasswordDigest,
	).Scan(&cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *credentialRepository) Get(ctx context.Context, username string) (*domain.Credential, error) {
	const query = `
        SELECT username, salt, password_digest, created_at, updated_at
        FROM users WHERE username=$1`

	var cred domain.Credential
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&cred.Username,
		&cred.Salt,
		&cred.PasswordDigest,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) UpdateDigest(ctx context.Context, username string, salt, digest []byte) error {
	const query = `
        UPDATE users SET salt=$1, password_digest=$2, updated_at=NOW()
        WHERE username=$3`

	cmd, err := r.pool.Exec(ctx, query, salt, digest, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *credentialRepository) Delete(ctx context.Context, username string) (bool, error) {
	const query = `DELETE FROM users WHERE username=$1`

	cmd, err := r.pool.Exec(ctx, query, username)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
