package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"classtrack/internal/store"
)

// Repository persists faculty accounts and refresh tokens in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertFaculty writes a new faculty account.
func (r *Repository) InsertFaculty(ctx context.Context, f Faculty) (Faculty, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO faculty (id, name, email, password_hash)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, f.ID, f.Name, f.Email, f.PasswordHash)
	if err := row.Scan(&f.CreatedAt); err != nil {
		if store.IsDuplicateKey(err) {
			return Faculty{}, ErrDuplicateFaculty
		}
		return Faculty{}, err
	}
	return f, nil
}

// FacultyByEmail returns a faculty account by email, or nil when absent.
func (r *Repository) FacultyByEmail(ctx context.Context, email string) (*Faculty, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at
		FROM faculty WHERE email = $1
	`, email)
	var f Faculty
	if err := row.Scan(&f.ID, &f.Name, &f.Email, &f.PasswordHash, &f.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// SaveRefreshToken stores a refresh token for rotation checks.
func (r *Repository) SaveRefreshToken(ctx context.Context, facultyID, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (faculty_id, token, expires_at)
		VALUES ($1, $2, $3)
	`, facultyID, token, expiresAt)
	return err
}

// RefreshTokenUsable reports whether the token exists, is unrevoked and
// unexpired.
func (r *Repository) RefreshTokenUsable(ctx context.Context, token string, now time.Time) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM refresh_tokens
			WHERE token = $1 AND NOT revoked AND expires_at > $2
		)
	`, token, now)
	var usable bool
	err := row.Scan(&usable)
	return usable, err
}

// RevokeRefreshToken marks a token revoked.
func (r *Repository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	return err
}
