package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"classtrack/internal/session"
	"classtrack/internal/store"
)

// Repository persists attendance sessions and records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertSession writes a new attendance session.
func (r *Repository) InsertSession(ctx context.Context, s session.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance_sessions (id, class_id, code, created_at, expires_at)
		VALUES ($1,$2,$3,$4,$5)
	`, s.ID, s.ClassID, s.Code, s.CreatedAt, s.ExpiresAt)
	return err
}

// SessionsForClass returns the class's non-expired sessions, newest first.
func (r *Repository) SessionsForClass(ctx context.Context, classID string, now time.Time) ([]session.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, class_id, code, created_at, expires_at
		FROM attendance_sessions
		WHERE class_id = $1 AND expires_at > $2
		ORDER BY created_at DESC
	`, classID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []session.Session
	for rows.Next() {
		var s session.Session
		if err := rows.Scan(&s.ID, &s.ClassID, &s.Code, &s.CreatedAt, &s.ExpiresAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// SessionByCode returns the most recent session carrying the code, with its
// class name, or nil when the code is unknown. Expiry is judged by the
// caller.
func (r *Repository) SessionByCode(ctx context.Context, code string) (*ActiveCode, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.class_id, s.code, s.created_at, s.expires_at, c.name
		FROM attendance_sessions s
		JOIN classes c ON c.id = s.class_id
		WHERE s.code = $1
		ORDER BY s.created_at DESC
		LIMIT 1
	`, code)
	var found ActiveCode
	if err := row.Scan(&found.ID, &found.ClassID, &found.Code, &found.CreatedAt, &found.ExpiresAt, &found.ClassName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &found, nil
}

// StudentIDByRoll resolves a roll number to a student id, "" when unknown.
func (r *Repository) StudentIDByRoll(ctx context.Context, roll string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id FROM students WHERE student_roll = $1`, roll)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

// IsEnrolled reports whether the student is enrolled in the class.
func (r *Repository) IsEnrolled(ctx context.Context, classID, studentID string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM class_students WHERE class_id = $1 AND student_id = $2)
	`, classID, studentID)
	var enrolled bool
	err := row.Scan(&enrolled)
	return enrolled, err
}

// InsertRecord writes one submission. The unique constraint on
// (session_id, student_id) turns repeats into ErrAlreadySubmitted.
func (r *Repository) InsertRecord(ctx context.Context, sessionID, studentID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance_records (id, session_id, student_id)
		VALUES ($1,$2,$3)
	`, uuid.NewString(), sessionID, studentID)
	if store.IsDuplicateKey(err) {
		return ErrAlreadySubmitted
	}
	return err
}
