package classroom

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"classtrack/internal/store"
	"classtrack/internal/timetable"
)

// Repository persists classroom data in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InsertClass writes a new class.
func (r *Repository) InsertClass(ctx context.Context, c Class) (Class, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO classes (id, faculty_id, name, description, max_students, is_active, registration_code)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, c.ID, c.FacultyID, c.Name, c.Description, c.MaxStudents, c.IsActive, c.RegistrationCode)
	if err := row.Scan(&c.CreatedAt); err != nil {
		return Class{}, err
	}
	return c, nil
}

// ListClasses returns the faculty's classes, newest first.
func (r *Repository) ListClasses(ctx context.Context, facultyID string) ([]Class, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, faculty_id, name, description, max_students, is_active, registration_code, created_at
		FROM classes
		WHERE faculty_id = $1
		ORDER BY created_at DESC
	`, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Class
	for rows.Next() {
		var c Class
		if err := rows.Scan(&c.ID, &c.FacultyID, &c.Name, &c.Description, &c.MaxStudents, &c.IsActive, &c.RegistrationCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// GetClass returns a single class by id, or nil when absent.
func (r *Repository) GetClass(ctx context.Context, id string) (*Class, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, faculty_id, name, description, max_students, is_active, registration_code, created_at
		FROM classes WHERE id = $1
	`, id)
	var c Class
	if err := row.Scan(&c.ID, &c.FacultyID, &c.Name, &c.Description, &c.MaxStudents, &c.IsActive, &c.RegistrationCode, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// DeleteClass removes a class owned by the faculty. Dependent rows cascade.
func (r *Repository) DeleteClass(ctx context.Context, id, facultyID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1 AND faculty_id = $2`, id, facultyID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrClassNotFound
	}
	return nil
}

// ClassDetailsByCode resolves the join-page details through the
// get_class_details_by_code function.
func (r *Repository) ClassDetailsByCode(ctx context.Context, code string) (*ClassDetails, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, faculty_name FROM get_class_details_by_code($1)`, code)
	var d ClassDetails
	if err := row.Scan(&d.ID, &d.Name, &d.Description, &d.FacultyName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// InsertSlot writes a new timetable slot.
func (r *Repository) InsertSlot(ctx context.Context, slot timetable.TimeSlot) (timetable.TimeSlot, error) {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO timetable_slots (id, class_id, day_of_week, start_time, end_time, room_number)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, slot.ID, slot.ClassID, slot.Day, slot.Start, slot.End, slot.Room)
	if err := row.Scan(&slot.CreatedAt); err != nil {
		return timetable.TimeSlot{}, err
	}
	return slot, nil
}

// ListSlots returns a class's slots ordered by day then start time. The order
// doubles as the grid's tie-break order.
func (r *Repository) ListSlots(ctx context.Context, classID string) ([]timetable.TimeSlot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, class_id, day_of_week, start_time, end_time, room_number, created_at
		FROM timetable_slots
		WHERE class_id = $1
		ORDER BY day_of_week, start_time
	`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []timetable.TimeSlot
	for rows.Next() {
		var s timetable.TimeSlot
		if err := rows.Scan(&s.ID, &s.ClassID, &s.Day, &s.Start, &s.End, &s.Room, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// FindStudent looks a student up by email or roll number.
func (r *Repository) FindStudent(ctx context.Context, email, roll string) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, student_roll, email, phone, created_at
		FROM students
		WHERE email = $1 OR student_roll = $2
		LIMIT 1
	`, email, roll)
	var s Student
	if err := row.Scan(&s.ID, &s.Name, &s.Roll, &s.Email, &s.Phone, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// InsertStudent writes a new student.
func (r *Repository) InsertStudent(ctx context.Context, s Student) (Student, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (id, name, student_roll, email, phone)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, s.ID, s.Name, s.Roll, s.Email, s.Phone)
	if err := row.Scan(&s.CreatedAt); err != nil {
		return Student{}, err
	}
	return s, nil
}

// UpdateStudent refreshes mutable contact fields on re-enrollment.
func (r *Repository) UpdateStudent(ctx context.Context, id, name, phone string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE students SET name = $2, phone = $3 WHERE id = $1`, id, name, phone)
	return err
}

// Enroll links a student to a class. The unique constraint on
// (class_id, student_id) turns repeats into ErrDuplicateEnrollment.
func (r *Repository) Enroll(ctx context.Context, classID, studentID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO class_students (id, class_id, student_id)
		VALUES ($1,$2,$3)
	`, uuid.NewString(), classID, studentID)
	if store.IsDuplicateKey(err) {
		return ErrDuplicateEnrollment
	}
	return err
}
