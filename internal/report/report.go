// Package report reads aggregate attendance figures. The arithmetic lives in
// SQL functions shipped with the migrations; this layer only invokes them and
// shapes the results.
package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"classtrack/internal/timetable"
)

// StudentAttendance is one roster row with aggregate attendance.
type StudentAttendance struct {
	StudentID     string  `json:"student_id"`
	Name          string  `json:"name"`
	Roll          string  `json:"student_roll"`
	Email         string  `json:"email"`
	AttendedCount int     `json:"attended_sessions"`
	TotalCount    int     `json:"total_sessions"`
	Percentage    float64 `json:"attendance_percentage"`
}

// TodaySession is one timetable slot falling on the current weekday.
type TodaySession struct {
	ID        string           `json:"id"`
	ClassName string           `json:"class_name"`
	Start     timetable.Minute `json:"start_time"`
	End       timetable.Minute `json:"end_time"`
	Room      string           `json:"room_number,omitempty"`
}

// DashboardStats is the faculty landing-page summary.
type DashboardStats struct {
	ActiveClasses int            `json:"active_classes"`
	TotalStudents int            `json:"total_students"`
	TodaySessions []TodaySession `json:"today_sessions"`
}

// Repository invokes the aggregate SQL functions.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ClassAttendance returns the class roster with per-student attendance
// percentages.
func (r *Repository) ClassAttendance(ctx context.Context, classID string) ([]StudentAttendance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT student_id, name, student_roll, email, attended_sessions, total_sessions, attendance_percentage
		FROM get_class_students_attendance($1)
	`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []StudentAttendance
	for rows.Next() {
		var sa StudentAttendance
		if err := rows.Scan(&sa.StudentID, &sa.Name, &sa.Roll, &sa.Email, &sa.AttendedCount, &sa.TotalCount, &sa.Percentage); err != nil {
			return nil, err
		}
		res = append(res, sa)
	}
	return res, rows.Err()
}

// StudentPercentage returns a student's overall attendance percentage looked
// up by roll number and email, or nil when the pair matches no records.
func (r *Repository) StudentPercentage(ctx context.Context, roll, email string) (*float64, error) {
	row := r.db.QueryRowContext(ctx, `SELECT ap FROM get_student_attendance_percentage($1, $2)`, roll, email)
	var pct float64
	if err := row.Scan(&pct); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &pct, nil
}

// DashboardStats returns counts and the day's scheduled sessions for the
// given weekday (0=Sunday).
func (r *Repository) DashboardStats(ctx context.Context, facultyID string, dayOfWeek int) (DashboardStats, error) {
	row := r.db.QueryRowContext(ctx, `SELECT get_dashboard_stats($1, $2)`, facultyID, dayOfWeek)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		return DashboardStats{}, err
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return DashboardStats{}, fmt.Errorf("decode dashboard stats: %w", err)
	}
	if stats.TodaySessions == nil {
		stats.TodaySessions = []TodaySession{}
	}
	return stats, nil
}
