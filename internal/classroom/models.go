package classroom

import "time"

// Class is a faculty-owned group of enrolled students meeting on a recurring
// weekly schedule.
type Class struct {
	ID               string    `json:"id"`
	FacultyID        string    `json:"faculty_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	MaxStudents      int       `json:"max_students"`
	IsActive         bool      `json:"is_active"`
	RegistrationCode string    `json:"registration_code"`
	CreatedAt        time.Time `json:"created_at"`
}

// Student is a registered student, shared across classes via enrollments.
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Roll      string    `json:"student_roll"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassDetails is the public view of a class shown on the join page, resolved
// from a registration code.
type ClassDetails struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FacultyName string `json:"faculty_name"`
}
