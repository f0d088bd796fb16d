package classroom

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"classtrack/internal/timetable"
)

var (
	ErrNameRequired    = errors.New("class name is required")
	ErrFieldsRequired  = errors.New("name, student ID and email are required")
	ErrEmailDomain     = errors.New("please use your university email address (.edu.in)")
	ErrClassNotFound   = errors.New("class not found")
	ErrInviteCode      = errors.New("invalid or expired registration code")
	ErrAlreadyEnrolled = errors.New("already enrolled in this class")
)

// Store is the persistence surface the service needs. *Repository satisfies
// it; tests substitute an in-memory fake.
type Store interface {
	InsertClass(ctx context.Context, c Class) (Class, error)
	ListClasses(ctx context.Context, facultyID string) ([]Class, error)
	GetClass(ctx context.Context, id string) (*Class, error)
	DeleteClass(ctx context.Context, id, facultyID string) error
	ClassDetailsByCode(ctx context.Context, code string) (*ClassDetails, error)

	InsertSlot(ctx context.Context, slot timetable.TimeSlot) (timetable.TimeSlot, error)
	ListSlots(ctx context.Context, classID string) ([]timetable.TimeSlot, error)

	FindStudent(ctx context.Context, email, roll string) (*Student, error)
	InsertStudent(ctx context.Context, s Student) (Student, error)
	UpdateStudent(ctx context.Context, id, name, phone string) error
	Enroll(ctx context.Context, classID, studentID string) error
}

// ErrDuplicateEnrollment is returned by Store.Enroll implementations when the
// (class, student) pair already exists.
var ErrDuplicateEnrollment = errors.New("duplicate enrollment")

// Service owns class, timetable and enrollment workflows.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// NewClass is the faculty input for creating a class with its initial
// weekly slot.
type NewClass struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	MaxStudents int              `json:"max_students"`
	Day         int              `json:"day_of_week"`
	Start       timetable.Minute `json:"start_time"`
	End         timetable.Minute `json:"end_time"`
	Room        string           `json:"room_number"`
}

// Enrollment is the student input used by both the join link and the faculty
// add-student form.
type Enrollment struct {
	Name  string `json:"name"`
	Roll  string `json:"student_roll"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateClass creates a class with a fresh registration code and its initial
// time slot.
func (s *Service) CreateClass(ctx context.Context, facultyID string, in NewClass) (Class, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Class{}, ErrNameRequired
	}
	if in.MaxStudents <= 0 {
		in.MaxStudents = 50
	}

	initial := timetable.TimeSlot{Day: in.Day, Start: in.Start, End: in.End, Room: in.Room}
	if err := timetable.Validate(initial, nil); err != nil {
		return Class{}, err
	}

	code, err := generateRegistrationCode()
	if err != nil {
		return Class{}, err
	}

	cls, err := s.store.InsertClass(ctx, Class{
		FacultyID:        facultyID,
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		MaxStudents:      in.MaxStudents,
		IsActive:         true,
		RegistrationCode: code,
	})
	if err != nil {
		return Class{}, err
	}

	initial.ClassID = cls.ID
	if _, err := s.store.InsertSlot(ctx, initial); err != nil {
		return Class{}, fmt.Errorf("insert initial slot: %w", err)
	}
	return cls, nil
}

// Classes lists the faculty's classes, newest first.
func (s *Service) Classes(ctx context.Context, facultyID string) ([]Class, error) {
	return s.store.ListClasses(ctx, facultyID)
}

// DeleteClass removes a class owned by the faculty; slots, sessions and
// enrollments go with it via foreign keys.
func (s *Service) DeleteClass(ctx context.Context, id, facultyID string) error {
	return s.store.DeleteClass(ctx, id, facultyID)
}

// AddTimeSlot validates the candidate against the class's existing slots and
// persists it.
func (s *Service) AddTimeSlot(ctx context.Context, classID string, in timetable.TimeSlot) (timetable.TimeSlot, error) {
	cls, err := s.store.GetClass(ctx, classID)
	if err != nil {
		return timetable.TimeSlot{}, err
	}
	if cls == nil {
		return timetable.TimeSlot{}, ErrClassNotFound
	}

	existing, err := s.store.ListSlots(ctx, classID)
	if err != nil {
		return timetable.TimeSlot{}, err
	}

	in.ClassID = classID
	if err := timetable.Validate(in, existing); err != nil {
		return timetable.TimeSlot{}, err
	}
	return s.store.InsertSlot(ctx, in)
}

// Slots returns the class's slots ordered by day then start time.
func (s *Service) Slots(ctx context.Context, classID string) ([]timetable.TimeSlot, error) {
	return s.store.ListSlots(ctx, classID)
}

// DetailsByCode resolves the join-page view of a class from its registration
// code.
func (s *Service) DetailsByCode(ctx context.Context, code string) (*ClassDetails, error) {
	details, err := s.store.ClassDetailsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrInviteCode
	}
	return details, nil
}

// JoinByCode self-enrolls a student through a join link. Unlike the faculty
// add-student path, it insists on an institutional email address.
func (s *Service) JoinByCode(ctx context.Context, code string, in Enrollment) (Student, error) {
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(in.Email)), ".edu.in") {
		return Student{}, ErrEmailDomain
	}
	details, err := s.DetailsByCode(ctx, code)
	if err != nil {
		return Student{}, err
	}
	return s.EnrollStudent(ctx, details.ID, in)
}

// EnrollStudent upserts the student record by email or roll number, then
// enrolls them in the class. Re-enrolling the same pair yields
// ErrAlreadyEnrolled.
func (s *Service) EnrollStudent(ctx context.Context, classID string, in Enrollment) (Student, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Roll = strings.TrimSpace(in.Roll)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Roll == "" || in.Email == "" {
		return Student{}, ErrFieldsRequired
	}

	existing, err := s.store.FindStudent(ctx, in.Email, in.Roll)
	if err != nil {
		return Student{}, err
	}

	var student Student
	if existing != nil {
		if err := s.store.UpdateStudent(ctx, existing.ID, in.Name, in.Phone); err != nil {
			return Student{}, err
		}
		student = *existing
		student.Name = in.Name
		student.Phone = in.Phone
	} else {
		student, err = s.store.InsertStudent(ctx, Student{
			Name:  in.Name,
			Roll:  in.Roll,
			Email: in.Email,
			Phone: in.Phone,
		})
		if err != nil {
			return Student{}, err
		}
	}

	if err := s.store.Enroll(ctx, classID, student.ID); err != nil {
		if errors.Is(err, ErrDuplicateEnrollment) {
			return Student{}, ErrAlreadyEnrolled
		}
		return Student{}, err
	}
	return student, nil
}

// generateRegistrationCode returns an 8-character base32 invite code.
func generateRegistrationCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate registration code: %w", err)
	}
	code := strings.TrimRight(base32.StdEncoding.EncodeToString(buf), "=")
	if len(code) > 8 {
		code = code[:8]
	}
	return code, nil
}
