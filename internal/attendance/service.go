package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"classtrack/internal/session"
)

var (
	ErrInvalidOrExpiredCode = errors.New("invalid or expired attendance code")
	ErrUnknownStudent       = errors.New("student ID not found")
	ErrNotEnrolled          = errors.New("not enrolled in this class")
	ErrAlreadySubmitted     = errors.New("attendance already recorded for this session")
)

// ActiveCode is a session resolved by its code, with the class name for the
// confirmation message.
type ActiveCode struct {
	session.Session
	ClassName string
}

// Receipt confirms one recorded submission.
type Receipt struct {
	SessionID  string    `json:"session_id"`
	StudentID  string    `json:"student_id"`
	ClassName  string    `json:"class_name"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Store is the persistence surface the service needs.
type Store interface {
	InsertSession(ctx context.Context, s session.Session) error
	SessionsForClass(ctx context.Context, classID string, now time.Time) ([]session.Session, error)
	SessionByCode(ctx context.Context, code string) (*ActiveCode, error)
	StudentIDByRoll(ctx context.Context, roll string) (string, error)
	IsEnrolled(ctx context.Context, classID, studentID string) (bool, error)
	InsertRecord(ctx context.Context, sessionID, studentID string) error
}

// Service manages the generate/expire cycle of attendance codes and records
// student submissions against them.
type Service struct {
	store Store
	cache *Cache
	log   *zap.Logger
	now   func() time.Time
}

// NewService creates a service. cache may be nil.
func NewService(store Store, cache *Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, cache: cache, log: log, now: time.Now}
}

// StartSession returns the class's active session, creating one only when
// none is live. A second faculty click while a code is still valid gets the
// existing code back instead of a competing one.
func (s *Service) StartSession(ctx context.Context, classID string) (session.Session, error) {
	now := s.now().UTC()

	if active, err := s.ActiveSession(ctx, classID); err != nil {
		return session.Session{}, err
	} else if active != nil {
		return *active, nil
	}

	sess := session.New(classID, now)
	if err := s.store.InsertSession(ctx, sess); err != nil {
		return session.Session{}, err
	}
	s.cache.Put(ctx, sess)
	sessionsStarted.Inc()
	s.log.Info("attendance session started",
		zap.String("class_id", classID),
		zap.Time("expires_at", sess.ExpiresAt))
	return sess, nil
}

// ActiveSession resolves the canonical active session for a class: the most
// recently created one that has not expired, or nil.
func (s *Service) ActiveSession(ctx context.Context, classID string) (*session.Session, error) {
	now := s.now().UTC()

	if cached := s.cache.Get(ctx, classID); cached != nil && cached.Active(now) {
		return cached, nil
	}

	sessions, err := s.store.SessionsForClass(ctx, classID, now)
	if err != nil {
		return nil, err
	}
	active, ok := session.ResolveForClass(sessions, classID, now)
	if !ok {
		return nil, nil
	}
	s.cache.Put(ctx, active)
	return &active, nil
}

// Submit records attendance for the student identified by roll number against
// the session identified by code.
func (s *Service) Submit(ctx context.Context, code, roll string) (Receipt, error) {
	now := s.now().UTC()
	code = strings.ToUpper(strings.TrimSpace(code))
	roll = strings.TrimSpace(roll)

	found, err := s.store.SessionByCode(ctx, code)
	if err != nil {
		return Receipt{}, err
	}
	if found == nil || !found.Active(now) {
		submissions.WithLabelValues("invalid_code").Inc()
		return Receipt{}, ErrInvalidOrExpiredCode
	}

	studentID, err := s.store.StudentIDByRoll(ctx, roll)
	if err != nil {
		return Receipt{}, err
	}
	if studentID == "" {
		submissions.WithLabelValues("unknown_student").Inc()
		return Receipt{}, ErrUnknownStudent
	}

	enrolled, err := s.store.IsEnrolled(ctx, found.ClassID, studentID)
	if err != nil {
		return Receipt{}, err
	}
	if !enrolled {
		submissions.WithLabelValues("not_enrolled").Inc()
		return Receipt{}, ErrNotEnrolled
	}

	if err := s.store.InsertRecord(ctx, found.ID, studentID); err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			submissions.WithLabelValues("duplicate").Inc()
		}
		return Receipt{}, err
	}

	submissions.WithLabelValues("ok").Inc()
	s.log.Info("attendance recorded",
		zap.String("session_id", found.ID),
		zap.String("student_id", studentID))
	return Receipt{
		SessionID:  found.ID,
		StudentID:  studentID,
		ClassName:  found.ClassName,
		RecordedAt: now,
	}, nil
}
