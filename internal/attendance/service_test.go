package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"classtrack/internal/session"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	sessions []session.Session
	classes  map[string]string // classID -> name
	students map[string]string // roll -> studentID
	enrolled map[string]bool   // classID + "/" + studentID
	records  map[string]bool   // sessionID + "/" + studentID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		classes:  map[string]string{"class-x": "Databases", "class-y": "Networks"},
		students: map[string]string{"21CS001": "stu-1", "21CS002": "stu-2"},
		enrolled: map[string]bool{"class-x/stu-1": true},
		records:  make(map[string]bool),
	}
}

func (f *fakeStore) InsertSession(_ context.Context, s session.Session) error {
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeStore) SessionsForClass(_ context.Context, classID string, now time.Time) ([]session.Session, error) {
	var out []session.Session
	for _, s := range f.sessions {
		if s.ClassID == classID && s.Active(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) SessionByCode(_ context.Context, code string) (*ActiveCode, error) {
	var best *session.Session
	for i := range f.sessions {
		s := &f.sessions[i]
		if s.Code != code {
			continue
		}
		if best == nil || s.CreatedAt.After(best.CreatedAt) {
			best = s
		}
	}
	if best == nil {
		return nil, nil
	}
	return &ActiveCode{Session: *best, ClassName: f.classes[best.ClassID]}, nil
}

func (f *fakeStore) StudentIDByRoll(_ context.Context, roll string) (string, error) {
	return f.students[roll], nil
}

func (f *fakeStore) IsEnrolled(_ context.Context, classID, studentID string) (bool, error) {
	return f.enrolled[classID+"/"+studentID], nil
}

func (f *fakeStore) InsertRecord(_ context.Context, sessionID, studentID string) error {
	key := sessionID + "/" + studentID
	if f.records[key] {
		return ErrAlreadySubmitted
	}
	f.records[key] = true
	return nil
}

// testService returns a service with a controllable clock and no cache.
func testService(store *fakeStore, at time.Time) (*Service, *time.Time) {
	now := at
	svc := NewService(store, nil, nil)
	svc.now = func() time.Time { return now }
	return svc, &now
}

var testEpoch = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestStartSessionSingleActive(t *testing.T) {
	store := newFakeStore()
	svc, now := testService(store, testEpoch)

	first, err := svc.StartSession(context.Background(), "class-x")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if first.ExpiresAt != testEpoch.Add(session.Lifetime) {
		t.Errorf("ExpiresAt = %v, want now + lifetime", first.ExpiresAt)
	}

	// While the first code is live, starting again returns it unchanged.
	*now = testEpoch.Add(5 * time.Minute)
	again, err := svc.StartSession(context.Background(), "class-x")
	if err != nil {
		t.Fatalf("StartSession (second): %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("second start created session %s, want existing %s", again.ID, first.ID)
	}
	if len(store.sessions) != 1 {
		t.Errorf("sessions stored = %d, want 1", len(store.sessions))
	}

	// After expiry a new session supersedes the old one.
	*now = testEpoch.Add(20 * time.Minute)
	fresh, err := svc.StartSession(context.Background(), "class-x")
	if err != nil {
		t.Fatalf("StartSession (after expiry): %v", err)
	}
	if fresh.ID == first.ID {
		t.Error("expected a new session after the first expired")
	}

	active, err := svc.ActiveSession(context.Background(), "class-x")
	if err != nil || active == nil || active.ID != fresh.ID {
		t.Errorf("ActiveSession = %+v, %v; want the fresh session", active, err)
	}
}

func TestActiveSessionNone(t *testing.T) {
	svc, _ := testService(newFakeStore(), testEpoch)
	active, err := svc.ActiveSession(context.Background(), "class-x")
	if err != nil {
		t.Fatalf("ActiveSession: %v", err)
	}
	if active != nil {
		t.Errorf("ActiveSession = %+v, want nil", active)
	}
}

func TestSubmit(t *testing.T) {
	store := newFakeStore()
	svc, now := testService(store, testEpoch)

	sess, err := svc.StartSession(context.Background(), "class-x")
	if err != nil {
		t.Fatal(err)
	}

	receipt, err := svc.Submit(context.Background(), sess.Code, "21CS001")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if receipt.ClassName != "Databases" || receipt.SessionID != sess.ID {
		t.Errorf("receipt = %+v", receipt)
	}

	// Same student, same session: duplicate.
	if _, err := svc.Submit(context.Background(), sess.Code, "21CS001"); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("duplicate submit error = %v, want ErrAlreadySubmitted", err)
	}

	// Lowercase input is accepted; codes are canonically uppercase.
	if _, err := svc.Submit(context.Background(), "  "+lower(sess.Code)+" ", "21CS001"); !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("lowercase code error = %v, want ErrAlreadySubmitted (same session)", err)
	}

	// Student not enrolled in the session's class.
	if _, err := svc.Submit(context.Background(), sess.Code, "21CS002"); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("unenrolled error = %v, want ErrNotEnrolled", err)
	}

	// Unknown roll number.
	if _, err := svc.Submit(context.Background(), sess.Code, "99XX999"); !errors.Is(err, ErrUnknownStudent) {
		t.Errorf("unknown student error = %v, want ErrUnknownStudent", err)
	}

	// Unknown code.
	if _, err := svc.Submit(context.Background(), "ZZZZZZ", "21CS001"); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Errorf("unknown code error = %v, want ErrInvalidOrExpiredCode", err)
	}

	// Expired code: distinguishable from success, same error as unknown.
	*now = testEpoch.Add(16 * time.Minute)
	if _, err := svc.Submit(context.Background(), sess.Code, "21CS001"); !errors.Is(err, ErrInvalidOrExpiredCode) {
		t.Errorf("expired code error = %v, want ErrInvalidOrExpiredCode", err)
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
