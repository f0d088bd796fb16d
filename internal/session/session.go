// Package session owns the attendance-code lifecycle: short-lived codes are
// generated on faculty request, expire on a fixed policy, and the most recent
// non-expired session per class is the only one treated as active.
package session

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lifetime is the fixed validity window of an attendance code. Policy
// constant; not configurable.
const Lifetime = 15 * time.Minute

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

// Session is one code-protected attendance window for a class.
type Session struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GenerateCode produces a 6-character uppercase alphanumeric code. Codes are
// not checked for global uniqueness here; the expiry-filtered lookup at
// submission time is the arbiter.
func GenerateCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("session: read random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}

// New creates a session for the class expiring Lifetime after now.
func New(classID string, now time.Time) Session {
	return Session{
		ID:        uuid.NewString(),
		ClassID:   classID,
		Code:      GenerateCode(),
		CreatedAt: now,
		ExpiresAt: now.Add(Lifetime),
	}
}

// Active reports whether the session is still accepting submissions.
func (s Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// RemainingMinutes returns whole minutes until expiry, never negative.
func (s Session) RemainingMinutes(now time.Time) int {
	rem := s.ExpiresAt.Sub(now)
	if rem < 0 {
		return 0
	}
	return int(rem / time.Minute)
}

// ResolveForClass returns the most recently created session for classID that
// is still active at now. Both the faculty view (show code vs. start button)
// and submission acceptance resolve through here so the two never diverge.
func ResolveForClass(sessions []Session, classID string, now time.Time) (Session, bool) {
	var best Session
	found := false
	for _, s := range sessions {
		if s.ClassID != classID || !s.Active(now) {
			continue
		}
		if !found || s.CreatedAt.After(best.CreatedAt) {
			best = s
			found = true
		}
	}
	return best, found
}
