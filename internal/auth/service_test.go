package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	faculty map[string]Faculty // by email
	tokens  map[string]tokenState
}

type tokenState struct {
	facultyID string
	expiresAt time.Time
	revoked   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		faculty: make(map[string]Faculty),
		tokens:  make(map[string]tokenState),
	}
}

func (f *fakeStore) InsertFaculty(_ context.Context, fac Faculty) (Faculty, error) {
	if _, ok := f.faculty[fac.Email]; ok {
		return Faculty{}, ErrDuplicateFaculty
	}
	fac.ID = "fac-" + fac.Email
	fac.CreatedAt = time.Now()
	f.faculty[fac.Email] = fac
	return fac, nil
}

func (f *fakeStore) FacultyByEmail(_ context.Context, email string) (*Faculty, error) {
	fac, ok := f.faculty[email]
	if !ok {
		return nil, nil
	}
	return &fac, nil
}

func (f *fakeStore) SaveRefreshToken(_ context.Context, facultyID, token string, expiresAt time.Time) error {
	f.tokens[token] = tokenState{facultyID: facultyID, expiresAt: expiresAt}
	return nil
}

func (f *fakeStore) RefreshTokenUsable(_ context.Context, token string, now time.Time) (bool, error) {
	st, ok := f.tokens[token]
	return ok && !st.revoked && st.expiresAt.After(now), nil
}

func (f *fakeStore) RevokeRefreshToken(_ context.Context, token string) error {
	st, ok := f.tokens[token]
	if ok {
		st.revoked = true
		f.tokens[token] = st
	}
	return nil
}

func newTestService(store Store) *Service {
	return NewService(store, "classtrack-test", "test-signing-key", 15*time.Minute, 24*time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeStore())

	fac, pair, err := svc.Register(ctx, "Dr. Rao", "Rao@University.edu.in ", "s3cret-password")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if fac.Email != "rao@university.edu.in" {
		t.Errorf("email not normalized: %q", fac.Email)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}

	claims, err := Parse(pair.AccessToken, "test-signing-key", "classtrack-test")
	if err != nil {
		t.Fatalf("Parse access token: %v", err)
	}
	if claims.Subject != fac.ID {
		t.Errorf("subject = %q, want %q", claims.Subject, fac.ID)
	}
	if claims.Role != RoleFaculty {
		t.Errorf("role = %q, want %q", claims.Role, RoleFaculty)
	}

	if _, _, err := svc.Register(ctx, "Dr. Rao", "rao@university.edu.in", "s3cret-password"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second register err = %v, want ErrEmailTaken", err)
	}

	if _, _, err := svc.Login(ctx, "rao@university.edu.in", "s3cret-password"); err != nil {
		t.Errorf("Login: %v", err)
	}
	if _, _, err := svc.Login(ctx, "rao@university.edu.in", "wrong-password"); !errors.Is(err, ErrCredentials) {
		t.Errorf("bad password err = %v, want ErrCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@university.edu.in", "s3cret-password"); !errors.Is(err, ErrCredentials) {
		t.Errorf("unknown email err = %v, want ErrCredentials", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newTestService(newFakeStore())
	if _, _, err := svc.Register(context.Background(), "Dr. Rao", "rao@university.edu.in", "short"); !errors.Is(err, ErrRegistration) {
		t.Fatalf("err = %v, want ErrRegistration", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store)

	_, pair, err := svc.Register(ctx, "Dr. Rao", "rao@university.edu.in", "s3cret-password")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token is revoked by rotation.
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrRefreshToken) {
		t.Errorf("reused token err = %v, want ErrRefreshToken", err)
	}

	// The new one still works.
	if _, err := svc.Refresh(ctx, rotated.RefreshToken); err != nil {
		t.Errorf("Refresh with rotated token: %v", err)
	}
}

func TestParseRejectsWrongKeyAndIssuer(t *testing.T) {
	pair, err := Issue("fac-1", RoleFaculty, "classtrack-test", "test-signing-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "other-key", "classtrack-test"); err == nil {
		t.Error("expected error for wrong signing key")
	}
	if _, err := Parse(pair.AccessToken, "test-signing-key", "other-issuer"); err == nil {
		t.Error("expected error for wrong issuer")
	}
}
