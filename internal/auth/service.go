package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleFaculty is the only role issued by this service.
const RoleFaculty = "faculty"

var (
	ErrCredentials  = errors.New("invalid email or password")
	ErrEmailTaken   = errors.New("an account with this email already exists")
	ErrRefreshToken = errors.New("invalid or revoked refresh token")
	ErrRegistration = errors.New("name, email and a password of at least 8 characters are required")
)

// Faculty is a teaching account that owns classes.
type Faculty struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is the persistence surface the service needs.
type Store interface {
	InsertFaculty(ctx context.Context, f Faculty) (Faculty, error)
	FacultyByEmail(ctx context.Context, email string) (*Faculty, error)
	SaveRefreshToken(ctx context.Context, facultyID, token string, expiresAt time.Time) error
	RefreshTokenUsable(ctx context.Context, token string, now time.Time) (bool, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}

// ErrDuplicateFaculty is returned by Store.InsertFaculty implementations when
// the email is already registered.
var ErrDuplicateFaculty = errors.New("duplicate faculty email")

// Service handles faculty sign-up, sign-in and token refresh.
type Service struct {
	store      Store
	issuer     string
	signingKey string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService creates the auth service.
func NewService(store Store, issuer, signingKey string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		store:      store,
		issuer:     issuer,
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a faculty account and signs it in.
func (s *Service) Register(ctx context.Context, name, email, password string) (Faculty, TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 8 {
		return Faculty{}, TokenPair{}, ErrRegistration
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Faculty{}, TokenPair{}, err
	}

	fac, err := s.store.InsertFaculty(ctx, Faculty{Name: name, Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, ErrDuplicateFaculty) {
			return Faculty{}, TokenPair{}, ErrEmailTaken
		}
		return Faculty{}, TokenPair{}, err
	}
	tokens, err := s.issueFor(ctx, fac)
	return fac, tokens, err
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (Faculty, TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fac, err := s.store.FacultyByEmail(ctx, email)
	if err != nil {
		return Faculty{}, TokenPair{}, err
	}
	if fac == nil {
		return Faculty{}, TokenPair{}, ErrCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(fac.PasswordHash), []byte(password)) != nil {
		return Faculty{}, TokenPair{}, ErrCredentials
	}
	tokens, err := s.issueFor(ctx, *fac)
	return *fac, tokens, err
}

// Refresh rotates a refresh token: the old token is revoked and a new pair
// issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := Parse(refreshToken, s.signingKey, s.issuer)
	if err != nil {
		return TokenPair{}, ErrRefreshToken
	}
	usable, err := s.store.RefreshTokenUsable(ctx, refreshToken, time.Now())
	if err != nil {
		return TokenPair{}, err
	}
	if !usable {
		return TokenPair{}, ErrRefreshToken
	}
	if err := s.store.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return TokenPair{}, err
	}

	tokens, err := Issue(claims.Subject, RoleFaculty, s.issuer, s.signingKey, s.accessTTL, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return tokens, s.store.SaveRefreshToken(ctx, claims.Subject, tokens.RefreshToken, tokens.RefreshExp)
}

// Logout revokes a refresh token.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.store.RevokeRefreshToken(ctx, refreshToken)
}

func (s *Service) issueFor(ctx context.Context, fac Faculty) (TokenPair, error) {
	tokens, err := Issue(fac.ID, RoleFaculty, s.issuer, s.signingKey, s.accessTTL, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return tokens, s.store.SaveRefreshToken(ctx, fac.ID, tokens.RefreshToken, tokens.RefreshExp)
}
