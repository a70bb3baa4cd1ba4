package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/confdesk/confreg-backend/internal/model"
	"github.com/confdesk/confreg-backend/internal/repository"
	"github.com/confdesk/confreg-backend/internal/session"
)

// ErrInvalidCredentials is returned for every login failure: unknown
// username, disabled account, or wrong password. The cases are
// deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is a bcrypt hash compared against when the username does
// not resolve, so an unknown user costs the same as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AdminReader resolves and stamps admin accounts for authentication.
type AdminReader interface {
	GetActiveByLogin(ctx context.Context, login string) (*model.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id int) error
}

// AuthService handles admin authentication and session lifecycle.
type AuthService struct {
	admins   AdminReader
	sessions session.Store
	activity *ActivityLogger
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(admins AdminReader, sessions session.Store, activity *ActivityLogger, log zerolog.Logger) *AuthService {
	return &AuthService{admins: admins, sessions: sessions, activity: activity, log: log}
}

// HashPassword hashes a password at the given bcrypt cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hash), err
}

// Login verifies the credentials against an active admin account
// looked up by username or email. On success it stamps last_login,
// establishes a new session and logs login_success; every failure path
// logs login_failed and returns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string, client ClientInfo) (*session.AdminSession, string, error) {
	failDetails := fmt.Sprintf("Failed login attempt for username: %s", username)

	admin, err := s.admins.GetActiveByLogin(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrAdminNotFound) {
			// Storage failure, not a credential problem. Surface it so
			// the handler can answer 500 instead of blaming the caller.
			return nil, "", fmt.Errorf("look up admin: %w", err)
		}
		// Burn a hash comparison anyway to keep timing uniform.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.activity.Record(ctx, "login_failed", failDetails, client)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.activity.Record(ctx, "login_failed", failDetails, client)
		return nil, "", ErrInvalidCredentials
	}

	if err := s.admins.UpdateLastLogin(ctx, admin.ID); err != nil {
		s.log.Warn().Err(err).Int("admin_id", admin.ID).Msg("Failed to stamp last login")
	}

	sess := session.AdminSession{
		AdminID:   admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		FullName:  admin.FullName,
		Role:      admin.Role,
		LoginTime: time.Now().UTC(),
	}
	id, err := s.sessions.Create(ctx, sess)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	s.activity.Record(ctx, "login_success",
		fmt.Sprintf("Successful login for username: %s", admin.Username), client)

	return &sess, id, nil
}

// Logout destroys the session identified by id. If a session existed
// its username is logged first. Calling Logout without a live session
// is a no-op; the operation always succeeds.
func (s *AuthService) Logout(ctx context.Context, id string, client ClientInfo) {
	if id == "" {
		return
	}

	if sess, err := s.sessions.Get(ctx, id); err == nil {
		s.activity.Record(ctx, "logout",
			fmt.Sprintf("Logout for username: %s", sess.Username), client)
	}

	if err := s.sessions.Destroy(ctx, id); err != nil {
		s.log.Warn().Err(err).Msg("Session destroy failed during logout")
	}
}
