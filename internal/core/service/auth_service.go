package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/timekeep/timer-system/internal/core/domain"
	"github.com/timekeep/timer-system/internal/core/ports"
)

// AuthService implements signup, login, and logout. Every successful login or
// signup mints a fresh session and bearer token pair; logout revokes both.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionManager
	tokens   ports.TokenManager
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionManager, tokens ports.TokenManager) *AuthService {
	return &AuthService{users: users, sessions: sessions, tokens: tokens}
}

func (s *AuthService) Signup(ctx context.Context, username, password string) (*ports.Credentials, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:       username,
		PasswordDigest: string(digest),
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, created)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.Credentials, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Unknown user and wrong password are indistinguishable to the caller.
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, sessionID, token string) error {
	// Two sequential revocations; each is idempotent, so a retried logout
	// converges even after a partial failure.
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	if token == "" {
		return nil
	}
	return s.tokens.Delete(ctx, token)
}

func (s *AuthService) issue(ctx context.Context, user *domain.User) (*ports.Credentials, error) {
	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Mint(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.Credentials{User: user, SessionID: sessionID, Token: token}, nil
}
