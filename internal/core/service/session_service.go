package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/timekeep/timer-system/internal/core/domain"
	"github.com/timekeep/timer-system/internal/core/ports"
)

// SessionService binds opaque session identifiers to user records. The
// identifier is the only value that ever reaches the client; resolving it is
// a two-hop lookup (session → user id → user) so no user data lives in the
// cookie.
type SessionService struct {
	store ports.SessionStore
	users ports.UserRepository
}

func NewSessionService(store ports.SessionStore, users ports.UserRepository) *SessionService {
	return &SessionService{store: store, users: users}
}

func (s *SessionService) Create(ctx context.Context, userID string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.store.Put(ctx, sessionID, userID); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Resolve returns (nil, nil) when the session id is unknown, expired, or
// points at a deleted user. Absence is not an error: routes decide whether
// anonymity is acceptable.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	userID, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.Delete(ctx, sessionID)
}
