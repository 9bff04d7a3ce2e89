package ports

import (
	"context"

	"github.com/timekeep/timer-system/internal/core/domain"
)

// Credentials is everything a successful login or signup hands to the
// transport layer: the user plus both freshly minted opaque identifiers.
type Credentials struct {
	User      *domain.User
	SessionID string
	Token     string
}

// AuthService implements the login/signup/logout flows.
type AuthService interface {
	Signup(ctx context.Context, username, password string) (*Credentials, error)
	Login(ctx context.Context, username, password string) (*Credentials, error)
	// Logout revokes both credentials. Idempotent: missing rows are no-ops.
	Logout(ctx context.Context, sessionID, token string) error
}

// SessionManager creates and resolves opaque session identifiers.
// Resolve returns (nil, nil) when the session or its user is absent;
// an unresolved cookie is anonymity, not an error.
type SessionManager interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, sessionID string) (*domain.User, error)
	Delete(ctx context.Context, sessionID string) error
}

// TokenManager creates and resolves opaque bearer tokens for the WebSocket
// handshake. Resolve and TokenForUser return empty strings on a miss.
type TokenManager interface {
	Mint(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
	TokenForUser(ctx context.Context, userID string) (string, error)
}

// TimerService owns the timer lifecycle.
type TimerService interface {
	Start(ctx context.Context, userID, description string) (*domain.Timer, error)
	Stop(ctx context.Context, userID, timerID string) error
	List(ctx context.Context, userID string, activeOnly bool) ([]domain.Timer, error)
}
