package ports

import (
	"context"
	"time"

	"github.com/timekeep/timer-system/internal/core/domain"
)

// UserRepository persists durable identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// TokenRepository persists bearer tokens. Lookups that miss return
// domain.ErrTokenNotFound; deletes are idempotent.
type TokenRepository interface {
	Insert(ctx context.Context, token *domain.Token) error
	FindByValue(ctx context.Context, value string) (*domain.Token, error)
	DeleteByValue(ctx context.Context, value string) error
	DeleteByUser(ctx context.Context, userID string) error
	// LatestForUser returns the newest token for the user by creation time.
	LatestForUser(ctx context.Context, userID string) (*domain.Token, error)
}

// SessionStore holds the server-side session id → user id binding. Get
// returns an empty user id (not an error) when the session is unknown or
// expired, and refreshes the TTL on every hit.
type SessionStore interface {
	Put(ctx context.Context, sessionID, userID string) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// TimerRepository persists timer records.
type TimerRepository interface {
	Insert(ctx context.Context, timer *domain.Timer) (*domain.Timer, error)
	FindByID(ctx context.Context, id string) (*domain.Timer, error)
	Stop(ctx context.Context, id string, end time.Time) error
	FindByUser(ctx context.Context, userID string, activeOnly bool) ([]domain.Timer, error)
}
