package service

import (
	"context"
	"errors"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/timekeep/timer-system/internal/core/domain"
	"github.com/timekeep/timer-system/internal/core/ports"
)

// TokenService mints and resolves the opaque bearer tokens used to
// authenticate WebSocket handshakes. Minting revokes any prior token for the
// same user, so after every successful login the user holds exactly one
// deliverable credential.
type TokenService struct {
	repo ports.TokenRepository
}

func NewTokenService(repo ports.TokenRepository) *TokenService {
	return &TokenService{repo: repo}
}

func (s *TokenService) Mint(ctx context.Context, userID string) (string, error) {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return "", err
	}

	// 21 URL-safe characters, same entropy class as a v4 UUID.
	value, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	token := &domain.Token{
		Value:     value,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, token); err != nil {
		return "", err
	}
	return value, nil
}

// Resolve returns the owning user id, or an empty string when the token is
// unknown. The miss is not an error; the upgrade path turns it into a 401.
func (s *TokenService) Resolve(ctx context.Context, value string) (string, error) {
	token, err := s.repo.FindByValue(ctx, value)
	if errors.Is(err, domain.ErrTokenNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token.UserID, nil
}

func (s *TokenService) Delete(ctx context.Context, value string) error {
	return s.repo.DeleteByValue(ctx, value)
}

// TokenForUser re-surfaces the user's current token for page rendering.
// The repository orders by creation time, so even if older rows survive a
// partial Mint failure the newest one wins deterministically.
func (s *TokenService) TokenForUser(ctx context.Context, userID string) (string, error) {
	token, err := s.repo.LatestForUser(ctx, userID)
	if errors.Is(err, domain.ErrTokenNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token.Value, nil
}
