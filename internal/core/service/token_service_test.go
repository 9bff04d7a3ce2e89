package service

import (
	"context"
	"testing"
	"time"

	"github.com/timekeep/timer-system/internal/core/domain"
)

type stubTokenRepo struct {
	tokens []domain.Token
}

func (r *stubTokenRepo) Insert(_ context.Context, token *domain.Token) error {
	r.tokens = append(r.tokens, *token)
	return nil
}

func (r *stubTokenRepo) FindByValue(_ context.Context, value string) (*domain.Token, error) {
	for _, t := range r.tokens {
		if t.Value == value {
			clone := t
			return &clone, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (r *stubTokenRepo) DeleteByValue(_ context.Context, value string) error {
	kept := r.tokens[:0]
	for _, t := range r.tokens {
		if t.Value != value {
			kept = append(kept, t)
		}
	}
	r.tokens = kept
	return nil
}

func (r *stubTokenRepo) DeleteByUser(_ context.Context, userID string) error {
	kept := r.tokens[:0]
	for _, t := range r.tokens {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	r.tokens = kept
	return nil
}

func (r *stubTokenRepo) LatestForUser(_ context.Context, userID string) (*domain.Token, error) {
	var latest *domain.Token
	for i := range r.tokens {
		t := &r.tokens[i]
		if t.UserID != userID {
			continue
		}
		if latest == nil || t.CreatedAt.After(latest.CreatedAt) {
			latest = t
		}
	}
	if latest == nil {
		return nil, domain.ErrTokenNotFound
	}
	clone := *latest
	return &clone, nil
}

func TestTokenService_MintAndResolve(t *testing.T) {
	repo := &stubTokenRepo{}
	svc := NewTokenService(repo)

	value, err := svc.Mint(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if len(value) < 21 {
		t.Fatalf("token too short: %q", value)
	}

	userID, err := svc.Resolve(context.Background(), value)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if userID != "user_1" {
		t.Fatalf("expected user_1, got %q", userID)
	}
}

func TestTokenService_MintRevokesPrior(t *testing.T) {
	repo := &stubTokenRepo{}
	svc := NewTokenService(repo)

	first, _ := svc.Mint(context.Background(), "user_1")
	second, _ := svc.Mint(context.Background(), "user_1")

	if first == second {
		t.Fatalf("expected distinct tokens")
	}
	if len(repo.tokens) != 1 {
		t.Fatalf("expected exactly one stored token, got %d", len(repo.tokens))
	}

	if userID, _ := svc.Resolve(context.Background(), first); userID != "" {
		t.Fatalf("old token must no longer resolve, got %q", userID)
	}
	if userID, _ := svc.Resolve(context.Background(), second); userID != "user_1" {
		t.Fatalf("new token must resolve, got %q", userID)
	}
}

func TestTokenService_ResolveUnknown(t *testing.T) {
	svc := NewTokenService(&stubTokenRepo{})

	userID, err := svc.Resolve(context.Background(), "never-minted")
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if userID != "" {
		t.Fatalf("expected empty user id, got %q", userID)
	}
}

func TestTokenService_DeleteIdempotent(t *testing.T) {
	repo := &stubTokenRepo{}
	svc := NewTokenService(repo)

	value, _ := svc.Mint(context.Background(), "user_1")

	if err := svc.Delete(context.Background(), value); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), value); err != nil {
		t.Fatalf("second delete must be a no-op: %v", err)
	}
}

func TestTokenService_TokenForUser_MostRecent(t *testing.T) {
	// Even if older rows survive a partial Mint failure, the newest wins.
	repo := &stubTokenRepo{tokens: []domain.Token{
		{Value: "old", UserID: "user_1", CreatedAt: time.Now().Add(-time.Hour)},
		{Value: "new", UserID: "user_1", CreatedAt: time.Now()},
	}}
	svc := NewTokenService(repo)

	value, err := svc.TokenForUser(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("TokenForUser returned error: %v", err)
	}
	if value != "new" {
		t.Fatalf("expected newest token, got %q", value)
	}
}

func TestTokenService_TokenForUser_Absent(t *testing.T) {
	svc := NewTokenService(&stubTokenRepo{})

	value, err := svc.TokenForUser(context.Background(), "user_1")
	if err != nil || value != "" {
		t.Fatalf("expected empty result, got (%q, %v)", value, err)
	}
}
