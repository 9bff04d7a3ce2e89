package service

import (
	"context"
	"time"

	"github.com/timekeep/timer-system/internal/core/domain"
	"github.com/timekeep/timer-system/internal/core/ports"
)

// TimerService owns the timer lifecycle: start, stop, and per-user listing.
type TimerService struct {
	repo ports.TimerRepository
}

func NewTimerService(repo ports.TimerRepository) *TimerService {
	return &TimerService{repo: repo}
}

func (s *TimerService) Start(ctx context.Context, userID, description string) (*domain.Timer, error) {
	timer := &domain.Timer{
		UserID:      userID,
		Description: description,
		Start:       time.Now().UTC(),
		IsActive:    true,
	}
	return s.repo.Insert(ctx, timer)
}

// Stop ends a running timer. Stopping someone else's timer is forbidden;
// stopping an already-stopped timer reports ErrTimerStopped.
func (s *TimerService) Stop(ctx context.Context, userID, timerID string) error {
	timer, err := s.repo.FindByID(ctx, timerID)
	if err != nil {
		return err
	}
	if timer.UserID != userID {
		return domain.ErrForbidden
	}
	if !timer.IsActive {
		return domain.ErrTimerStopped
	}
	return s.repo.Stop(ctx, timerID, time.Now().UTC())
}

func (s *TimerService) List(ctx context.Context, userID string, activeOnly bool) ([]domain.Timer, error) {
	return s.repo.FindByUser(ctx, userID, activeOnly)
}
