package domain

import (
	"errors"
	"time"
)

var ErrTimerNotFound = errors.New("timer not found")
var ErrTimerStopped = errors.New("timer already stopped")
var ErrForbidden = errors.New("access forbidden")

// Timer is a single tracked interval owned by one user. End is nil while the
// timer is running; IsActive is stored explicitly so the datastore can filter
// on it without inspecting End.
type Timer struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	IsActive    bool       `json:"isActive"`
}
