package domain

import (
	"errors"
	"time"
)

var ErrTokenNotFound = errors.New("token not found")

// Token is an opaque bearer credential used only to authenticate the
// WebSocket handshake. It carries no user data; resolution always goes
// through the datastore.
type Token struct {
	Value     string
	UserID    string
	CreatedAt time.Time
}
