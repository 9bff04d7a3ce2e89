package handler

import "github.com/timekeep/timer-system/internal/core/domain"

// credentialsForm is the form-encoded payload shared by login and signup.
type credentialsForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// indexData is everything the landing page template needs: the resolved user
// (nil when anonymous), the user's current bearer token for the client-side
// WebSocket constructor, and the auth error banner text.
type indexData struct {
	User      *domain.User
	UserToken string
	AuthError string
}
