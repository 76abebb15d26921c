package models

import "time"

// Identity is the authenticated user attached to a session
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated session issued by the gateway
type Session struct {
	AccessToken  string    `json:"access_token" toml:"access_token"`
	RefreshToken string    `json:"refresh_token" toml:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at" toml:"expires_at"`
	User         Identity  `json:"user" toml:"user"`
}

// IsExpired reports whether the access token is expired at the given moment.
// A 30 second margin is kept so that tokens are refreshed before they are rejected.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt.Add(-30 * time.Second))
}

// SessionEvent identifies a session change notification
type SessionEvent string

const (
	SessionEventInitial        SessionEvent = "INITIAL_SESSION"
	SessionEventSignedIn       SessionEvent = "SIGNED_IN"
	SessionEventSignedOut      SessionEvent = "SIGNED_OUT"
	SessionEventTokenRefreshed SessionEvent = "TOKEN_REFRESHED"
)
