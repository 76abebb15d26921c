package models

import (
	"strings"
	"time"
)

// User represents a registered account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	CreatedAt    time.Time `json:"created_at"`
}

// UserToken represents a refresh token issued to a user
type UserToken struct {
	ID     int    `json:"id"`
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// Credentials is the email and password pair used to sign in or sign up
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the public view of the signed-in user
type Profile struct {
	Email   string `json:"email"`
	Initial string `json:"initial"`
}

// NewProfile builds the profile of an identity. Initial is the upper-cased first letter of the email.
func NewProfile(identity Identity) Profile {
	profile := Profile{Email: identity.Email}
	for _, r := range identity.Email {
		profile.Initial = strings.ToUpper(string(r))
		break
	}
	return profile
}
