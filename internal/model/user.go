package model

import "time"

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summary returns the public-facing part of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

// UserSummary is what other users get to see about an owner.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Principal is the identity a request acts as.
// The zero value is the anonymous principal.
type Principal struct {
	UserID   string
	Username string
}

// Anonymous is the principal of an unauthenticated request.
var Anonymous = Principal{}

func (p Principal) IsAnonymous() bool {
	return p.UserID == ""
}
