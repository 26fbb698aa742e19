package domain

import (
	"strings"
	"time"
)

// Keys under which the auth session lives in the client key/value store.
const (
	SessionKeyToken = "token"
	SessionKeyUser  = "user"
)

type User struct {
	ID       int    `json:"id" yaml:"id"`
	FullName string `json:"full_name" yaml:"full_name"`
	Email    string `json:"email" yaml:"email"`
}

// AuthSession is the logged-in identity. The zero value is anonymous.
type AuthSession struct {
	Token string `json:"token" yaml:"-"`
	User  *User  `json:"user,omitempty" yaml:"user,omitempty"`
}

func (s AuthSession) IsAuthenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

func (s AuthSession) DisplayName() string {
	if s.User == nil {
		return ""
	}
	if s.User.FullName != "" {
		return s.User.FullName
	}

	return s.User.Email
}

// WebSession binds an opaque cookie id to an auth session on the server.
type WebSession struct {
	ID        string
	Auth      AuthSession
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s WebSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
