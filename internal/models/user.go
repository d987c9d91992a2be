// ABOUTME: User account record for registration and login
// ABOUTME: PasswordHash is storage-only and never serialized to the API
package models

import (
	"errors"
	"strings"
	"time"
)

// User is an account record. Username defaults to the email local-part when
// not supplied at registration.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	Name         string    `json:"name,omitempty" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// NewUser creates a User with validation, defaulting the username from the
// email when empty.
func NewUser(email, username, name string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}
	if username == "" {
		username = email[:strings.Index(email, "@")]
	}
	return &User{
		Email:    email,
		Username: username,
		Name:     name,
	}, nil
}
