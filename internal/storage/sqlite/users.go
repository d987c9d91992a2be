// ABOUTME: UserStore handles account registration, login, and profile updates
// ABOUTME: Passwords are bcrypt-hashed at this boundary and never stored in clear
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wingmanhq/wingman-backend/internal/models"
)

// ErrInvalidCredentials is returned when a login attempt does not match a
// stored account.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserStore manages user accounts.
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a user with the given plaintext password.
func (s *UserStore) Create(user *models.User, password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now().UTC()

	_, err = s.db.conn.Exec(`
		INSERT INTO users (id, email, username, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Username, user.Name, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// Authenticate returns the user matching the username and password, or
// ErrInvalidCredentials.
func (s *UserStore) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.conn.Get(&user,
		"SELECT * FROM users WHERE username = ?", username,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get returns a user by ID.
func (s *UserStore) Get(userID string) (*models.User, error) {
	var user models.User
	err := s.db.conn.Get(&user, "SELECT * FROM users WHERE id = ?", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return &user, nil
}

// UpdateName updates a user's display name.
func (s *UserStore) UpdateName(userID, name string) error {
	res, err := s.db.conn.Exec(
		"UPDATE users SET name = ? WHERE id = ?", name, userID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}
