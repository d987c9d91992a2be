// ABOUTME: Tests for user account storage
// ABOUTME: Verifies registration, bcrypt login, and profile updates

package sqlite

import (
	"errors"
	"testing"

	"github.com/wingmanhq/wingman-backend/internal/models"
)

func TestUserStore_CreateAndAuthenticate(t *testing.T) {
	store := NewUserStore(newTestDB(t))

	user, err := models.NewUser("sam@example.com", "", "Sam")
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	if err := store.Create(user, "hunter2-but-better"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.PasswordHash == "hunter2-but-better" {
		t.Fatal("password stored in clear")
	}

	got, err := store.Authenticate("sam", "hunter2-but-better")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.Email != "sam@example.com" {
		t.Errorf("Email = %q, want sam@example.com", got.Email)
	}
}

func TestUserStore_Authenticate_WrongPassword(t *testing.T) {
	store := NewUserStore(newTestDB(t))

	user, _ := models.NewUser("sam@example.com", "", "")
	if err := store.Create(user, "correct"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := store.Authenticate("sam", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := store.Authenticate("nobody", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserStore_UpdateName(t *testing.T) {
	store := NewUserStore(newTestDB(t))

	user, _ := models.NewUser("sam@example.com", "", "")
	if err := store.Create(user, "pw"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := store.UpdateName(user.ID, "Samantha"); err != nil {
		t.Fatalf("UpdateName() error = %v", err)
	}
	got, err := store.Get(user.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Samantha" {
		t.Errorf("Name = %q, want Samantha", got.Name)
	}

	if err := store.UpdateName("missing-id", "X"); err == nil {
		t.Error("updating a missing user should fail")
	}
}
