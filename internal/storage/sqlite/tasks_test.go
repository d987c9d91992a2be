// ABOUTME: Tests for task storage operations
// ABOUTME: Verifies CRUD, date ordering with untimed tasks last, and term search

package sqlite

import (
	"testing"

	"github.com/wingmanhq/wingman-backend/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTaskStore_CreateAndForDate(t *testing.T) {
	store := NewTaskStore(newTestDB(t))

	tasks := []models.Task{
		{UserID: "u1", Title: "Untimed chore", Date: "2025-06-01"},
		{UserID: "u1", Title: "Morning run", Date: "2025-06-01", Time: "07:00"},
		{UserID: "u1", Title: "Lunch errand", Date: "2025-06-01", Time: "12:30"},
		{UserID: "u2", Title: "Other user task", Date: "2025-06-01"},
	}
	for i := range tasks {
		if err := store.Create(&tasks[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := store.ForDate("u1", "2025-06-01")
	if err != nil {
		t.Fatalf("ForDate() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ForDate() returned %d tasks, want 3", len(got))
	}

	// Timed tasks ascending, untimed last.
	wantOrder := []string{"Morning run", "Lunch errand", "Untimed chore"}
	for i, want := range wantOrder {
		if got[i].Title != want {
			t.Errorf("task[%d].Title = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestTaskStore_ForDate_ScopedByUser(t *testing.T) {
	store := NewTaskStore(newTestDB(t))

	if err := store.Create(&models.Task{UserID: "u1", Title: "Mine", Date: "2025-06-01"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(&models.Task{UserID: "u2", Title: "Theirs", Date: "2025-06-01"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.ForDate("u1", "2025-06-01")
	if err != nil {
		t.Fatalf("ForDate() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Mine" {
		t.Errorf("ForDate() = %v, want only the u1 task", got)
	}
}

func TestTaskStore_Matching(t *testing.T) {
	store := NewTaskStore(newTestDB(t))

	seed := []models.Task{
		{UserID: "u1", Title: "Finish project report", Date: "2025-05-30", UrgencyLevel: 2},
		{UserID: "u1", Title: "Project kickoff", Date: "2025-06-01", UrgencyLevel: 1},
		{UserID: "u1", Title: "Buy groceries", Date: "2025-06-01"},
	}
	for i := range seed {
		if err := store.Create(&seed[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := store.Matching("u1", []string{"PROJECT"})
	if err != nil {
		t.Fatalf("Matching() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Matching() returned %d tasks, want 2", len(got))
	}
	// Newest date first.
	if got[0].Title != "Project kickoff" {
		t.Errorf("first match = %q, want Project kickoff", got[0].Title)
	}
}

func TestTaskStore_Matching_EmptyTerms(t *testing.T) {
	store := NewTaskStore(newTestDB(t))

	got, err := store.Matching("u1", nil)
	if err != nil {
		t.Fatalf("Matching() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Matching() with no terms returned %d tasks, want 0", len(got))
	}
}

func TestTaskStore_UpdateAndDelete(t *testing.T) {
	store := NewTaskStore(newTestDB(t))

	task := models.Task{UserID: "u1", Title: "Draft email", Date: "2025-06-01"}
	if err := store.Create(&task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	task.Completed = true
	if err := store.Update(&task); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.ForDate("u1", "2025-06-01")
	if err != nil {
		t.Fatalf("ForDate() error = %v", err)
	}
	if !got[0].Completed {
		t.Error("task should be completed after update")
	}

	if err := store.Delete("u1", task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Delete("u1", task.ID); err == nil {
		t.Error("deleting a missing task should fail")
	}
}

func TestTaskStore_Between(t *testing.T) {
	store := NewTaskStore(newTestDB(t))

	dates := []string{"2025-05-28", "2025-05-30", "2025-06-02"}
	for _, d := range dates {
		if err := store.Create(&models.Task{UserID: "u1", Title: "Task " + d, Date: d}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := store.Between("u1", "2025-05-29", "2025-06-01")
	if err != nil {
		t.Fatalf("Between() error = %v", err)
	}
	if len(got) != 1 || got[0].Date != "2025-05-30" {
		t.Errorf("Between() = %v, want only 2025-05-30", got)
	}
}
