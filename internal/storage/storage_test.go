// ABOUTME: Tests for the unified Storage facade
// ABOUTME: Covers event/diary queries and the cross-entity behavior the engine relies on

package storage

import (
	"testing"

	"github.com/wingmanhq/wingman-backend/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorageInMemory()
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStorage_EventsForDate_Ordering(t *testing.T) {
	store := newTestStorage(t)

	events := []models.Event{
		{UserID: "u1", Title: "Standup", Date: "2025-06-01", Time: "09:00", Type: "meeting"},
		{UserID: "u1", Title: "Dentist", Date: "2025-06-01", Time: "14:30", Type: "appointment"},
		{UserID: "u1", Title: "Elsewhere", Date: "2025-06-02", Time: "09:00"},
	}
	for i := range events {
		if err := store.CreateEvent(&events[i]); err != nil {
			t.Fatalf("CreateEvent() error = %v", err)
		}
	}

	got, err := store.EventsForDate("u1", "2025-06-01")
	if err != nil {
		t.Fatalf("EventsForDate() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("EventsForDate() returned %d events, want 2", len(got))
	}
	if got[0].Title != "Standup" || got[1].Title != "Dentist" {
		t.Errorf("events out of time order: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestStorage_EventsMatching_SearchesDescription(t *testing.T) {
	store := newTestStorage(t)

	event := models.Event{
		UserID: "u1", Title: "Sync", Date: "2025-06-01",
		Description: "quarterly budget review",
	}
	if err := store.CreateEvent(&event); err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	got, err := store.EventsMatching("u1", []string{"budget"})
	if err != nil {
		t.Fatalf("EventsMatching() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("EventsMatching() returned %d events, want 1", len(got))
	}
}

func TestStorage_DiarySince(t *testing.T) {
	store := newTestStorage(t)

	entries := []models.DiaryEntry{
		{UserID: "u1", Date: "2025-05-20", Content: "old entry", Mood: "neutral"},
		{UserID: "u1", Date: "2025-05-30", Content: "newer entry", Mood: "happy"},
		{UserID: "u1", Date: "2025-06-01", Content: "newest entry", Mood: "happy"},
	}
	for i := range entries {
		if err := store.CreateDiaryEntry(&entries[i]); err != nil {
			t.Fatalf("CreateDiaryEntry() error = %v", err)
		}
	}

	got, err := store.DiarySince("u1", "2025-05-25")
	if err != nil {
		t.Fatalf("DiarySince() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("DiarySince() returned %d entries, want 2", len(got))
	}
	if got[0].Date != "2025-06-01" {
		t.Errorf("first entry date = %q, want newest first", got[0].Date)
	}
}

func TestStorage_DiaryMatching_Cap(t *testing.T) {
	store := newTestStorage(t)

	for i := 0; i < 8; i++ {
		entry := models.DiaryEntry{
			UserID:  "u1",
			Date:    "2025-06-01",
			Content: "thinking about the garden again",
		}
		if err := store.CreateDiaryEntry(&entry); err != nil {
			t.Fatalf("CreateDiaryEntry() error = %v", err)
		}
	}

	got, err := store.DiaryMatching("u1", []string{"garden"})
	if err != nil {
		t.Fatalf("DiaryMatching() error = %v", err)
	}
	if len(got) != 5 {
		t.Errorf("DiaryMatching() returned %d entries, want cap of 5", len(got))
	}
}

func TestStorage_CrossUserIsolation(t *testing.T) {
	store := newTestStorage(t)

	if err := store.CreateTask(&models.Task{UserID: "u1", Title: "Private", Date: "2025-06-01"}); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if err := store.CreateDiaryEntry(&models.DiaryEntry{UserID: "u1", Date: "2025-06-01", Content: "secret"}); err != nil {
		t.Fatalf("CreateDiaryEntry() error = %v", err)
	}

	tasks, err := store.TasksForDate("u2", "2025-06-01")
	if err != nil {
		t.Fatalf("TasksForDate() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Error("u2 can see u1's tasks")
	}
	entries, err := store.DiaryMatching("u2", []string{"secret"})
	if err != nil {
		t.Fatalf("DiaryMatching() error = %v", err)
	}
	if len(entries) != 0 {
		t.Error("u2 can see u1's diary")
	}
}
