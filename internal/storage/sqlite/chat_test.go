// ABOUTME: Tests for chat history storage
// ABOUTME: Verifies append-only round trip, chronological replay, and search

package sqlite

import (
	"testing"
	"time"

	"github.com/wingmanhq/wingman-backend/internal/models"
)

func seedChat(t *testing.T, store *ChatStore, userID string, texts []string) {
	t.Helper()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, text := range texts {
		msg := models.Message{
			UserID:    userID,
			Text:      text,
			IsAI:      i%2 == 1,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Append(&msg); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
}

func TestChatStore_RoundTrip(t *testing.T) {
	store := NewChatStore(newTestDB(t))
	seedChat(t, store, "u1", []string{"hello", "hi there", "what's next?"})

	got, err := store.History("u1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("History() returned %d messages, want 3", len(got))
	}
	if got[0].Text != "hello" || got[2].Text != "what's next?" {
		t.Errorf("history out of order: %q ... %q", got[0].Text, got[2].Text)
	}
	if got[0].IsAI || !got[1].IsAI {
		t.Error("is_ai flags did not round-trip")
	}
}

func TestChatStore_Recent_ChronologicalWindow(t *testing.T) {
	store := NewChatStore(newTestDB(t))
	seedChat(t, store, "u1", []string{"one", "two", "three", "four", "five"})

	got, err := store.Recent("u1", 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent() returned %d messages, want 3", len(got))
	}
	// Latest three, oldest first.
	want := []string{"three", "four", "five"}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("recent[%d] = %q, want %q", i, got[i].Text, want[i])
		}
	}
}

func TestChatStore_Matching(t *testing.T) {
	store := NewChatStore(newTestDB(t))
	seedChat(t, store, "u1", []string{"about the deadline", "ok", "deadline moved again"})
	seedChat(t, store, "u2", []string{"my own deadline"})

	got, err := store.Matching("u1", []string{"deadline"})
	if err != nil {
		t.Fatalf("Matching() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Matching() returned %d messages, want 2", len(got))
	}
	// Most recent first.
	if got[0].Text != "deadline moved again" {
		t.Errorf("first match = %q, want the newest message", got[0].Text)
	}
}
