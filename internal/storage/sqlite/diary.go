// ABOUTME: DiaryStore persists diary entries and serves the reflection context reads
// ABOUTME: Maps the API "date" field to the entry_date column
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/wingmanhq/wingman-backend/internal/models"
)

// DiaryStore manages diary entry persistence.
type DiaryStore struct {
	db *DB
}

// NewDiaryStore creates a new DiaryStore.
func NewDiaryStore(db *DB) *DiaryStore {
	return &DiaryStore{db: db}
}

// Create inserts a diary entry, generating an ID when empty.
func (s *DiaryStore) Create(entry *models.DiaryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	_, err := s.db.conn.Exec(`
		INSERT INTO diary_entries (id, user_id, entry_date, title, content, mood)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.Date, entry.Title, entry.Content, entry.Mood,
	)
	if err != nil {
		return fmt.Errorf("creating diary entry: %w", err)
	}
	return nil
}

// Update rewrites a diary entry's mutable fields by ID.
func (s *DiaryStore) Update(entry *models.DiaryEntry) error {
	res, err := s.db.conn.Exec(`
		UPDATE diary_entries
		SET entry_date = ?, title = ?, content = ?, mood = ?
		WHERE id = ? AND user_id = ?`,
		entry.Date, entry.Title, entry.Content, entry.Mood,
		entry.ID, entry.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating diary entry: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("diary entry %s: %w", entry.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a diary entry by ID.
func (s *DiaryStore) Delete(userID, entryID string) error {
	res, err := s.db.conn.Exec(
		"DELETE FROM diary_entries WHERE id = ? AND user_id = ?", entryID, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting diary entry: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("diary entry %s: %w", entryID, ErrNotFound)
	}
	return nil
}

// ForDate returns all entries on a date.
func (s *DiaryStore) ForDate(userID, date string) ([]models.DiaryEntry, error) {
	var entries []models.DiaryEntry
	err := s.db.conn.Select(&entries, `
		SELECT * FROM diary_entries
		WHERE user_id = ? AND entry_date = ?
		ORDER BY entry_date DESC`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching diary entries for %s: %w", date, err)
	}
	return entries, nil
}

// Since returns entries with dates on or after the cutoff, newest first.
func (s *DiaryStore) Since(userID, cutoff string) ([]models.DiaryEntry, error) {
	var entries []models.DiaryEntry
	err := s.db.conn.Select(&entries, `
		SELECT * FROM diary_entries
		WHERE user_id = ? AND entry_date >= ?
		ORDER BY entry_date DESC`,
		userID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching diary entries since %s: %w", cutoff, err)
	}
	return entries, nil
}

// Matching returns entries whose title or content contains any of the terms
// (case-insensitive), newest first, capped.
func (s *DiaryStore) Matching(userID string, terms []string) ([]models.DiaryEntry, error) {
	clause, args := likeClause("title, content", terms)
	if clause == "" {
		return nil, nil
	}

	var entries []models.DiaryEntry
	query := fmt.Sprintf(`
		SELECT * FROM diary_entries
		WHERE user_id = ? AND (%s)
		ORDER BY entry_date DESC
		LIMIT %d`, clause, diaryMatchCap)
	err := s.db.conn.Select(&entries, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("searching diary entries: %w", err)
	}
	return entries, nil
}
