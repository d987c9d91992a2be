// ABOUTME: DiaryEntry represents a dated journal entry with an optional mood
// ABOUTME: Mood values are free-form but the UI uses happy/sad/neutral/excited/anxious
package models

import (
	"errors"
	"strings"
)

// DiaryEntry is a journal entry for a single date.
type DiaryEntry struct {
	ID      string `json:"id" db:"id"`
	UserID  string `json:"user_id" db:"user_id"`
	Date    string `json:"date" db:"entry_date"`
	Title   string `json:"title,omitempty" db:"title"`
	Content string `json:"content" db:"content"`
	Mood    string `json:"mood,omitempty" db:"mood"`
}

// NewDiaryEntry creates a DiaryEntry with validation.
func NewDiaryEntry(userID, date, content string) (*DiaryEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("diary user id cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("diary content cannot be empty")
	}
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	return &DiaryEntry{
		UserID:  userID,
		Date:    date,
		Content: content,
	}, nil
}
