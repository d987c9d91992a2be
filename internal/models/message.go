// ABOUTME: Message represents one chat message, user- or assistant-authored
// ABOUTME: Append-only; history replays in timestamp order
package models

import (
	"errors"
	"strings"
	"time"
)

// Message is a single chat message. IsAI marks assistant replies.
type Message struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Text      string    `json:"text" db:"message"`
	IsAI      bool      `json:"is_ai" db:"is_ai"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// NewMessage creates a Message with validation. The timestamp defaults to
// now (UTC) when zero.
func NewMessage(userID, text string, isAI bool, ts time.Time) (*Message, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("message user id cannot be empty")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("message text cannot be empty")
	}
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &Message{
		UserID:    userID,
		Text:      text,
		IsAI:      isAI,
		Timestamp: ts,
	}, nil
}
