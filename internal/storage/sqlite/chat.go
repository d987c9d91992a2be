// ABOUTME: ChatStore persists the append-only chat history
// ABOUTME: The message text lives in the legacy "message" column
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/wingmanhq/wingman-backend/internal/models"
)

// ChatStore manages chat history persistence. History is append-only; the
// engine never mutates or deletes messages.
type ChatStore struct {
	db *DB
}

// NewChatStore creates a new ChatStore.
func NewChatStore(db *DB) *ChatStore {
	return &ChatStore{db: db}
}

// Append inserts a message, generating an ID when empty.
func (s *ChatStore) Append(msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	_, err := s.db.conn.Exec(`
		INSERT INTO chat_history (id, user_id, message, is_ai, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.UserID, msg.Text, msg.IsAI, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("appending chat message: %w", err)
	}
	return nil
}

// History returns the full chat history in chronological order.
func (s *ChatStore) History(userID string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.conn.Select(&msgs, `
		SELECT * FROM chat_history
		WHERE user_id = ?
		ORDER BY timestamp ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching chat history: %w", err)
	}
	return msgs, nil
}

// Recent returns the latest limit messages in chronological order.
func (s *ChatStore) Recent(userID string, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.conn.Select(&msgs, `
		SELECT * FROM chat_history
		WHERE user_id = ?
		ORDER BY timestamp DESC
		LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching recent chat: %w", err)
	}

	// Reverse to chronological order for replay.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// Matching returns messages whose text contains any of the terms
// (case-insensitive), most recent first, capped.
func (s *ChatStore) Matching(userID string, terms []string) ([]models.Message, error) {
	clause, args := likeClause("message", terms)
	if clause == "" {
		return nil, nil
	}

	var msgs []models.Message
	query := fmt.Sprintf(`
		SELECT * FROM chat_history
		WHERE user_id = ? AND (%s)
		ORDER BY timestamp DESC
		LIMIT %d`, clause, chatMatchCap)
	err := s.db.conn.Select(&msgs, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("searching chat history: %w", err)
	}
	return msgs, nil
}
