// ABOUTME: EventStore persists calendar events for the CRUD surface and context engine
// ABOUTME: Maps the API "date"/"time" fields to the event_date/event_time columns
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/wingmanhq/wingman-backend/internal/models"
)

// EventStore manages calendar event persistence.
type EventStore struct {
	db *DB
}

// NewEventStore creates a new EventStore.
func NewEventStore(db *DB) *EventStore {
	return &EventStore{db: db}
}

// Create inserts an event, generating an ID when empty.
func (s *EventStore) Create(event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	_, err := s.db.conn.Exec(`
		INSERT INTO calendar_events (id, user_id, title, event_date, event_time, type, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.UserID, event.Title, event.Date, event.Time,
		event.Type, event.Description,
	)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

// Update rewrites an event's mutable fields by ID.
func (s *EventStore) Update(event *models.Event) error {
	res, err := s.db.conn.Exec(`
		UPDATE calendar_events
		SET title = ?, event_date = ?, event_time = ?, type = ?, description = ?
		WHERE id = ? AND user_id = ?`,
		event.Title, event.Date, event.Time, event.Type, event.Description,
		event.ID, event.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("event %s: %w", event.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an event by ID.
func (s *EventStore) Delete(userID, eventID string) error {
	res, err := s.db.conn.Exec(
		"DELETE FROM calendar_events WHERE id = ? AND user_id = ?", eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	return nil
}

// ForDate returns all events on a date, time ascending.
func (s *EventStore) ForDate(userID, date string) ([]models.Event, error) {
	var events []models.Event
	err := s.db.conn.Select(&events, `
		SELECT * FROM calendar_events
		WHERE user_id = ? AND event_date = ?
		ORDER BY event_time ASC`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching events for %s: %w", date, err)
	}
	return events, nil
}

// Between returns events with dates in [start, end], date then time ascending.
func (s *EventStore) Between(userID, start, end string) ([]models.Event, error) {
	var events []models.Event
	err := s.db.conn.Select(&events, `
		SELECT * FROM calendar_events
		WHERE user_id = ? AND event_date >= ? AND event_date <= ?
		ORDER BY event_date ASC, event_time ASC`,
		userID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching events between %s and %s: %w", start, end, err)
	}
	return events, nil
}

// Matching returns events whose title or description contains any of the
// terms (case-insensitive), newest first, capped.
func (s *EventStore) Matching(userID string, terms []string) ([]models.Event, error) {
	clause, args := likeClause("title, description", terms)
	if clause == "" {
		return nil, nil
	}

	var events []models.Event
	query := fmt.Sprintf(`
		SELECT * FROM calendar_events
		WHERE user_id = ? AND (%s)
		ORDER BY event_date DESC
		LIMIT %d`, clause, eventMatchCap)
	err := s.db.conn.Select(&events, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("searching events: %w", err)
	}
	return events, nil
}
