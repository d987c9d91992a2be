// ABOUTME: Event represents a calendar entry with an optional time and type
// ABOUTME: Read by the context engine, written by the calendar CRUD surface
package models

import (
	"errors"
	"strings"
)

// Event is a calendar entry. Time is optional ("HH:MM" when set); Type is a
// free-form label such as "meeting" or "appointment".
type Event struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	Title       string `json:"title" db:"title"`
	Date        string `json:"date" db:"event_date"`
	Time        string `json:"time,omitempty" db:"event_time"`
	Type        string `json:"type,omitempty" db:"type"`
	Description string `json:"description,omitempty" db:"description"`
}

// NewEvent creates an Event with validation.
func NewEvent(userID, title, date string) (*Event, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("event user id cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("event title cannot be empty")
	}
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	return &Event{
		UserID: userID,
		Title:  title,
		Date:   date,
	}, nil
}
