// ABOUTME: Task represents a single to-do item tied to a calendar date
// ABOUTME: Canonical shape shared by the API, storage, and context engine
package models

import (
	"errors"
	"strings"
	"time"
)

// DateFormat is the wire format for all dates in the system.
const DateFormat = "2006-01-02"

// Task is a dated to-do item. Time is optional ("HH:MM" when set).
type Task struct {
	ID           string `json:"id" db:"id"`
	UserID       string `json:"user_id" db:"user_id"`
	Title        string `json:"title" db:"title"`
	Date         string `json:"date" db:"task_date"`
	Time         string `json:"time,omitempty" db:"task_time"`
	Completed    bool   `json:"completed" db:"completed"`
	Failed       bool   `json:"failed" db:"failed"`
	UrgencyLevel int    `json:"urgency_level,omitempty" db:"urgency_level"`
}

// NewTask creates a Task with validation.
func NewTask(userID, title, date string) (*Task, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("task user id cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("task title cannot be empty")
	}
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	return &Task{
		UserID: userID,
		Title:  title,
		Date:   date,
	}, nil
}

// Pending reports whether the task is still open.
func (t *Task) Pending() bool {
	return !t.Completed && !t.Failed
}

// Urgent reports whether the task is flagged high urgency.
func (t *Task) Urgent() bool {
	return t.UrgencyLevel >= 3
}

// ValidateDate checks that a date string matches the wire format.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateFormat, date); err != nil {
		return errors.New("date must be formatted YYYY-MM-DD")
	}
	return nil
}
