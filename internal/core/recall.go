// ABOUTME: Recall is the data-access shim between the context engine and storage
// ABOUTME: Converts storage failures into empty results so context building never aborts
package core

import (
	"log"

	"github.com/wingmanhq/wingman-backend/internal/models"
)

// DataSource is the narrow read surface the context engine needs. Implemented
// by storage.Storage. Every operation is scoped by user id.
type DataSource interface {
	TasksForDate(userID, date string) ([]models.Task, error)
	TasksBetween(userID, start, end string) ([]models.Task, error)
	TasksMatching(userID string, terms []string) ([]models.Task, error)
	EventsForDate(userID, date string) ([]models.Event, error)
	EventsBetween(userID, start, end string) ([]models.Event, error)
	EventsMatching(userID string, terms []string) ([]models.Event, error)
	DiarySince(userID, cutoff string) ([]models.DiaryEntry, error)
	DiaryMatching(userID string, terms []string) ([]models.DiaryEntry, error)
	ChatRecent(userID string, limit int) ([]models.Message, error)
	ChatMatching(userID string, terms []string) ([]models.Message, error)
}

// Recall wraps a DataSource with the engine's failure policy: a failing query
// is logged and reported as empty, never propagated. A single broken data
// source must not blank the whole context.
type Recall struct {
	src DataSource
}

// NewRecall creates a Recall over a DataSource.
func NewRecall(src DataSource) *Recall {
	return &Recall{src: src}
}

func (r *Recall) TasksForDate(userID, date string) []models.Task {
	tasks, err := r.src.TasksForDate(userID, date)
	if err != nil {
		log.Printf("[Recall] tasks for date failed: %v", err)
		return nil
	}
	return tasks
}

func (r *Recall) TasksBetween(userID, start, end string) []models.Task {
	tasks, err := r.src.TasksBetween(userID, start, end)
	if err != nil {
		log.Printf("[Recall] tasks between failed: %v", err)
		return nil
	}
	return tasks
}

func (r *Recall) TasksMatching(userID string, terms []string) []models.Task {
	tasks, err := r.src.TasksMatching(userID, terms)
	if err != nil {
		log.Printf("[Recall] task search failed: %v", err)
		return nil
	}
	return tasks
}

func (r *Recall) EventsForDate(userID, date string) []models.Event {
	events, err := r.src.EventsForDate(userID, date)
	if err != nil {
		log.Printf("[Recall] events for date failed: %v", err)
		return nil
	}
	return events
}

func (r *Recall) EventsBetween(userID, start, end string) []models.Event {
	events, err := r.src.EventsBetween(userID, start, end)
	if err != nil {
		log.Printf("[Recall] events between failed: %v", err)
		return nil
	}
	return events
}

func (r *Recall) EventsMatching(userID string, terms []string) []models.Event {
	events, err := r.src.EventsMatching(userID, terms)
	if err != nil {
		log.Printf("[Recall] event search failed: %v", err)
		return nil
	}
	return events
}

func (r *Recall) DiarySince(userID, cutoff string) []models.DiaryEntry {
	entries, err := r.src.DiarySince(userID, cutoff)
	if err != nil {
		log.Printf("[Recall] diary since failed: %v", err)
		return nil
	}
	return entries
}

func (r *Recall) DiaryMatching(userID string, terms []string) []models.DiaryEntry {
	entries, err := r.src.DiaryMatching(userID, terms)
	if err != nil {
		log.Printf("[Recall] diary search failed: %v", err)
		return nil
	}
	return entries
}

func (r *Recall) ChatRecent(userID string, limit int) []models.Message {
	msgs, err := r.src.ChatRecent(userID, limit)
	if err != nil {
		log.Printf("[Recall] recent chat failed: %v", err)
		return nil
	}
	return msgs
}

func (r *Recall) ChatMatching(userID string, terms []string) []models.Message {
	msgs, err := r.src.ChatMatching(userID, terms)
	if err != nil {
		log.Printf("[Recall] chat search failed: %v", err)
		return nil
	}
	return msgs
}
