// ABOUTME: TaskStore persists tasks and serves the context engine's task reads
// ABOUTME: Maps the API "date"/"time" fields to the task_date/task_time columns
package sqlite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/wingmanhq/wingman-backend/internal/models"
)

// matchCap bounds search-style queries so a broad term cannot flood the
// assembled context.
const (
	taskMatchCap  = 10
	eventMatchCap = 10
	diaryMatchCap = 5
	chatMatchCap  = 5
)

// ErrNotFound is returned when an update or delete matches no row.
var ErrNotFound = errors.New("not found")

// TaskStore manages task persistence.
type TaskStore struct {
	db *DB
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

// Create inserts a task, generating an ID when empty.
func (s *TaskStore) Create(task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	_, err := s.db.conn.Exec(`
		INSERT INTO tasks (id, user_id, title, task_date, task_time, completed, failed, urgency_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, task.Date, task.Time,
		task.Completed, task.Failed, task.UrgencyLevel,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// Update rewrites a task's mutable fields by ID.
func (s *TaskStore) Update(task *models.Task) error {
	res, err := s.db.conn.Exec(`
		UPDATE tasks
		SET title = ?, task_date = ?, task_time = ?, completed = ?, failed = ?, urgency_level = ?
		WHERE id = ? AND user_id = ?`,
		task.Title, task.Date, task.Time, task.Completed, task.Failed, task.UrgencyLevel,
		task.ID, task.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("task %s: %w", task.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a task by ID.
func (s *TaskStore) Delete(userID, taskID string) error {
	res, err := s.db.conn.Exec(
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	return nil
}

// ForDate returns all tasks on a date, time ascending with untimed tasks last.
func (s *TaskStore) ForDate(userID, date string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.conn.Select(&tasks, `
		SELECT * FROM tasks
		WHERE user_id = ? AND task_date = ?
		ORDER BY
			CASE WHEN task_time = '' THEN 1 ELSE 0 END,
			task_time ASC`,
		userID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks for %s: %w", date, err)
	}
	return tasks, nil
}

// Between returns tasks with dates in [start, end], date then time ascending.
func (s *TaskStore) Between(userID, start, end string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.conn.Select(&tasks, `
		SELECT * FROM tasks
		WHERE user_id = ? AND task_date >= ? AND task_date <= ?
		ORDER BY task_date ASC, task_time ASC`,
		userID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks between %s and %s: %w", start, end, err)
	}
	return tasks, nil
}

// Matching returns tasks whose title contains any of the terms
// (case-insensitive), newest first then by urgency, capped.
func (s *TaskStore) Matching(userID string, terms []string) ([]models.Task, error) {
	clause, args := likeClause("title", terms)
	if clause == "" {
		return nil, nil
	}

	var tasks []models.Task
	query := fmt.Sprintf(`
		SELECT * FROM tasks
		WHERE user_id = ? AND (%s)
		ORDER BY task_date DESC, urgency_level DESC
		LIMIT %d`, clause, taskMatchCap)
	err := s.db.conn.Select(&tasks, query, append([]any{userID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("searching tasks: %w", err)
	}
	return tasks, nil
}

// likeClause builds an OR of case-insensitive LIKE conditions over the given
// columns (comma-separated) for each term.
func likeClause(columns string, terms []string) (string, []any) {
	var conds []string
	var args []any
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		for _, col := range strings.Split(columns, ",") {
			conds = append(conds, fmt.Sprintf("lower(%s) LIKE ?", strings.TrimSpace(col)))
			args = append(args, "%"+strings.ToLower(term)+"%")
		}
	}
	return strings.Join(conds, " OR "), args
}
