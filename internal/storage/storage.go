// ABOUTME: Unified Storage facade that wraps all SQLite stores
// ABOUTME: The only type the server and context engine talk to for data
package storage

import (
	"fmt"

	"github.com/wingmanhq/wingman-backend/internal/models"
	"github.com/wingmanhq/wingman-backend/internal/storage/sqlite"
)

// Storage manages all persistent data for the backend.
type Storage struct {
	db     *sqlite.DB
	tasks  *sqlite.TaskStore
	events *sqlite.EventStore
	diary  *sqlite.DiaryStore
	chat   *sqlite.ChatStore
	users  *sqlite.UserStore
}

// NewStorage initializes storage at the default XDG path.
func NewStorage() (*Storage, error) {
	return NewStorageWithPath(sqlite.DefaultDBPath())
}

// NewStorageWithPath initializes storage with a custom database path. An
// empty path falls back to the default.
func NewStorageWithPath(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return wrap(db), nil
}

// NewStorageInMemory creates an in-memory storage (for testing).
func NewStorageInMemory() (*Storage, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return wrap(db), nil
}

func wrap(db *sqlite.DB) *Storage {
	return &Storage{
		db:     db,
		tasks:  sqlite.NewTaskStore(db),
		events: sqlite.NewEventStore(db),
		diary:  sqlite.NewDiaryStore(db),
		chat:   sqlite.NewChatStore(db),
		users:  sqlite.NewUserStore(db),
	}
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Storage) Ping() error {
	return s.db.Ping()
}

// --- Task operations ---

func (s *Storage) CreateTask(task *models.Task) error   { return s.tasks.Create(task) }
func (s *Storage) UpdateTask(task *models.Task) error   { return s.tasks.Update(task) }
func (s *Storage) DeleteTask(userID, id string) error   { return s.tasks.Delete(userID, id) }

// TasksForDate returns a user's tasks for one date, time ascending.
func (s *Storage) TasksForDate(userID, date string) ([]models.Task, error) {
	return s.tasks.ForDate(userID, date)
}

// TasksBetween returns a user's tasks in an inclusive date range.
func (s *Storage) TasksBetween(userID, start, end string) ([]models.Task, error) {
	return s.tasks.Between(userID, start, end)
}

// TasksMatching searches task titles for any of the terms.
func (s *Storage) TasksMatching(userID string, terms []string) ([]models.Task, error) {
	return s.tasks.Matching(userID, terms)
}

// --- Event operations ---

func (s *Storage) CreateEvent(event *models.Event) error { return s.events.Create(event) }
func (s *Storage) UpdateEvent(event *models.Event) error { return s.events.Update(event) }
func (s *Storage) DeleteEvent(userID, id string) error   { return s.events.Delete(userID, id) }

// EventsForDate returns a user's events for one date, time ascending.
func (s *Storage) EventsForDate(userID, date string) ([]models.Event, error) {
	return s.events.ForDate(userID, date)
}

// EventsBetween returns a user's events in an inclusive date range.
func (s *Storage) EventsBetween(userID, start, end string) ([]models.Event, error) {
	return s.events.Between(userID, start, end)
}

// EventsMatching searches event titles and descriptions for any of the terms.
func (s *Storage) EventsMatching(userID string, terms []string) ([]models.Event, error) {
	return s.events.Matching(userID, terms)
}

// --- Diary operations ---

func (s *Storage) CreateDiaryEntry(entry *models.DiaryEntry) error { return s.diary.Create(entry) }
func (s *Storage) UpdateDiaryEntry(entry *models.DiaryEntry) error { return s.diary.Update(entry) }
func (s *Storage) DeleteDiaryEntry(userID, id string) error        { return s.diary.Delete(userID, id) }

// DiaryForDate returns a user's diary entries for one date.
func (s *Storage) DiaryForDate(userID, date string) ([]models.DiaryEntry, error) {
	return s.diary.ForDate(userID, date)
}

// DiarySince returns a user's diary entries on or after the cutoff date,
// newest first.
func (s *Storage) DiarySince(userID, cutoff string) ([]models.DiaryEntry, error) {
	return s.diary.Since(userID, cutoff)
}

// DiaryMatching searches diary titles and content for any of the terms.
func (s *Storage) DiaryMatching(userID string, terms []string) ([]models.DiaryEntry, error) {
	return s.diary.Matching(userID, terms)
}

// --- Chat operations ---

// AppendMessage stores one chat message. History is append-only.
func (s *Storage) AppendMessage(msg *models.Message) error { return s.chat.Append(msg) }

// ChatHistory returns a user's full chat history in chronological order.
func (s *Storage) ChatHistory(userID string) ([]models.Message, error) {
	return s.chat.History(userID)
}

// ChatRecent returns the latest limit messages in chronological order.
func (s *Storage) ChatRecent(userID string, limit int) ([]models.Message, error) {
	return s.chat.Recent(userID, limit)
}

// ChatMatching searches message text for any of the terms, newest first.
func (s *Storage) ChatMatching(userID string, terms []string) ([]models.Message, error) {
	return s.chat.Matching(userID, terms)
}

// --- User operations ---

func (s *Storage) CreateUser(user *models.User, password string) error {
	return s.users.Create(user, password)
}

func (s *Storage) Authenticate(username, password string) (*models.User, error) {
	return s.users.Authenticate(username, password)
}

func (s *Storage) GetUser(userID string) (*models.User, error) {
	return s.users.Get(userID)
}

func (s *Storage) UpdateUserName(userID, name string) error {
	return s.users.UpdateName(userID, name)
}
