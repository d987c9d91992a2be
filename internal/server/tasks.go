// ABOUTME: Task CRUD endpoints, user-scoped
// ABOUTME: Listing takes a single date or a start/end range as query params
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wingmanhq/wingman-backend/internal/models"
	"github.com/wingmanhq/wingman-backend/internal/storage/sqlite"
)

type createTaskRequest struct {
	UserID       string `json:"user_id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Time         string `json:"time,omitempty"`
	UrgencyLevel int    `json:"urgency_level,omitempty"`
}

type updateTaskRequest struct {
	UserID       string `json:"user_id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Time         string `json:"time,omitempty"`
	Completed    bool   `json:"completed"`
	Failed       bool   `json:"failed"`
	UrgencyLevel int    `json:"urgency_level,omitempty"`
}

// handleTasks routes /api/v1/tasks: POST creates, GET lists by date or range.
func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateTask(w, r)
	case http.MethodGet:
		s.handleListTasks(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	task, err := models.NewTask(req.UserID, req.Title, req.Date)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	task.Time = req.Time
	task.UrgencyLevel = req.UrgencyLevel

	if err := s.store.CreateTask(task); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	var (
		tasks []models.Task
		err   error
	)
	switch {
	case q.Get("date") != "":
		tasks, err = s.store.TasksForDate(userID, q.Get("date"))
	case q.Get("start") != "" && q.Get("end") != "":
		tasks, err = s.store.TasksBetween(userID, q.Get("start"), q.Get("end"))
	default:
		badRequest(w, "date or start/end is required")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// handleTaskByID routes /api/v1/tasks/{id}: PUT updates, DELETE removes.
func (s *Server) handleTaskByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/tasks/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleUpdateTask(w, r, id)
	case http.MethodDelete:
		s.handleDeleteTask(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, id string) {
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	task, err := models.NewTask(req.UserID, req.Title, req.Date)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	task.ID = id
	task.Time = req.Time
	task.Completed = req.Completed
	task.Failed = req.Failed
	task.UrgencyLevel = req.UrgencyLevel

	if err := s.store.UpdateTask(task); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			notFound(w, "task not found")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, id string) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	if err := s.store.DeleteTask(userID, id); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			notFound(w, "task not found")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
