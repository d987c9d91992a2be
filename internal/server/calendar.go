// ABOUTME: Calendar event CRUD endpoints, user-scoped
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wingmanhq/wingman-backend/internal/models"
	"github.com/wingmanhq/wingman-backend/internal/storage/sqlite"
)

type eventRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// handleEvents routes /api/v1/calendar: POST creates, GET lists by date or
// range.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateEvent(w, r)
	case http.MethodGet:
		s.handleListEvents(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	event, err := models.NewEvent(req.UserID, req.Title, req.Date)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	event.Time = req.Time
	event.Type = req.Type
	event.Description = req.Description

	if err := s.store.CreateEvent(event); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	var (
		events []models.Event
		err    error
	)
	switch {
	case q.Get("date") != "":
		events, err = s.store.EventsForDate(userID, q.Get("date"))
	case q.Get("start") != "" && q.Get("end") != "":
		events, err = s.store.EventsBetween(userID, q.Get("start"), q.Get("end"))
	default:
		badRequest(w, "date or start/end is required")
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// handleEventByID routes /api/v1/calendar/{id}: PUT updates, DELETE removes.
func (s *Server) handleEventByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/calendar/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleUpdateEvent(w, r, id)
	case http.MethodDelete:
		s.handleDeleteEvent(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request, id string) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	event, err := models.NewEvent(req.UserID, req.Title, req.Date)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	event.ID = id
	event.Time = req.Time
	event.Type = req.Type
	event.Description = req.Description

	if err := s.store.UpdateEvent(event); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			notFound(w, "event not found")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request, id string) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	if err := s.store.DeleteEvent(userID, id); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			notFound(w, "event not found")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
