// ABOUTME: Diary entry CRUD endpoints, user-scoped
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wingmanhq/wingman-backend/internal/models"
	"github.com/wingmanhq/wingman-backend/internal/storage/sqlite"
)

type diaryRequest struct {
	UserID  string `json:"user_id"`
	Date    string `json:"date"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Mood    string `json:"mood,omitempty"`
}

// handleDiary routes /api/v1/diary: POST creates, GET lists by date.
func (s *Server) handleDiary(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateDiary(w, r)
	case http.MethodGet:
		s.handleListDiary(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCreateDiary(w http.ResponseWriter, r *http.Request) {
	var req diaryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	entry, err := models.NewDiaryEntry(req.UserID, req.Date, req.Content)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	entry.Title = req.Title
	entry.Mood = req.Mood

	if err := s.store.CreateDiaryEntry(entry); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListDiary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}
	date := q.Get("date")
	if date == "" {
		badRequest(w, "date is required")
		return
	}

	entries, err := s.store.DiaryForDate(userID, date)
	if err != nil {
		internalError(w, err)
		return
	}
	if entries == nil {
		entries = []models.DiaryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleDiaryByID routes /api/v1/diary/{id}: PUT updates, DELETE removes.
func (s *Server) handleDiaryByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/diary/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleUpdateDiary(w, r, id)
	case http.MethodDelete:
		s.handleDeleteDiary(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleUpdateDiary(w http.ResponseWriter, r *http.Request, id string) {
	var req diaryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	entry, err := models.NewDiaryEntry(req.UserID, req.Date, req.Content)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	entry.ID = id
	entry.Title = req.Title
	entry.Mood = req.Mood

	if err := s.store.UpdateDiaryEntry(entry); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			notFound(w, "diary entry not found")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteDiary(w http.ResponseWriter, r *http.Request, id string) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	if err := s.store.DeleteDiaryEntry(userID, id); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			notFound(w, "diary entry not found")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
