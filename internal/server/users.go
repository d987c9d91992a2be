// ABOUTME: User endpoints: register, login, profile update
// ABOUTME: Passwords only cross this boundary in request bodies, never responses
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wingmanhq/wingman-backend/internal/models"
	"github.com/wingmanhq/wingman-backend/internal/storage/sqlite"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if len(req.Password) < 8 {
		badRequest(w, "password must be at least 8 characters")
		return
	}

	user, err := models.NewUser(req.Email, req.Username, req.Name)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.store.CreateUser(user, req.Password); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			badRequest(w, "email or username already registered")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		badRequest(w, "username and password are required")
		return
	}

	user, err := s.store.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, sqlite.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleUserByID routes /api/v1/user/{id}: GET fetches, PUT updates the name.
func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/user/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetUser(w, r, id)
	case http.MethodPut:
		s.handleUpdateUser(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, id string) {
	user, err := s.store.GetUser(id)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			notFound(w, "user not found")
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, id string) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(w, "name is required")
		return
	}

	if err := s.store.UpdateUserName(id, req.Name); err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			notFound(w, "user not found")
			return
		}
		internalError(w, err)
		return
	}

	user, err := s.store.GetUser(id)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
